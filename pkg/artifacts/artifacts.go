package artifacts

import (
	"sync"

	"aura/pkg/models"
	"aura/pkg/store"
)

// KeyArtifacts is the persistence key for the artifact collection.
const KeyArtifacts = "artifacts"

// Collection is the top-level archive of crystallized messages, newest
// first. Artifacts are never deleted by this core.
type Collection struct {
	mu    sync.Mutex
	items []models.Artifact
}

func NewCollection() *Collection {
	return &Collection{}
}

// Restore loads previously crystallized artifacts from the store.
func (c *Collection) Restore() {
	c.mu.Lock()
	defer c.mu.Unlock()
	store.Load(KeyArtifacts, &c.items)
}

// List returns a copy of the collection, newest first.
func (c *Collection) List() []models.Artifact {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Artifact(nil), c.items...)
}

// Prepend inserts the artifact at the head of the collection.
func (c *Collection) Prepend(a models.Artifact) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]models.Artifact{a}, c.items...)
	store.Save(KeyArtifacts, c.items)
}

// Retag replaces the poetic tag on the artifact with the given id, in
// place. Unknown ids are a no-op.
func (c *Collection) Retag(id, tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].PoeticTag = tag
			store.Save(KeyArtifacts, c.items)
			return
		}
	}
}
