package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/cockroachdb/pebble"

	"aura/pkg/logger"
)

// The store is the persistence collaborator for the chat core: a durable
// dictionary keyed by collection name. Every observable state change is
// written back with Save; Load runs once per key at process start. Faults
// are logged here and never propagated, so the core keeps operating purely
// in memory when the disk misbehaves.

// namespace prefixes every key so Clear can wipe this core's state without
// touching anything else sharing the database.
const namespace = "aura:"

var (
	db     *pebble.DB
	dbPath string
)

// Open opens (or creates) a Pebble database at the given path and keeps a
// global handle for simple usage in this package.
func Open(path string) error {
	var err error
	logger.Info("opening_pebble_db", "path", path)
	db, err = pebble.Open(path, &pebble.Options{})
	if err != nil {
		logger.Error("pebble_open_failed", "path", path, "error", err)
		return err
	}
	dbPath = path
	logger.Info("pebble_opened", "path", path)
	return nil
}

// Close closes the opened pebble DB if present.
func Close() error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return err
	}
	db = nil
	logger.Info("pebble_closed")
	return nil
}

// Ready reports whether the store is opened and ready.
func Ready() bool {
	return db != nil
}

// Save marshals v and writes it under the namespaced key. Failures are
// logged and swallowed; persistence is best effort on every mutation.
func Save(key string, v any) {
	if db == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("store_marshal_failed", "key", key, "error", err)
		return
	}
	if err := db.Set([]byte(namespace+key), data, pebble.Sync); err != nil {
		logger.Error("store_save_failed", "key", key, "error", err)
		return
	}
	logger.Debug("store_saved", "key", key, "bytes", len(data))
}

// Load reads the namespaced key into out and reports whether a stored value
// was found and decoded. On any fault the default already in out is left
// untouched.
func Load(key string, out any) bool {
	if db == nil {
		return false
	}
	v, closer, err := db.Get([]byte(namespace + key))
	if err != nil {
		if err != pebble.ErrNotFound {
			logger.Error("store_load_failed", "key", key, "error", err)
		}
		return false
	}
	defer closer.Close()
	if err := json.Unmarshal(v, out); err != nil {
		logger.Error("store_decode_failed", "key", key, "error", err)
		return false
	}
	return true
}

// Clear deletes every key under this core's namespace.
func Clear() error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	lo := []byte(namespace)
	hi := append([]byte(namespace), 0xff)
	if err := db.DeleteRange(lo, hi, pebble.Sync); err != nil {
		logger.Error("store_clear_failed", "error", err)
		return err
	}
	logger.Info("store_cleared")
	return nil
}

// ListKeys returns all namespaced keys, without the namespace prefix.
// Used by the inspect tool.
func ListKeys() ([]string, error) {
	if db == nil {
		return nil, fmt.Errorf("pebble not opened; call store.Open first")
	}
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}
	defer iter.Close()
	prefix := []byte(namespace)
	var out []string
	for iter.SeekGE(prefix); iter.Valid(); iter.Next() {
		if !bytes.HasPrefix(iter.Key(), prefix) {
			break
		}
		out = append(out, string(iter.Key()[len(prefix):]))
	}
	return out, nil
}

// GetRaw returns the stored JSON for a key as-is. Used by the inspect tool.
func GetRaw(key string) (string, error) {
	if db == nil {
		return "", fmt.Errorf("pebble not opened; call store.Open first")
	}
	v, closer, err := db.Get([]byte(namespace + key))
	if err != nil {
		return "", err
	}
	defer closer.Close()
	return string(append([]byte(nil), v...)), nil
}

// DiskUsage returns the best-effort on-disk size of the database directory.
func DiskUsage() uint64 {
	if dbPath == "" {
		return 0
	}
	var total uint64
	_ = filepath.WalkDir(dbPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if fi, err := d.Info(); err == nil {
			total += uint64(fi.Size())
		}
		return nil
	})
	return total
}
