package handlers

import (
	"aura/pkg/artifacts"
	"aura/pkg/chat"
	"aura/pkg/reply"
	"aura/pkg/schedule"
)

// Deps bundles the core components the handlers operate on. The handlers
// never touch component state directly; every mutation goes through the
// defined operations.
type Deps struct {
	Engine       *chat.Engine
	Scheduler    *reply.Scheduler
	Crystallizer *artifacts.Crystallizer
	Artifacts    *artifacts.Collection
	Scheduled    *schedule.Queue
}
