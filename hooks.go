package grantmap

import (
	"sync"

	"github.com/agentstation/grantmap/pkg/programs"
)

// Hook function types for program events
type (
	// ProgramCreatedHook is called after a program is stored for the first time
	ProgramCreatedHook func(p programs.Program)

	// ProgramUpdatedHook is called after a stored program is overwritten
	ProgramUpdatedHook func(old, new programs.Program)
)

// hooks manages event callbacks for persisted programs
type hooks struct {
	mu               sync.RWMutex
	onProgramCreated []ProgramCreatedHook
	onProgramUpdated []ProgramUpdatedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnProgramCreated registers a callback for when programs are created
func (h *hooks) OnProgramCreated(fn ProgramCreatedHook) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onProgramCreated = append(h.onProgramCreated, fn)
}

// OnProgramUpdated registers a callback for when programs are updated
func (h *hooks) OnProgramUpdated(fn ProgramUpdatedHook) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onProgramUpdated = append(h.onProgramUpdated, fn)
}

// wantsPrevious reports whether any hook needs the stored record before an upsert.
func (h *hooks) wantsPrevious() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.onProgramUpdated) > 0
}

func (h *hooks) created(p programs.Program) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onProgramCreated {
		hook(p)
	}
}

func (h *hooks) updated(old, new programs.Program) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onProgramUpdated {
		hook(old, new)
	}
}
