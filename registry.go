package shmap

import (
	"fmt"
	"sync"
)

// nameRegistry is the process-wide table of names held by live maps. The
// check-then-register sequence runs under one lock so two concurrent
// creations of the same name cannot both observe it as available.
type nameRegistry struct {
	mu   sync.Mutex
	held map[string]struct{}
}

var names = &nameRegistry{held: make(map[string]struct{})}

// acquire claims name for a new map. The claim must be released exactly
// once, either on disposal or when reservation fails after acquisition.
func (r *nameRegistry) acquire(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.held[name]; ok {
		return ioFailure(fmt.Sprintf("name %q already in use", name), nil)
	}
	r.held[name] = struct{}{}
	return nil
}

// release returns name to the pool. Releasing a name that is not held is a
// no-op, so disposal stays idempotent.
func (r *nameRegistry) release(name string) {
	if name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.held, name)
}
