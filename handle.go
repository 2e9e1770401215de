package shmap

import (
	"sync"

	"github.com/Giulio2002/shmap/mapping"
)

// MappingHandle owns the reserved region on behalf of exactly one
// MemoryMap. Closing it is saturating: the first Close releases the
// registry entry and the map's claim on the region, every later Close is a
// no-op. View creation and Close serialize on the handle lock, so a view
// request that starts after Close observes the closed state instead of a
// dangling region.
type MappingHandle struct {
	mu     sync.Mutex
	closed bool
	region *mapping.Region
	name   string // registry entry to release, "" for anonymous maps
}

func newMappingHandle(region *mapping.Region, name string) *MappingHandle {
	return &MappingHandle{region: region, name: name}
}

// Close releases the handle. Safe to call any number of times from any
// goroutine.
func (h *MappingHandle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	names.release(h.name)
	h.region.Release()
}

// IsClosed reports whether the handle has been closed.
func (h *MappingHandle) IsClosed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// use returns the region with a fresh claim for a new view. The claim is
// taken under the handle lock so it cannot race with Close.
func (h *MappingHandle) use(op string) (*mapping.Region, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, useAfterClose(op)
	}
	h.region.Retain()
	return h.region, nil
}
