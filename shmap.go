package shmap

import (
	"errors"

	"github.com/Giulio2002/shmap/mapping"
)

// MemoryMap is a reserved region of virtual memory backed by the OS pager,
// optionally registered under a system-wide name. It owns exactly one
// MappingHandle and mints views over the region until it is closed.
type MemoryMap struct {
	name      string
	requested int64
	capacity  int64
	access    Access
	options   Options
	inherit   Inheritability
	handle    *MappingHandle
}

// CreateNew creates a read-write map registered under name. The name must
// be non-empty; use CreateAnonymous for a map without a namespace entry.
// Named maps are only available on platforms whose kernel has a mapping
// namespace; elsewhere the call fails with a PlatformUnsupported error.
func CreateNew(name string, capacity int64) (*MemoryMap, error) {
	return create(name, false, capacity, ReadWrite, OptionNone, InheritNone)
}

// CreateNewWithAccess is CreateNew with an explicit access mode.
func CreateNewWithAccess(name string, capacity int64, access Access) (*MemoryMap, error) {
	return create(name, false, capacity, access, OptionNone, InheritNone)
}

// CreateNewWithOptions is CreateNew with full control over access mode,
// creation options and handle inheritability.
func CreateNewWithOptions(name string, capacity int64, access Access, options Options, inherit Inheritability) (*MemoryMap, error) {
	return create(name, false, capacity, access, options, inherit)
}

// CreateAnonymous creates a read-write map with no namespace entry,
// reachable only through handles derived from this process.
func CreateAnonymous(capacity int64) (*MemoryMap, error) {
	return create("", true, capacity, ReadWrite, OptionNone, InheritNone)
}

// CreateAnonymousWithOptions is CreateAnonymous with full control over
// access mode, creation options and handle inheritability.
func CreateAnonymousWithOptions(capacity int64, access Access, options Options, inherit Inheritability) (*MemoryMap, error) {
	return create("", true, capacity, access, options, inherit)
}

// create runs the creation state machine: enum validation, capacity
// resolution, name registration, then reservation. Any failure leaves no
// handle and no registry entry behind.
func create(name string, anonymous bool, capacity int64, access Access, options Options, inherit Inheritability) (*MemoryMap, error) {
	if err := validateCreate(access, options, inherit); err != nil {
		return nil, err
	}

	effective, err := resolveCapacity(capacity)
	if err != nil {
		return nil, err
	}

	regionName := ""
	if !anonymous {
		if name == "" {
			return nil, invalidArgument("name", "name must not be empty")
		}
		if !mapping.Platform().NamingSupported {
			return nil, platformUnsupported("named maps are not supported on this platform")
		}
		if err := names.acquire(name); err != nil {
			return nil, err
		}
		regionName = name
	}

	region, err := mapping.Reserve(regionName, effective, access.protection(),
		options&DelayAllocatePages != 0, inherit == Inheritable)
	if err != nil {
		names.release(regionName)
		if errors.Is(err, mapping.ErrNameConflict) {
			return nil, ioFailure("name already in use", err)
		}
		return nil, ioFailure("reserving region", err)
	}

	return &MemoryMap{
		name:      name,
		requested: capacity,
		capacity:  effective,
		access:    access,
		options:   options,
		inherit:   inherit,
		handle:    newMappingHandle(region, regionName),
	}, nil
}

// Name returns the name the map was registered under, or "" for an
// anonymous map.
func (m *MemoryMap) Name() string {
	return m.name
}

// Capacity returns the effective capacity: the requested capacity rounded
// up to the page size. This is what the OS reserved and what views may
// address.
func (m *MemoryMap) Capacity() int64 {
	return m.capacity
}

// RequestedCapacity returns the capacity as requested at creation.
func (m *MemoryMap) RequestedCapacity() int64 {
	return m.requested
}

// Access returns the access mode the map was created with.
func (m *MemoryMap) Access() Access {
	return m.access
}

// Options returns the creation options.
func (m *MemoryMap) Options() Options {
	return m.options
}

// Inheritability returns whether child processes inherit the handle.
func (m *MemoryMap) Inheritability() Inheritability {
	return m.inherit
}

// Handle returns the kernel mapping object backing the map, for passing to
// a child process. Zero on platforms that reserve through anonymous mmap.
func (m *MemoryMap) Handle() uintptr {
	return m.handle.region.Handle()
}

// IsClosed reports whether the map has been closed.
func (m *MemoryMap) IsClosed() bool {
	return m.handle.IsClosed()
}

// Close releases the map's handle and returns its name, if any, to the
// namespace. Idempotent and never an error; views already created stay
// valid until they are closed themselves.
func (m *MemoryMap) Close() error {
	m.handle.Close()
	return nil
}
