// Package mapping reserves regions of virtual memory from the operating
// system, either anonymously or under a system-wide name where the platform
// supports one. It is the backing-store provider for the shmap package and
// hides the divergent kernel interfaces (mmap on Unix, pagefile-backed
// section objects on Windows) behind one Region type.
package mapping

import (
	"math"
	"sync/atomic"
	"syscall"
)

// Protection describes how the reserved pages may be accessed.
type Protection int

const (
	ProtReadOnly Protection = iota
	ProtReadWrite
	ProtCopyOnWrite
	ProtReadExecute
	ProtReadWriteExecute
)

// Capabilities describes what the platform's reservation facility can do.
// Queried once at startup; all fields are invariant for the process lifetime.
type Capabilities struct {
	// PageSize is the allocation granularity. All effective region sizes
	// are multiples of it.
	PageSize int64

	// NamingSupported reports whether regions can be registered under a
	// system-wide name that other processes may attach to.
	NamingSupported bool

	// MaxCapacity is the largest region size representable by the
	// reservation call itself. Requests above it can be rejected without
	// touching the OS; requests at or below it may still be refused by
	// the kernel once reservation is attempted.
	MaxCapacity int64
}

var platformCaps = Capabilities{
	PageSize:        int64(syscall.Getpagesize()),
	NamingSupported: namingSupported,
	MaxCapacity:     int64(math.MaxInt),
}

// Platform returns the capability descriptor for the current platform.
func Platform() Capabilities {
	return platformCaps
}

// Region is a reserved range of virtual memory. A Region is reference
// counted: it starts with one claim held by its creator, views take
// additional claims via Retain, and the pages are returned to the OS when
// the last claim is dropped via Release.
type Region struct {
	data []byte
	size int64
	prot Protection
	refs int32
	// Windows kernel object backing the region (zero on Unix)
	handle uintptr
}

// Bytes returns the mapped memory. The slice is valid only while the caller
// holds a claim on the region.
func (r *Region) Bytes() []byte {
	return r.data
}

// Size returns the reserved size in bytes.
func (r *Region) Size() int64 {
	return r.size
}

// Protection returns the protection the region was reserved with.
func (r *Region) Protection() Protection {
	return r.prot
}

// Handle returns the kernel mapping object backing the region.
// It is zero on platforms that reserve through an anonymous mmap.
func (r *Region) Handle() uintptr {
	return r.handle
}

// Retain adds a claim on the region. Every Retain must be paired with a
// Release.
func (r *Region) Retain() {
	atomic.AddInt32(&r.refs, 1)
}

// Release drops a claim on the region. The pages are unmapped when the last
// claim is dropped; extra releases are no-ops.
func (r *Region) Release() error {
	if atomic.AddInt32(&r.refs, -1) != 0 {
		return nil
	}
	return r.unmap()
}

// Error represents a reservation error.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return "mapping: " + e.Op + ": " + e.Err.Error()
	}
	return "mapping: " + e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Common errors
var (
	ErrInvalidSize       = &Error{Op: "invalid size"}
	ErrNameConflict      = &Error{Op: "name already in use"}
	ErrNamingUnsupported = &Error{Op: "named regions not supported"}
)
