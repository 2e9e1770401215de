package shmap

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/Giulio2002/shmap/mapping"
)

// view binds a region claim to a byte window. Both view kinds embed it.
// Each view holds its own claim on the region, so closing the owning map
// does not invalidate views already created; the pages are returned to the
// OS when the map and every view have been closed.
type view struct {
	region *mapping.Region
	offset int64
	length int64
	access Access
	closed atomic.Bool
}

// CreateViewAccessor creates a random-access view over [offset, offset+size)
// with the map's own access mode. A size of 0 extends the view to the end
// of the map.
func (m *MemoryMap) CreateViewAccessor(offset, size int64) (*ViewAccessor, error) {
	return m.CreateViewAccessorWithAccess(offset, size, m.access)
}

// CreateViewAccessorWithAccess creates a random-access view with its own
// access mode, which must not exceed the map's.
func (m *MemoryMap) CreateViewAccessorWithAccess(offset, size int64, access Access) (*ViewAccessor, error) {
	v, err := m.newView("CreateViewAccessor", offset, size, access)
	if err != nil {
		return nil, err
	}
	return &ViewAccessor{view: v}, nil
}

// CreateViewStream creates a sequential view over [offset, offset+size)
// with the map's own access mode. A size of 0 extends the view to the end
// of the map.
func (m *MemoryMap) CreateViewStream(offset, size int64) (*ViewStream, error) {
	return m.CreateViewStreamWithAccess(offset, size, m.access)
}

// CreateViewStreamWithAccess creates a sequential view with its own access
// mode, which must not exceed the map's.
func (m *MemoryMap) CreateViewStreamWithAccess(offset, size int64, access Access) (*ViewStream, error) {
	v, err := m.newView("CreateViewStream", offset, size, access)
	if err != nil {
		return nil, err
	}
	return &ViewStream{view: v}, nil
}

func (m *MemoryMap) newView(op string, offset, size int64, access Access) (*view, error) {
	if !access.defined() || access == WriteOnly {
		return nil, invalidArgument("access", fmt.Sprintf("undefined view access value %d", int(access)))
	}
	if !m.access.permits(access) {
		return nil, invalidArgument("access", fmt.Sprintf("view access %s exceeds map access %s", access, m.access))
	}
	if offset < 0 {
		return nil, invalidArgument("offset", "offset must not be negative")
	}
	if size < 0 {
		return nil, invalidArgument("size", "size must not be negative")
	}
	if offset > m.capacity {
		return nil, outOfRange("offset", fmt.Sprintf("offset %d beyond capacity %d", offset, m.capacity))
	}
	remaining := m.capacity - offset
	if size == 0 {
		size = remaining
	}
	if size > remaining {
		return nil, outOfRange("size", fmt.Sprintf("view of %d bytes at offset %d exceeds capacity %d", size, offset, m.capacity))
	}

	region, err := m.handle.use(op)
	if err != nil {
		return nil, err
	}
	return &view{region: region, offset: offset, length: size, access: access}, nil
}

// Capacity returns the view's length in bytes.
func (v *view) Capacity() int64 {
	return v.length
}

// Access returns the view's access mode.
func (v *view) Access() Access {
	return v.access
}

// Flush writes dirty pages in the view's range back to the OS.
func (v *view) Flush() error {
	if v.closed.Load() {
		return useAfterClose("Flush")
	}
	return v.region.Flush()
}

// Close drops the view's claim on the underlying pages. Idempotent; never
// touches the owning map's handle.
func (v *view) Close() error {
	if v.closed.CompareAndSwap(false, true) {
		v.region.Release()
	}
	return nil
}

func (v *view) bytes() []byte {
	return v.region.Bytes()[v.offset : v.offset+v.length]
}

// ViewAccessor is a random-access window into a map. Reads and writes at
// arbitrary offsets within the view; safe for concurrent use by multiple
// goroutines as long as ranges do not overlap.
type ViewAccessor struct {
	*view
}

// ReadAt implements io.ReaderAt over the view's range.
func (v *ViewAccessor) ReadAt(p []byte, off int64) (int, error) {
	if v.closed.Load() {
		return 0, useAfterClose("ReadAt")
	}
	if !v.access.readable() {
		return 0, invalidArgument("access", "view is write-only")
	}
	if off < 0 {
		return 0, invalidArgument("offset", "offset must not be negative")
	}
	if off >= v.length {
		return 0, io.EOF
	}
	n := copy(p, v.bytes()[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements io.WriterAt over the view's range.
func (v *ViewAccessor) WriteAt(p []byte, off int64) (int, error) {
	if v.closed.Load() {
		return 0, useAfterClose("WriteAt")
	}
	if !v.access.writable() {
		return 0, invalidArgument("access", "view is read-only")
	}
	if off < 0 {
		return 0, invalidArgument("offset", "offset must not be negative")
	}
	if off >= v.length {
		return 0, outOfRange("offset", fmt.Sprintf("offset %d beyond view capacity %d", off, v.length))
	}
	n := copy(v.bytes()[off:], p)
	if n < len(p) {
		return n, outOfRange("size", "write extends beyond view capacity")
	}
	return n, nil
}

// Bytes returns the view's window as a slice aliasing the mapped pages.
// The slice is valid until the view is closed.
func (v *ViewAccessor) Bytes() ([]byte, error) {
	if v.closed.Load() {
		return nil, useAfterClose("Bytes")
	}
	return v.bytes(), nil
}

// ViewStream is a sequential window into a map implementing io.Reader,
// io.Writer and io.Seeker. Not safe for concurrent use.
type ViewStream struct {
	*view
	pos int64
}

// Read implements io.Reader.
func (v *ViewStream) Read(p []byte) (int, error) {
	if v.closed.Load() {
		return 0, useAfterClose("Read")
	}
	if !v.access.readable() {
		return 0, invalidArgument("access", "view is write-only")
	}
	if v.pos >= v.length {
		return 0, io.EOF
	}
	n := copy(p, v.bytes()[v.pos:])
	v.pos += int64(n)
	return n, nil
}

// Write implements io.Writer. Writing past the end of the view fails with
// an OutOfRange error after the writable prefix has been copied.
func (v *ViewStream) Write(p []byte) (int, error) {
	if v.closed.Load() {
		return 0, useAfterClose("Write")
	}
	if !v.access.writable() {
		return 0, invalidArgument("access", "view is read-only")
	}
	if v.pos >= v.length {
		return 0, outOfRange("size", "write beyond end of view")
	}
	n := copy(v.bytes()[v.pos:], p)
	v.pos += int64(n)
	if n < len(p) {
		return n, outOfRange("size", "write beyond end of view")
	}
	return n, nil
}

// Seek implements io.Seeker.
func (v *ViewStream) Seek(offset int64, whence int) (int64, error) {
	if v.closed.Load() {
		return 0, useAfterClose("Seek")
	}
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = v.pos + offset
	case io.SeekEnd:
		pos = v.length + offset
	default:
		return 0, invalidArgument("whence", fmt.Sprintf("undefined whence value %d", whence))
	}
	if pos < 0 {
		return 0, invalidArgument("offset", "seek before start of view")
	}
	v.pos = pos
	return pos, nil
}

// Position returns the stream's current offset within the view.
func (v *ViewStream) Position() int64 {
	return v.pos
}
