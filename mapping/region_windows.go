//go:build windows

package mapping

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// CreateFileMapping registers names in the session-local kernel namespace.
const namingSupported = true

// Reserve creates a pagefile-backed region of the given size, registered
// under name when one is given. lazyCommit is accepted but not honored
// here: a SEC_RESERVE section faults on first touch unless every page is
// committed explicitly, so sections are always created SEC_COMMIT.
func Reserve(name string, size int64, prot Protection, lazyCommit, inheritable bool) (*Region, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	pageProt, viewAccess := protFlags(prot)

	var sa *windows.SecurityAttributes
	if inheritable {
		sa = &windows.SecurityAttributes{InheritHandle: 1}
		sa.Length = uint32(unsafe.Sizeof(*sa))
	}

	var namep *uint16
	if name != "" {
		var err error
		namep, err = windows.UTF16PtrFromString(name)
		if err != nil {
			return nil, &Error{Op: "invalid name", Err: err}
		}
	}

	maxSizeHigh := uint32(uint64(size) >> 32)
	maxSizeLow := uint32(uint64(size))

	mapping, err := windows.CreateFileMapping(windows.InvalidHandle, sa, pageProt, maxSizeHigh, maxSizeLow, namep)
	if err == windows.ERROR_ALREADY_EXISTS {
		// The kernel handed back someone else's live section.
		if mapping != 0 {
			windows.CloseHandle(mapping)
		}
		return nil, ErrNameConflict
	}
	if err != nil {
		return nil, &Error{Op: "CreateFileMapping", Err: err}
	}

	addr, err := windows.MapViewOfFile(mapping, viewAccess, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(mapping)
		return nil, &Error{Op: "MapViewOfFile", Err: err}
	}

	// Create slice from mapped memory
	var data []byte
	sh := (*struct {
		Data uintptr
		Len  int
		Cap  int
	})(unsafe.Pointer(&data))
	sh.Data = addr
	sh.Len = int(size)
	sh.Cap = int(size)

	return &Region{
		data:   data,
		size:   size,
		prot:   prot,
		refs:   1,
		handle: uintptr(mapping),
	}, nil
}

// Flush writes dirty pages of the region back to the section object.
func (r *Region) Flush() error {
	if r.data == nil {
		return nil
	}
	return windows.FlushViewOfFile(uintptr(unsafe.Pointer(&r.data[0])), uintptr(r.size))
}

func (r *Region) unmap() error {
	if r.data == nil {
		return nil
	}

	addr := uintptr(unsafe.Pointer(&r.data[0]))
	err := windows.UnmapViewOfFile(addr)

	if r.handle != 0 {
		windows.CloseHandle(windows.Handle(r.handle))
		r.handle = 0
	}

	r.data = nil
	r.size = 0
	if err != nil {
		return &Error{Op: "UnmapViewOfFile", Err: err}
	}
	return nil
}

func protFlags(prot Protection) (pageProt, viewAccess uint32) {
	switch prot {
	case ProtReadWrite:
		return windows.PAGE_READWRITE, windows.FILE_MAP_READ | windows.FILE_MAP_WRITE
	case ProtCopyOnWrite:
		// COW needs a writable section; the copy-on-write semantics come
		// from the view access, not the page protection.
		return windows.PAGE_READWRITE, windows.FILE_MAP_COPY
	case ProtReadExecute:
		return windows.PAGE_EXECUTE_READ, windows.FILE_MAP_READ | windows.FILE_MAP_EXECUTE
	case ProtReadWriteExecute:
		return windows.PAGE_EXECUTE_READWRITE, windows.FILE_MAP_READ | windows.FILE_MAP_WRITE | windows.FILE_MAP_EXECUTE
	default:
		return windows.PAGE_READONLY, windows.FILE_MAP_READ
	}
}
