//go:build unix

package mapping

import (
	"math"

	"golang.org/x/sys/unix"
)

// No system-wide namespace for anonymous mappings on Unix. POSIX shm_open
// could provide one, but it leaks named segments on crash and is not
// portable across the BSDs; names are gated off instead.
const namingSupported = false

// Reserve creates an anonymous region of the given size. The name must be
// empty; inheritable is a no-op because anonymous shared pages already
// survive fork.
func Reserve(name string, size int64, prot Protection, lazyCommit, inheritable bool) (*Region, error) {
	if name != "" {
		return nil, ErrNamingUnsupported
	}
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if size > int64(math.MaxInt) {
		return nil, ErrInvalidSize
	}

	p := unix.PROT_READ
	flags := unix.MAP_SHARED | unix.MAP_ANON
	switch prot {
	case ProtReadWrite:
		p |= unix.PROT_WRITE
	case ProtCopyOnWrite:
		p |= unix.PROT_WRITE
		flags = unix.MAP_PRIVATE | unix.MAP_ANON
	case ProtReadExecute:
		p |= unix.PROT_EXEC
	case ProtReadWriteExecute:
		p |= unix.PROT_WRITE | unix.PROT_EXEC
	}
	if lazyCommit {
		flags |= noReserveFlag
	}

	data, err := unix.Mmap(-1, 0, int(size), p, flags)
	if err != nil {
		return nil, &Error{Op: "mmap", Err: err}
	}

	return &Region{
		data: data,
		size: size,
		prot: prot,
		refs: 1,
	}, nil
}

// Flush is a no-op for anonymous regions: there is no backing file to
// write pages back to.
func (r *Region) Flush() error {
	return nil
}

func (r *Region) unmap() error {
	if r.data == nil {
		return nil
	}

	err := unix.Munmap(r.data)
	r.data = nil
	r.size = 0
	return err
}
