package shmap

import (
	"fmt"

	"github.com/Giulio2002/shmap/mapping"
)

// Access describes how a map or view may be accessed.
type Access int

const (
	ReadOnly Access = iota
	ReadWrite
	CopyOnWrite
	ReadExecute
	ReadWriteExecute

	// WriteOnly is defined for completeness but is rejected when creating
	// a map: a brand-new map holds nothing worth writing blind.
	WriteOnly
)

func (a Access) String() string {
	switch a {
	case ReadOnly:
		return "ReadOnly"
	case ReadWrite:
		return "ReadWrite"
	case CopyOnWrite:
		return "CopyOnWrite"
	case ReadExecute:
		return "ReadExecute"
	case ReadWriteExecute:
		return "ReadWriteExecute"
	case WriteOnly:
		return "WriteOnly"
	}
	return fmt.Sprintf("Access(%d)", int(a))
}

func (a Access) defined() bool {
	return a >= ReadOnly && a <= WriteOnly
}

func (a Access) writable() bool {
	return a == ReadWrite || a == CopyOnWrite || a == ReadWriteExecute || a == WriteOnly
}

func (a Access) readable() bool {
	return a != WriteOnly
}

// permits reports whether a view with access v may be opened over a map
// with access a. A view never gets rights the map was not created with.
func (a Access) permits(v Access) bool {
	if v.writable() && !a.writable() {
		return false
	}
	switch v {
	case ReadExecute, ReadWriteExecute:
		if a != ReadExecute && a != ReadWriteExecute {
			return false
		}
	}
	return true
}

func (a Access) protection() mapping.Protection {
	switch a {
	case ReadWrite, WriteOnly:
		return mapping.ProtReadWrite
	case CopyOnWrite:
		return mapping.ProtCopyOnWrite
	case ReadExecute:
		return mapping.ProtReadExecute
	case ReadWriteExecute:
		return mapping.ProtReadWriteExecute
	default:
		return mapping.ProtReadOnly
	}
}

// Options are creation flags for a map.
type Options uint32

const (
	// OptionNone requests default behavior.
	OptionNone Options = 0

	// DelayAllocatePages asks the OS not to commit physical pages until
	// they are first touched.
	DelayAllocatePages Options = 1 << 0
)

func (o Options) defined() bool {
	return o&^DelayAllocatePages == 0
}

// Inheritability controls whether a child process spawned after creation
// receives a usable handle to the map.
type Inheritability int

const (
	InheritNone Inheritability = iota
	Inheritable
)

func (i Inheritability) defined() bool {
	return i == InheritNone || i == Inheritable
}

// validateCreate checks the enum arguments of a creation request.
// Pure validation, no resources touched.
func validateCreate(access Access, options Options, inherit Inheritability) error {
	if !access.defined() {
		return invalidArgument("access", fmt.Sprintf("undefined access value %d", int(access)))
	}
	if access == WriteOnly {
		return invalidArgument("access", "write-only access is not allowed when creating a map")
	}
	if !options.defined() {
		return invalidArgument("options", fmt.Sprintf("undefined option bits 0x%x", uint32(options)))
	}
	if !inherit.defined() {
		return invalidArgument("inheritability", fmt.Sprintf("undefined inheritability value %d", int(inherit)))
	}
	return nil
}
