// Package shmap creates memory-mapped regions of virtual memory backed by
// anonymous storage or, where the platform supports it, by a named kernel
// mapping object that independent processes can attach to by name.
//
// The package normalizes two incompatible OS models behind one creation
// contract: Windows sections carry a system-wide name and reserve exactly
// the requested pages, while Unix anonymous mappings have no naming
// facility and round every reservation up to the page size. Validation,
// error classification and the dispose semantics are identical everywhere;
// only the naming capability and the point at which an oversized capacity
// is detected differ, and both are reported through the error taxonomy
// rather than silently papered over.
//
// Key properties:
//   - Effective capacity is the requested capacity rounded up to the page
//     size, never less than what was asked for
//   - Named creation is atomic: of two concurrent creations with the same
//     name exactly one wins, the other fails with an IOFailure error
//   - No data survives the last holder of a name; a recreated map starts
//     zero-filled
//   - Close is idempotent and immediately revokes view creation; views
//     already created keep their own claim on the pages
//
// Basic usage:
//
//	m, err := shmap.CreateAnonymous(1 << 20)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Close()
//
//	acc, err := m.CreateViewAccessor(0, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer acc.Close()
//
//	if _, err := acc.WriteAt([]byte("hello"), 0); err != nil {
//	    log.Fatal(err)
//	}
package shmap
