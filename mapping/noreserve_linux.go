//go:build linux

package mapping

import "golang.org/x/sys/unix"

// MAP_NORESERVE defers swap accounting until pages are first touched.
const noReserveFlag = unix.MAP_NORESERVE
