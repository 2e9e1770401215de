//go:build unix && !linux

package mapping

// Lazy commit is the default overcommit behavior outside Linux; there is no
// flag to request it explicitly.
const noReserveFlag = 0
