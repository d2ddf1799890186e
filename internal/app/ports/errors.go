package ports

import "errors"

// Sentinel errors shared by every store implementation. ErrNotFound
// covers missing state and empty journals, ErrConflict covers
// insufficient inventory and duplicate appends.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
