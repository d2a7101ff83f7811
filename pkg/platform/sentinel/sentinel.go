package sentinel

import "errors"

// Infrastructure facts returned by stores, optionally wrapped. Services translate
// them into coded domain errors (pkg/domain-errors); stores never decide business
// outcomes such as quota or capacity violations.
//
//   - ErrNotFound: row does not exist
//   - ErrConflict: a uniqueness constraint rejected the write
//   - ErrInvalidState: row is not in the state the write expected
//   - ErrUnavailable: backend temporarily unreachable
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
