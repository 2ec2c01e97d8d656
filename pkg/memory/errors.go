package memory

import "errors"

var (
	ErrInvalidSize     = errors.New("grid must have at least one row and one column")
	ErrOddGrid         = errors.New("grid must have an even number of cells")
	ErrCatalogTooSmall = errors.New("not enough distinct values for the grid")
	ErrUnknownMode     = errors.New("unknown mode")
	ErrUnknownPolicy   = errors.New("unknown resolve policy")
	ErrNoSuchCard      = errors.New("no card at index")
)
