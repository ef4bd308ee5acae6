package kb

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for graph lookups and persistence
var (
	ErrEntityNotFound = goerr.New("entity not found")
	ErrNoEdges        = goerr.New("no edges between entities")
	ErrInvalidGraph   = goerr.New("invalid graph document")
)
