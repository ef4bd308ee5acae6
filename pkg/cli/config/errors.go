package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidConfig    = goerr.New("invalid configuration")
	ErrUnknownType      = goerr.New("unknown entity type in mapping")
	ErrDuplicateMapping = goerr.New("duplicate category in mapping")
)
