package usecase

import "github.com/m-mizutani/goerr/v2"

var (
	ErrNotACharacter = goerr.New("entity is not a character")
)
