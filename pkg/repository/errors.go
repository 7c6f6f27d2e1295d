package repository

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidInput = goerr.New("invalid input")
)
