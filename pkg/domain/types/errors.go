package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption    = goerr.New("invalid option")
	ErrValidationFailed = goerr.New("validation failed")

	// ErrBadRequest is returned when an ingest request carries no usable body
	ErrBadRequest = goerr.New("bad request")
	// ErrUnconfigured is returned when a required backend (event store,
	// reputation source) is not bound
	ErrUnconfigured = goerr.New("not configured")
	ErrUpstream     = goerr.New("upstream error")
	ErrStore        = goerr.New("store error")
	ErrNotFound     = goerr.New("not found")
)
