package domain

import "errors"

var (
	// ErrEmptyQuery signals a request without query text.
	ErrEmptyQuery = errors.New("query text is required")
	// ErrEngineUnavailable signals that the search engine could not be reached.
	ErrEngineUnavailable = errors.New("search engine unavailable")
	// ErrBadEngineResponse signals an engine response of unexpected shape.
	ErrBadEngineResponse = errors.New("unexpected engine response")
)
