package health

import "context"

// EnginePinger verifies search engine connectivity.
type EnginePinger interface {
	Ping(ctx context.Context) error
}

// CachePinger verifies result cache connectivity.
type CachePinger interface {
	Ping(ctx context.Context) error
}
