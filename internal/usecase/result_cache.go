package usecase

import (
	"context"
	"time"
)

// ResultCache stores materialized result pages. The redis adapter degrades
// to a no-op when the server is unreachable, so a nil-safe miss path is
// part of the contract.
type ResultCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}
