package ports

import (
	"context"

	"github.com/aretw0/abacus/pkg/domain"
)

// ResultCache memoizes successful calculations keyed by their whitespace-free input.
// Tokenization and evaluation are pure, so a cached Result never goes stale.
type ResultCache interface {
	// Get returns the cached result for key.
	// Returns domain.ErrCacheMiss if no entry exists.
	Get(ctx context.Context, key string) (domain.Result, error)

	// Set stores result under key, replacing any previous entry.
	Set(ctx context.Context, key string, result domain.Result) error

	// Delete removes the entry for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
