package repository

import (
	"context"

	"github.com/spec-kit/community-ops/internal/domain"
)

// Store is the durable medium behind the document repository. Implementations
// serialize the whole document; there is no per-record granularity in storage.
type Store interface {
	// Load returns the latest durable document. The boolean is false when no
	// document has been stored yet. Malformed stored content is not an error
	// at this level of the contract; implementations log and report absent.
	Load(ctx context.Context) (domain.Document, bool, error)
	// Replace durably and atomically overwrites the entire stored document.
	Replace(ctx context.Context, doc domain.Document) error
}
