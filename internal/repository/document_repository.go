package repository

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/community-ops/internal/domain"
	apperrors "github.com/spec-kit/community-ops/pkg/util"
)

// DocumentRepository owns the process-wide document. It holds a mutex-guarded
// in-memory mirror of the durable state: hydrated once at startup, mutated
// only inside Mutate's critical section, flushed to the medium on every
// mutation and on shutdown. Check-then-act sequences inside a mutation
// function can never interleave with another mutation.
type DocumentRepository struct {
	mu     sync.RWMutex
	doc    domain.Document
	medium Store
	logger *zap.Logger
	dirty  bool
}

// NewDocumentRepository creates a repository over the given durable medium.
// Call Hydrate before serving operations.
func NewDocumentRepository(medium Store, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		doc:    domain.NewDocument(),
		medium: medium,
		logger: logger,
	}
}

// Hydrate loads the durable state into the mirror. Absent or discarded
// content leaves the mirror as the empty document.
func (r *DocumentRepository) Hydrate(ctx context.Context) error {
	doc, found, err := r.medium.Load(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.doc = doc
	r.mu.Unlock()
	if !found {
		r.logger.Info("no stored document, starting empty")
	} else {
		r.logger.Info("document hydrated",
			zap.Int("applications", len(doc.Applications)),
			zap.Int("tickets", len(doc.Tickets)),
			zap.Int("sessions", len(doc.Sessions)))
	}
	return nil
}

// Mutate applies fn to the document under the write lock and flushes the
// whole document to the medium before releasing it. If fn fails the document
// is untouched. If the flush fails the mutation is kept in memory, marked
// dirty for a later retry, and a typed persistence failure is returned so the
// caller can retry or alert.
func (r *DocumentRepository) Mutate(ctx context.Context, fn func(doc *domain.Document) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := r.doc.Clone()
	if err := fn(&staged); err != nil {
		return err
	}
	r.doc = staged

	if err := r.medium.Replace(ctx, staged); err != nil {
		r.dirty = true
		r.logger.Error("document flush failed", zap.Error(err))
		return apperrors.NewPersistenceFailure(err)
	}
	r.dirty = false
	return nil
}

// Snapshot returns an atomic deep copy for read-only queries. Readers never
// hold the mutation lock beyond the copy.
func (r *DocumentRepository) Snapshot(ctx context.Context) domain.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.doc.Clone()
}

// Flush writes the mirror to the medium. Used on graceful shutdown and to
// retry after a failed mutation flush.
func (r *DocumentRepository) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.medium.Replace(ctx, r.doc.Clone()); err != nil {
		return apperrors.NewPersistenceFailure(err)
	}
	r.dirty = false
	return nil
}

// Dirty reports whether the mirror holds mutations the medium has not
// accepted yet.
func (r *DocumentRepository) Dirty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dirty
}
