package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/community-ops/internal/events"
	"github.com/spec-kit/community-ops/internal/repository"
)

func newTestRepository(t *testing.T) *repository.DocumentRepository {
	t.Helper()
	medium := repository.NewFileStore(filepath.Join(t.TempDir(), "records.json"), zap.NewNop())
	repo := repository.NewDocumentRepository(medium, zap.NewNop())
	require.NoError(t, repo.Hydrate(context.Background()))
	return repo
}

func newTestDispatcher() events.Dispatcher {
	return events.NewInMemoryDispatcher()
}
