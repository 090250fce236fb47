package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/community-ops/internal/domain"
	apperrors "github.com/spec-kit/community-ops/pkg/util"
)

func newApplicationService(t *testing.T) *ApplicationService {
	t.Helper()
	return NewApplicationService(newTestRepository(t), newTestDispatcher(), zap.NewNop())
}

func TestSubmitValidation(t *testing.T) {
	svc := newApplicationService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input ApplicationSubmitInput
	}{
		{"missing id", ApplicationSubmitInput{UserID: "user-1", Division: "Moderation"}},
		{"blank id", ApplicationSubmitInput{ID: "   ", UserID: "user-1", Division: "Moderation"}},
		{"missing user", ApplicationSubmitInput{ID: "app-1", Division: "Moderation"}},
		{"missing division", ApplicationSubmitInput{ID: "app-1", UserID: "user-1"}},
		{"blank user", ApplicationSubmitInput{ID: "app-1", UserID: "   ", Division: "Moderation"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tc.input)
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, "INVALID_RECORD"))
		})
	}
}

func TestSubmitStoresPendingApplication(t *testing.T) {
	svc := newApplicationService(t)

	app, err := svc.Submit(context.Background(), ApplicationSubmitInput{
		ID:       "app-1",
		UserID:   "user-1",
		Division: "Moderation",
		Answers:  map[string]string{"why": "to help"},
	})
	require.NoError(t, err)
	assert.Equal(t, "app-1", app.ID)
	assert.Equal(t, domain.ApplicationStatusPending, app.Status)
	assert.Nil(t, app.DecidedAt)
	assert.Nil(t, app.DecidedBy)
	assert.False(t, app.CreatedAt.IsZero())
}

func TestFindLatestForUserPicksMaxCreatedAt(t *testing.T) {
	repo := newTestRepository(t)
	svc := NewApplicationService(repo, newTestDispatcher(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Mutate(ctx, func(doc *domain.Document) error {
		doc.Applications = append(doc.Applications,
			domain.Application{ID: "a1", UserID: "user-1", Division: "A", Status: domain.ApplicationStatusPending, CreatedAt: time.Unix(100, 0)},
			domain.Application{ID: "a2", UserID: "user-1", Division: "B", Status: domain.ApplicationStatusPending, CreatedAt: time.Unix(200, 0)},
			domain.Application{ID: "a3", UserID: "user-2", Division: "C", Status: domain.ApplicationStatusPending, CreatedAt: time.Unix(300, 0)},
		)
		return nil
	}))

	latest, err := svc.FindLatestForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "a2", latest.ID)
}

func TestFindLatestForUserTieBreaksToLastInserted(t *testing.T) {
	repo := newTestRepository(t)
	svc := NewApplicationService(repo, newTestDispatcher(), zap.NewNop())
	ctx := context.Background()

	same := time.Unix(100, 0)
	require.NoError(t, repo.Mutate(ctx, func(doc *domain.Document) error {
		doc.Applications = append(doc.Applications,
			domain.Application{ID: "first", UserID: "user-1", Division: "A", CreatedAt: same},
			domain.Application{ID: "second", UserID: "user-1", Division: "A", CreatedAt: same},
		)
		return nil
	}))

	latest, err := svc.FindLatestForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "second", latest.ID)
}

func TestFindLatestForUserAbsent(t *testing.T) {
	svc := newApplicationService(t)
	_, err := svc.FindLatestForUser(context.Background(), "nobody")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestDecideApprovalOverwritesDivision(t *testing.T) {
	svc := newApplicationService(t)
	ctx := context.Background()

	app, err := svc.Submit(ctx, ApplicationSubmitInput{ID: "app-1", UserID: "user-1", Division: "Trial"})
	require.NoError(t, err)

	decided, err := svc.Decide(ctx, DecisionInput{
		ApplicationID: app.ID,
		Outcome:       domain.ApplicationStatusApproved,
		DecidedBy:     "mod-1",
		Extra:         "Moderation",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusApproved, decided.Status)
	assert.Equal(t, "Moderation", decided.Division)
	assert.Empty(t, decided.DecisionReason)
	require.NotNil(t, decided.DecidedAt)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, "mod-1", *decided.DecidedBy)
}

func TestDecideApprovalWithoutExtraKeepsDivision(t *testing.T) {
	svc := newApplicationService(t)
	ctx := context.Background()

	app, err := svc.Submit(ctx, ApplicationSubmitInput{ID: "app-1", UserID: "user-1", Division: "Trial"})
	require.NoError(t, err)

	decided, err := svc.Decide(ctx, DecisionInput{
		ApplicationID: app.ID,
		Outcome:       domain.ApplicationStatusApproved,
		DecidedBy:     "mod-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusApproved, decided.Status)
	assert.Equal(t, "Trial", decided.Division)
}

func TestDecideDenialStoresReason(t *testing.T) {
	svc := newApplicationService(t)
	ctx := context.Background()

	app, err := svc.Submit(ctx, ApplicationSubmitInput{ID: "app-1", UserID: "user-1", Division: "Trial"})
	require.NoError(t, err)

	decided, err := svc.Decide(ctx, DecisionInput{
		ApplicationID: app.ID,
		Outcome:       domain.ApplicationStatusDenied,
		DecidedBy:     "mod-1",
		Extra:         "too little experience",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusDenied, decided.Status)
	assert.Equal(t, "too little experience", decided.DecisionReason)
	assert.Equal(t, "Trial", decided.Division)
}

func TestDecideUnknownApplication(t *testing.T) {
	svc := newApplicationService(t)
	_, err := svc.Decide(context.Background(), DecisionInput{
		ApplicationID: "missing",
		Outcome:       domain.ApplicationStatusApproved,
		DecidedBy:     "mod-1",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestDecideIsMonotonicWithoutOverride(t *testing.T) {
	svc := newApplicationService(t)
	ctx := context.Background()

	app, err := svc.Submit(ctx, ApplicationSubmitInput{ID: "app-1", UserID: "user-1", Division: "Trial"})
	require.NoError(t, err)

	first, err := svc.Decide(ctx, DecisionInput{
		ApplicationID: app.ID,
		Outcome:       domain.ApplicationStatusApproved,
		DecidedBy:     "mod-1",
		Extra:         "Moderation",
	})
	require.NoError(t, err)

	// a second decision cannot move the status away from its terminal value
	_, err = svc.Decide(ctx, DecisionInput{
		ApplicationID: app.ID,
		Outcome:       domain.ApplicationStatusDenied,
		DecidedBy:     "mod-2",
		Extra:         "changed my mind",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "ALREADY_DECIDED"))

	latest, err := svc.FindLatestForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, first.Status, latest.Status)
	assert.Equal(t, *first.DecidedAt, *latest.DecidedAt)
}

func TestDecideOverridePermitsRedecision(t *testing.T) {
	svc := newApplicationService(t)
	ctx := context.Background()

	app, err := svc.Submit(ctx, ApplicationSubmitInput{ID: "app-1", UserID: "user-1", Division: "Trial"})
	require.NoError(t, err)

	_, err = svc.Decide(ctx, DecisionInput{
		ApplicationID: app.ID,
		Outcome:       domain.ApplicationStatusApproved,
		DecidedBy:     "mod-1",
		Extra:         "Moderation",
	})
	require.NoError(t, err)

	overridden, err := svc.Decide(ctx, DecisionInput{
		ApplicationID: app.ID,
		Outcome:       domain.ApplicationStatusDenied,
		DecidedBy:     "admin-1",
		Extra:         "override after review",
		Override:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusDenied, overridden.Status)
	assert.Equal(t, "override after review", overridden.DecisionReason)
	assert.Equal(t, "admin-1", *overridden.DecidedBy)
}

func TestSubmitRejectsDuplicateID(t *testing.T) {
	svc := newApplicationService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, ApplicationSubmitInput{ID: "dup", UserID: "user-1", Division: "A"})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, ApplicationSubmitInput{ID: "dup", UserID: "user-2", Division: "B"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}
