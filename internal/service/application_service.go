package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/community-ops/internal/domain"
	"github.com/spec-kit/community-ops/internal/events"
	"github.com/spec-kit/community-ops/internal/repository"
	apperrors "github.com/spec-kit/community-ops/pkg/util"
)

// ApplicationService coordinates the personnel application lifecycle.
type ApplicationService struct {
	docs       *repository.DocumentRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewApplicationService constructs the service.
func NewApplicationService(docs *repository.DocumentRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{docs: docs, dispatcher: dispatcher, logger: logger}
}

// ApplicationSubmitInput describes a new application. Records arrive fully
// identified; the caller assigns the id at creation.
type ApplicationSubmitInput struct {
	ID       string
	UserID   string
	Division string
	Answers  map[string]string
}

// DecisionInput describes an approve/deny decision. Extra overwrites the
// division on approval and is stored as the denial reason otherwise.
// Override permits re-deciding an already-decided application.
type DecisionInput struct {
	ApplicationID string
	Outcome       domain.ApplicationStatus
	DecidedBy     string
	Extra         string
	Override      bool
}

// Submit appends a new pending application. A record missing its id, user id
// or division is rejected outright.
func (s *ApplicationService) Submit(ctx context.Context, input ApplicationSubmitInput) (*domain.Application, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, apperrors.NewInvalidRecord("id required", nil)
	}
	if strings.TrimSpace(input.UserID) == "" {
		return nil, apperrors.NewInvalidRecord("user id required", nil)
	}
	if strings.TrimSpace(input.Division) == "" {
		return nil, apperrors.NewInvalidRecord("division required", nil)
	}

	app := domain.Application{
		ID:        id,
		UserID:    input.UserID,
		Division:  input.Division,
		Answers:   input.Answers,
		Status:    domain.ApplicationStatusPending,
		CreatedAt: time.Now(),
	}
	if app.Answers == nil {
		app.Answers = map[string]string{}
	}

	err := s.docs.Mutate(ctx, func(doc *domain.Document) error {
		for _, existing := range doc.Applications {
			if existing.ID == app.ID {
				return apperrors.NewConflict("application id already exists",
					map[string]any{"application_id": app.ID})
			}
		}
		doc.Applications = append(doc.Applications, app)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventApplicationSubmitted,
		UserID: app.UserID,
		Payload: events.ApplicationSubmittedPayload{
			ApplicationID: app.ID,
			Division:      app.Division,
		},
	})
	return &app, nil
}

// FindLatestForUser returns the user's application with the maximum
// CreatedAt. Ties break toward the last inserted record, since timestamps
// may coincide.
func (s *ApplicationService) FindLatestForUser(ctx context.Context, userID string) (*domain.Application, error) {
	doc := s.docs.Snapshot(ctx)
	var latest *domain.Application
	for i := range doc.Applications {
		app := doc.Applications[i]
		if app.UserID != userID {
			continue
		}
		if latest == nil || !app.CreatedAt.Before(latest.CreatedAt) {
			latest = &doc.Applications[i]
		}
	}
	if latest == nil {
		return nil, apperrors.NewNotFound("application", map[string]any{"user_id": userID})
	}
	return latest, nil
}

// Decide records an approval or denial. Re-deciding a decided application is
// rejected unless Override is set.
func (s *ApplicationService) Decide(ctx context.Context, input DecisionInput) (*domain.Application, error) {
	if input.Outcome != domain.ApplicationStatusApproved && input.Outcome != domain.ApplicationStatusDenied {
		return nil, apperrors.NewValidationError("outcome must be APPROVED or DENIED", nil)
	}
	if strings.TrimSpace(input.DecidedBy) == "" {
		return nil, apperrors.NewValidationError("decided_by required", nil)
	}

	var decided domain.Application
	err := s.docs.Mutate(ctx, func(doc *domain.Document) error {
		for i := range doc.Applications {
			app := &doc.Applications[i]
			if app.ID != input.ApplicationID {
				continue
			}
			if app.Status.Decided() && !input.Override {
				return apperrors.NewAlreadyDecided(app.ID)
			}
			now := time.Now()
			decidedBy := input.DecidedBy
			app.Status = input.Outcome
			app.DecidedAt = &now
			app.DecidedBy = &decidedBy
			if input.Outcome == domain.ApplicationStatusApproved {
				if input.Extra != "" {
					app.Division = input.Extra
				}
				app.DecisionReason = ""
			} else {
				app.DecisionReason = input.Extra
			}
			decided = *app
			return nil
		}
		return apperrors.NewNotFound("application", map[string]any{"application_id": input.ApplicationID})
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventApplicationDecided,
		UserID: decided.UserID,
		Payload: events.ApplicationDecidedPayload{
			ApplicationID: decided.ID,
			Status:        decided.Status,
			DecidedBy:     input.DecidedBy,
			Override:      input.Override,
		},
	})
	return &decided, nil
}

func (s *ApplicationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
