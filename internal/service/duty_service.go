package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/community-ops/internal/domain"
	"github.com/spec-kit/community-ops/internal/events"
	"github.com/spec-kit/community-ops/internal/repository"
	apperrors "github.com/spec-kit/community-ops/pkg/util"
)

// DutyService tracks clock-in/clock-out cycles. The central invariant: for
// every user at most one session may be open at a time, enforced inside the
// repository's critical section so check-and-create never interleaves with
// another mutation.
type DutyService struct {
	docs       *repository.DocumentRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewDutyService constructs the service.
func NewDutyService(docs *repository.DocumentRepository, dispatcher events.Dispatcher, logger *zap.Logger) *DutyService {
	return &DutyService{docs: docs, dispatcher: dispatcher, logger: logger}
}

// ClockIn starts a duty session. An existing open session for the user
// rejects the attempt with ALREADY_ACTIVE, which callers treat as a business
// outcome rather than a hard failure.
func (s *DutyService) ClockIn(ctx context.Context, userID string, assignments []string) (*domain.DutySession, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewInvalidRecord("user id required", nil)
	}
	cleaned := cleanAssignments(assignments)
	if len(cleaned) == 0 {
		return nil, apperrors.NewInvalidRecord("at least one assignment required", nil)
	}

	now := time.Now()
	session := domain.DutySession{
		ID:          fmt.Sprintf("%s-%d", userID, now.UnixMilli()),
		UserID:      userID,
		Assignments: cleaned,
		ClockIn:     now,
	}

	err := s.docs.Mutate(ctx, func(doc *domain.Document) error {
		for _, existing := range doc.Sessions {
			if existing.UserID == userID && existing.Open() {
				return apperrors.NewAlreadyActive(userID)
			}
		}
		doc.Sessions = append(doc.Sessions, session)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventDutyClockIn,
		UserID: userID,
		Payload: events.DutyClockPayload{
			SessionID:   session.ID,
			Assignments: session.Assignments,
		},
	})
	return &session, nil
}

// ClockOut completes the user's open session.
func (s *DutyService) ClockOut(ctx context.Context, userID string) (*domain.DutySession, error) {
	var completed domain.DutySession
	err := s.docs.Mutate(ctx, func(doc *domain.Document) error {
		for i := range doc.Sessions {
			session := &doc.Sessions[i]
			if session.UserID != userID || !session.Open() {
				continue
			}
			now := time.Now()
			session.ClockOut = &now
			completed = session.Clone()
			return nil
		}
		return apperrors.NewNotFound("open duty session", map[string]any{"user_id": userID})
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventDutyClockOut,
		UserID: userID,
		Payload: events.DutyClockPayload{
			SessionID:   completed.ID,
			Assignments: completed.Assignments,
			Duration:    completed.Duration(),
		},
	})
	return &completed, nil
}

// OpenSessionFor returns the user's in-progress session.
func (s *DutyService) OpenSessionFor(ctx context.Context, userID string) (*domain.DutySession, error) {
	doc := s.docs.Snapshot(ctx)
	for i := range doc.Sessions {
		if doc.Sessions[i].UserID == userID && doc.Sessions[i].Open() {
			return &doc.Sessions[i], nil
		}
	}
	return nil, apperrors.NewNotFound("open duty session", map[string]any{"user_id": userID})
}

// AllOpenSessions returns every in-progress session in insertion order.
func (s *DutyService) AllOpenSessions(ctx context.Context) []domain.DutySession {
	doc := s.docs.Snapshot(ctx)
	open := []domain.DutySession{}
	for _, session := range doc.Sessions {
		if session.Open() {
			open = append(open, session)
		}
	}
	return open
}

// cleanAssignments drops empty entries and removes duplicates while
// preserving first-seen order.
func cleanAssignments(assignments []string) []string {
	seen := make(map[string]struct{}, len(assignments))
	cleaned := make([]string, 0, len(assignments))
	for _, raw := range assignments {
		assignment := strings.TrimSpace(raw)
		if assignment == "" {
			continue
		}
		if _, dup := seen[assignment]; dup {
			continue
		}
		seen[assignment] = struct{}{}
		cleaned = append(cleaned, assignment)
	}
	return cleaned
}

func (s *DutyService) publishEvent(ctx context.Context, event events.Event) {
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
