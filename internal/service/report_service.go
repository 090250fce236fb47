package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/community-ops/internal/domain"
	"github.com/spec-kit/community-ops/internal/repository"
)

// ReportService derives duty reports from the read path only. All queries
// run against an atomic document snapshot; open sessions contribute no
// duration until they close.
type ReportService struct {
	docs   *repository.DocumentRepository
	logger *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(docs *repository.DocumentRepository, logger *zap.Logger) *ReportService {
	return &ReportService{docs: docs, logger: logger}
}

// LeaderboardEntry is one user's ranked duty total.
type LeaderboardEntry struct {
	UserID   string        `json:"user_id"`
	Total    time.Duration `json:"total"`
	Sessions int           `json:"sessions"`
}

// SessionsForUserInRange returns the user's closed sessions with
// ClockOut >= from, in insertion order.
func (s *ReportService) SessionsForUserInRange(ctx context.Context, userID string, from time.Time) []domain.DutySession {
	doc := s.docs.Snapshot(ctx)
	result := []domain.DutySession{}
	for _, session := range doc.Sessions {
		if session.UserID != userID {
			continue
		}
		if inRange(session, from) {
			result = append(result, session)
		}
	}
	return result
}

// SessionsInRange returns closed sessions across all users with
// ClockOut >= from. A non-empty assignment narrows the result to sessions
// carrying that exact assignment label.
func (s *ReportService) SessionsInRange(ctx context.Context, from time.Time, assignment string) []domain.DutySession {
	doc := s.docs.Snapshot(ctx)
	result := []domain.DutySession{}
	for _, session := range doc.Sessions {
		if !inRange(session, from) {
			continue
		}
		if assignment != "" && !session.HasAssignment(assignment) {
			continue
		}
		result = append(result, session)
	}
	return result
}

// TotalDuration sums ClockOut - ClockIn across the sequence. Overlaps cannot
// occur under the single-open-session invariant, so plain summation is
// always correct.
func TotalDuration(sessions []domain.DutySession) time.Duration {
	var total time.Duration
	for _, session := range sessions {
		total += session.Duration()
	}
	return total
}

// TopN groups sessions by user, sums durations, and ranks descending.
// Users with equal totals keep the order of their first appearance in the
// input; the result is truncated to n.
func TopN(sessions []domain.DutySession, n int) []LeaderboardEntry {
	totals := map[string]int{}
	entries := []LeaderboardEntry{}
	for _, session := range sessions {
		idx, seen := totals[session.UserID]
		if !seen {
			idx = len(entries)
			totals[session.UserID] = idx
			entries = append(entries, LeaderboardEntry{UserID: session.UserID})
		}
		entries[idx].Total += session.Duration()
		entries[idx].Sessions++
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})

	if n >= 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

func inRange(session domain.DutySession, from time.Time) bool {
	return !session.Open() && !session.ClockOut.Before(from)
}
