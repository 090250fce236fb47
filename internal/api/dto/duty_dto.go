package dto

import "time"

// ClockInRequest payload.
type ClockInRequest struct {
	UserID      string   `json:"user_id"`
	Assignments []string `json:"assignments"`
}

// ClockOutRequest payload.
type ClockOutRequest struct {
	UserID string `json:"user_id"`
}

// SessionResponse view of a single duty session.
type SessionResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Assignments []string   `json:"assignments"`
	ClockIn     time.Time  `json:"clock_in"`
	ClockOut    *time.Time `json:"clock_out"`
	Duration    string     `json:"duration,omitempty"`
}

// UserReportResponse bundles a user's closed sessions with the total.
type UserReportResponse struct {
	UserID   string            `json:"user_id"`
	From     time.Time         `json:"from"`
	Sessions []SessionResponse `json:"sessions"`
	Total    string            `json:"total"`
}

// LeaderboardRow is one ranked leaderboard entry.
type LeaderboardRow struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	Total    string `json:"total"`
	Sessions int    `json:"sessions"`
}

// LoginRequest payload.
type LoginRequest struct {
	OperatorID string `json:"operator_id"`
	Password   string `json:"password"`
}

// LoginResponse payload.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
