package domain

import "time"

// DutySession records one clock-in/clock-out cycle for a user. ClockOut is
// nil while the session is in progress; for every UserID at most one session
// may be open at a time.
type DutySession struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Assignments []string   `json:"assignments"`
	ClockIn     time.Time  `json:"clockIn"`
	ClockOut    *time.Time `json:"clockOut"`
}

// Open reports whether the session is still in progress.
func (s DutySession) Open() bool {
	return s.ClockOut == nil
}

// Duration returns the completed span of the session, or zero while open.
// Totals are computed only from completed intervals, never estimated from
// "now minus clock-in".
func (s DutySession) Duration() time.Duration {
	if s.ClockOut == nil {
		return 0
	}
	return s.ClockOut.Sub(s.ClockIn)
}

// HasAssignment reports exact, case-sensitive membership.
func (s DutySession) HasAssignment(assignment string) bool {
	for _, a := range s.Assignments {
		if a == assignment {
			return true
		}
	}
	return false
}
