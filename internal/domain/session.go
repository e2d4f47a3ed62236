package domain

import (
	"time"
)

// Session represents a single bounded (or currently open) interval of
// tracked time attributed to one job.
type Session struct {
	ID        string
	JobID     string
	StartTime time.Time
	EndTime   *time.Time
	Duration  time.Duration // billable duration, set when the session becomes terminal
	CreatedAt time.Time
}

// NewSession creates a new running session for the given job.
func NewSession(jobID string, startTime time.Time) Session {
	return Session{
		JobID:     jobID,
		StartTime: startTime,
	}
}

// IsRunning returns true if the session is currently active (no end time).
func (s Session) IsRunning() bool {
	return s.EndTime == nil
}

// Stop sets the end time and billable duration, making the session terminal.
func (s Session) Stop(endTime time.Time, duration time.Duration) Session {
	s.EndTime = &endTime
	s.Duration = duration
	return s
}

// Elapsed returns the raw elapsed time of the session. For a running
// session this is the time since it started; for a terminal session the
// unrounded interval between start and end.
func (s Session) Elapsed(now time.Time) time.Duration {
	if s.EndTime == nil {
		return now.Sub(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// IsValid checks if the session has valid data.
func (s Session) IsValid() bool {
	if s.JobID == "" {
		return false
	}
	if s.StartTime.IsZero() {
		return false
	}
	if s.EndTime != nil && s.EndTime.Before(s.StartTime) {
		return false
	}
	return true
}
