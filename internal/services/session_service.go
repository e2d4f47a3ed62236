package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"time-track-invoice/internal/billing"
	"time-track-invoice/internal/domain"
	"time-track-invoice/internal/errors"
	"time-track-invoice/internal/repository/sqlite"
	"time-track-invoice/internal/validation"
)

// timeNow is a variable so tests can control the clock
var timeNow = time.Now

// sessionServiceImpl implements the SessionService interface
type sessionServiceImpl struct {
	repo             sqlite.Repository
	mapper           *domain.Mapper
	jobValidator     *validation.JobValidator
	sessionValidator *validation.SessionValidator
	logger           *zap.Logger
}

// NewSessionService creates a new SessionService instance with default
// validation limits
func NewSessionService(repo sqlite.Repository, logger *zap.Logger) SessionService {
	return NewSessionServiceWithValidator(repo, validation.NewValidator(), logger)
}

// NewSessionServiceWithValidator creates a SessionService whose
// validators share the given base validator
func NewSessionServiceWithValidator(repo sqlite.Repository, v *validation.Validator, logger *zap.Logger) SessionService {
	return &sessionServiceImpl{
		repo:             repo,
		mapper:           domain.NewMapper(),
		jobValidator:     validation.NewJobValidatorWithValidator(v),
		sessionValidator: validation.NewSessionValidatorWithValidator(v),
		logger:           logger,
	}
}

// StartTimer begins a running session for the given job. The
// at-most-one-active-session invariant is account-wide: starting is
// refused while any session is running, whichever job owns it. The
// check-then-act is defensive only; the storage layer resolves races
// by last write wins.
func (s *sessionServiceImpl) StartTimer(ctx context.Context, jobID string) (*domain.Session, error) {
	if err := s.jobValidator.ValidateJobID(jobID); err != nil {
		return nil, err
	}

	// The job must exist
	if _, err := s.repo.GetJob(ctx, jobID); err != nil {
		return nil, err
	}

	active, err := s.repo.FindActiveSession(ctx)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, errors.NewConflictError("a session is already running").
			WithContext("active_job_id", active.JobID)
	}

	dbSession := &sqlite.Session{
		JobID:     jobID,
		StartTime: timeNow().UnixMilli(),
		EndTime:   nil,
	}
	if err := s.repo.CreateSession(ctx, dbSession); err != nil {
		return nil, err
	}

	session := s.mapper.Session.FromDatabase(*dbSession)
	return &session, nil
}

// StopTimer ends the active session for the given job. This is the only
// place rounding is applied to timer-based sessions.
func (s *sessionServiceImpl) StopTimer(ctx context.Context, jobID string) (*domain.Session, error) {
	if err := s.jobValidator.ValidateJobID(jobID); err != nil {
		return nil, err
	}

	dbSession, err := s.repo.FindActiveSessionForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if dbSession == nil {
		return nil, errors.NewNotFoundError("active session for job", jobID)
	}

	now := timeNow()
	elapsed := now.Sub(time.UnixMilli(dbSession.StartTime))
	endMs := now.UnixMilli()

	dbSession.EndTime = &endMs
	dbSession.DurationMs = billing.RoundToNext15(elapsed).Milliseconds()

	if err := s.repo.UpdateSession(ctx, dbSession); err != nil {
		return nil, err
	}

	session := s.mapper.Session.FromDatabase(*dbSession)
	return &session, nil
}

// AddManualEntry records an already-finished interval for the given job.
// The entry is terminal at creation and never consults the
// active-session invariant; a manual entry may be added while a timer runs.
func (s *sessionServiceImpl) AddManualEntry(ctx context.Context, jobID string, start, end time.Time) (*domain.Session, error) {
	if err := s.jobValidator.ValidateJobID(jobID); err != nil {
		return nil, err
	}
	if err := s.sessionValidator.ValidateManualRange(start, end); err != nil {
		return nil, err
	}

	// The job must exist
	if _, err := s.repo.GetJob(ctx, jobID); err != nil {
		return nil, err
	}

	endMs := end.UnixMilli()
	dbSession := &sqlite.Session{
		JobID:      jobID,
		StartTime:  start.UnixMilli(),
		EndTime:    &endMs,
		DurationMs: billing.RoundToNext15(end.Sub(start)).Milliseconds(),
	}
	if err := s.repo.CreateSession(ctx, dbSession); err != nil {
		return nil, err
	}

	s.logger.Debug("manual entry recorded",
		zap.String("job_id", jobID),
		zap.Duration("billed", time.Duration(dbSession.DurationMs)*time.Millisecond))

	session := s.mapper.Session.FromDatabase(*dbSession)
	return &session, nil
}

// DeleteSession removes a session unconditionally. Aggregates are
// derived on read, so no recomputation happens here.
func (s *sessionServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.sessionValidator.ValidateSessionID(sessionID); err != nil {
		return err
	}
	return s.repo.DeleteSession(ctx, sessionID)
}

// ActiveSession returns the currently running session, or nil when none exists.
func (s *sessionServiceImpl) ActiveSession(ctx context.Context) (*domain.Session, error) {
	dbSession, err := s.repo.FindActiveSession(ctx)
	if err != nil {
		return nil, err
	}
	if dbSession == nil {
		return nil, nil
	}

	session := s.mapper.Session.FromDatabase(*dbSession)
	return &session, nil
}
