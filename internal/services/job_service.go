package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"time-track-invoice/internal/billing"
	"time-track-invoice/internal/domain"
	"time-track-invoice/internal/repository/sqlite"
	"time-track-invoice/internal/validation"
)

// jobServiceImpl implements the JobService interface
type jobServiceImpl struct {
	repo            sqlite.Repository
	mapper          *domain.Mapper
	jobValidator    *validation.JobValidator
	clientValidator *validation.ClientValidator
	logger          *zap.Logger
}

// NewJobService creates a new JobService instance with default
// validation limits
func NewJobService(repo sqlite.Repository, logger *zap.Logger) JobService {
	return NewJobServiceWithValidator(repo, validation.NewValidator(), logger)
}

// NewJobServiceWithValidator creates a JobService whose validators share
// the given base validator
func NewJobServiceWithValidator(repo sqlite.Repository, v *validation.Validator, logger *zap.Logger) JobService {
	return &jobServiceImpl{
		repo:            repo,
		mapper:          domain.NewMapper(),
		jobValidator:    validation.NewJobValidatorWithValidator(v),
		clientValidator: validation.NewClientValidatorWithValidator(v),
		logger:          logger,
	}
}

// AddJob creates a new job, optionally assigned to a client.
func (j *jobServiceImpl) AddJob(ctx context.Context, name string, hourlyRate decimal.Decimal, clientID string) (*domain.Job, error) {
	if err := j.jobValidator.ValidateJobForCreation(name, hourlyRate); err != nil {
		return nil, err
	}

	// A named client must exist before a job can reference it
	if clientID != "" {
		if _, err := j.repo.GetClient(ctx, clientID); err != nil {
			return nil, err
		}
	}

	dbJob := j.mapper.Job.ToDatabase(domain.NewJob(name, hourlyRate, clientID))
	if err := j.repo.CreateJob(ctx, &dbJob); err != nil {
		return nil, err
	}

	job, err := j.mapper.Job.FromDatabase(dbJob)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetJob retrieves a job by its ID
func (j *jobServiceImpl) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	if err := j.jobValidator.ValidateJobID(id); err != nil {
		return nil, err
	}

	dbJob, err := j.repo.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	job, err := j.mapper.Job.FromDatabase(*dbJob)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// AssignClient links a job to a client. An empty clientID clears the link.
func (j *jobServiceImpl) AssignClient(ctx context.Context, jobID, clientID string) error {
	if err := j.jobValidator.ValidateJobID(jobID); err != nil {
		return err
	}

	if clientID == "" {
		return j.repo.UnassignClientFromJob(ctx, jobID)
	}

	if _, err := j.repo.GetClient(ctx, clientID); err != nil {
		return err
	}

	dbJob, err := j.repo.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	dbJob.ClientID = &clientID
	return j.repo.UpdateJob(ctx, dbJob)
}

// DeleteJob removes the job record. Sessions referencing it are retained;
// they become unreachable from the jobs view but stay addressable by id.
func (j *jobServiceImpl) DeleteJob(ctx context.Context, id string) error {
	if err := j.jobValidator.ValidateJobID(id); err != nil {
		return err
	}
	return j.repo.DeleteJob(ctx, id)
}

// Totals aggregates tracked time and earnings for a job. Only terminal
// sessions of the job contribute; a running session earns nothing until
// it is stopped.
func (j *jobServiceImpl) Totals(job domain.Job, sessions []domain.Session) JobTotals {
	totals := JobTotals{TotalEarnings: decimal.Zero}
	for _, session := range sessions {
		if session.JobID != job.ID || session.IsRunning() {
			continue
		}
		totals.TotalDuration += session.Duration
	}
	totals.TotalEarnings = billing.Earnings(totals.TotalDuration, job.HourlyRate)
	return totals
}

// JobsView returns all jobs prepared for rendering: most recently
// created job first, terminal sessions per job sorted descending by
// start time, totals and client names resolved.
func (j *jobServiceImpl) JobsView(ctx context.Context) ([]*JobView, error) {
	dbJobs, err := j.repo.ListJobs(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := j.mapper.Job.FromDatabaseSlice(dbJobs)
	if err != nil {
		return nil, err
	}

	dbSessions, err := j.repo.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	sessions := j.mapper.Session.FromDatabaseSlice(dbSessions)

	dbClients, err := j.repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	clientNames := make(map[string]string, len(dbClients))
	for _, client := range dbClients {
		clientNames[client.ID] = client.Name
	}

	views := make([]*JobView, 0, len(jobs))
	// Reverse of creation order: most recently created job first.
	for i := len(jobs) - 1; i >= 0; i-- {
		job := jobs[i]

		jobSessions := make([]domain.Session, 0)
		for _, session := range sessions {
			if session.JobID == job.ID && !session.IsRunning() {
				jobSessions = append(jobSessions, session)
			}
		}
		sort.Slice(jobSessions, func(a, b int) bool {
			return jobSessions[a].StartTime.After(jobSessions[b].StartTime)
		})

		views = append(views, &JobView{
			Job:        job,
			ClientName: clientNames[job.ClientID],
			Sessions:   jobSessions,
			Totals:     j.Totals(job, jobSessions),
		})
	}

	return views, nil
}
