package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"time-track-invoice/internal/errors"
)

func TestHandleNoRowsError(t *testing.T) {
	err := HandleNoRowsError(sql.ErrNoRows, "job", "abc-123")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "abc-123")

	// Anything other than ErrNoRows passes through unchanged
	assert.Equal(t, assert.AnError, HandleNoRowsError(assert.AnError, "job", "abc-123"))
	assert.NoError(t, HandleNoRowsError(nil, "job", "abc-123"))
}

func TestQueryTimeoutBoundsReads(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := NewWithTimeouts(dbPath, Timeouts{Query: time.Nanosecond}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	// The per-call deadline has always passed by the time the query
	// runs, so the read fails even though the caller's context is open.
	_, err = repo.GetJob(context.Background(), "any")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypePersistence))
}

func TestWriteTimeoutBoundsWrites(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := NewWithTimeouts(dbPath, Timeouts{Write: time.Nanosecond}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.CreateJob(context.Background(), &Job{Name: "doomed", HourlyRate: "10"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypePersistence))
}

func TestZeroTimeoutsLeaveCallsUnbounded(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	repo, err := NewWithTimeouts(dbPath, Timeouts{}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.CreateJob(context.Background(), &Job{Name: "job", HourlyRate: "10"}))
	jobs, err := repo.ListJobs(context.Background())
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}
