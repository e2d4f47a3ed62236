package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"time-track-invoice/internal/domain"
)

func TestSettingsReadBeforeWrite(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewSettingsService(repo, zap.NewNop())

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.Settings{}, settings)
}

func TestSettingsUpdateAndGet(t *testing.T) {
	repo := setupTestRepo(t)
	svc := NewSettingsService(repo, zap.NewNop())

	want := domain.Settings{
		OwnerName:       "J Smith",
		Address:         "1 High Street",
		Postcode:        "AB1 2CD",
		VATNumber:       "GB123456789",
		BankAccountName: "J Smith Consulting",
		SortCode:        "12-34-56",
		AccountNumber:   "12345678",
	}
	require.NoError(t, svc.Update(context.Background(), want))

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &want, got)

	// A later write replaces the whole record
	require.NoError(t, svc.Update(context.Background(), domain.Settings{OwnerName: "J Smith"}))

	got, err = svc.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.VATNumber)
}
