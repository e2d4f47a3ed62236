package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"time-track-invoice/internal/errors"
)

func TestValidateSessionID(t *testing.T) {
	sv := NewSessionValidator()

	assert.NoError(t, sv.ValidateSessionID("s1"))
	assert.Error(t, sv.ValidateSessionID(""))
	assert.Error(t, sv.ValidateSessionID("   "))
}

func TestValidateManualRange(t *testing.T) {
	sv := NewSessionValidator()
	base := time.Now().Add(-24 * time.Hour)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{
			name:  "valid interval",
			start: base,
			end:   base.Add(2 * time.Hour),
		},
		{
			name:  "one minute interval",
			start: base,
			end:   base.Add(time.Minute),
		},
		{
			name:    "end equal to start",
			start:   base,
			end:     base,
			wantErr: true,
		},
		{
			name:    "end before start",
			start:   base,
			end:     base.Add(-time.Hour),
			wantErr: true,
		},
		{
			name:    "zero start",
			start:   time.Time{},
			end:     base,
			wantErr: true,
		},
		{
			name:    "zero end",
			start:   base,
			end:     time.Time{},
			wantErr: true,
		},
		{
			name:    "duration above bound",
			start:   base,
			end:     base.Add(25 * time.Hour),
			wantErr: true,
		},
		{
			name:    "start in distant past",
			start:   time.Now().AddDate(-11, 0, 0),
			end:     time.Now().AddDate(-11, 0, 0).Add(time.Hour),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sv.ValidateManualRange(tt.start, tt.end)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
