package validation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateJobName(t *testing.T) {
	jv := NewJobValidator()

	assert.NoError(t, jv.ValidateJobName("Website redesign"))
	assert.Error(t, jv.ValidateJobName(""))
	assert.Error(t, jv.ValidateJobName("   "))
	assert.Error(t, jv.ValidateJobName(strings.Repeat("x", 256)))
	assert.NoError(t, jv.ValidateJobName(strings.Repeat("x", 255)))
}

func TestValidateHourlyRate(t *testing.T) {
	jv := NewJobValidator()

	assert.NoError(t, jv.ValidateHourlyRate(decimal.RequireFromString("39.50")))
	assert.NoError(t, jv.ValidateHourlyRate(decimal.Zero))
	assert.Error(t, jv.ValidateHourlyRate(decimal.RequireFromString("-1")))
}

func TestValidateJobForCreation(t *testing.T) {
	jv := NewJobValidator()

	assert.NoError(t, jv.ValidateJobForCreation("Design", decimal.RequireFromString("40")))
	assert.Error(t, jv.ValidateJobForCreation("", decimal.RequireFromString("40")))
	assert.Error(t, jv.ValidateJobForCreation("Design", decimal.RequireFromString("-40")))
}
