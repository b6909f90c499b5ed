package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsKeepsFirstMessagePerField(t *testing.T) {
	errs := Errors{}
	errs.Add("amount", "is required")
	errs.Add("amount", "must be positive")
	errs.Add("date", "is required")

	assert.Equal(t, "is required", errs["amount"])
	assert.True(t, errs.Has("date"))
	assert.Equal(t, "validation failed: amount: is required; date: is required", errs.Error())
}

func TestErrorsErrIsNilWhenEmpty(t *testing.T) {
	assert.NoError(t, Errors{}.Err())
}

func TestErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create: %w", Errors{"type": "must be income or expense"}.Err())

	var errs Errors
	require.True(t, errors.As(wrapped, &errs))
	assert.Equal(t, "must be income or expense", errs["type"])
}
