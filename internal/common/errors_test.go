package common

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorCollectsFields(t *testing.T) {
	vErr := &ValidationError{}
	vErr.Add("hours_worked", "too many hours")
	vErr.Add("description", "too short")

	assert.True(t, vErr.HasErrors())
	assert.Len(t, vErr.Fields, 2)
	assert.ErrorIs(t, vErr, ErrValidation)
	assert.Contains(t, vErr.Error(), "hours_worked")
	assert.Contains(t, vErr.Error(), "description")
}

func TestValidationErrorCarriesSentinelCauses(t *testing.T) {
	vErr := &ValidationError{}
	vErr.AddCause("hourly_rate", ErrRateNotSet, "contact HR")

	assert.ErrorIs(t, vErr, ErrValidation)
	assert.ErrorIs(t, vErr, ErrRateNotSet)
	assert.NotErrorIs(t, vErr, ErrNotFound)
}

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrValidation, http.StatusBadRequest},
		{ErrRateNotSet, http.StatusBadRequest},
		{ErrConflict, http.StatusConflict},
		{errors.New("something exploded"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatusFromError(tt.err))
	}

	// Wrapped errors still map.
	wrapped := Errorf("loading claim: %w", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromError(wrapped))
}
