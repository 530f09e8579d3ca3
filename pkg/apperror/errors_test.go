package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("quantity must be positive"), http.StatusBadRequest},
		{"duplicate", fmt.Errorf("create: %w", ErrDuplicateRecord), http.StatusBadRequest},
		{"transition", fmt.Errorf("approve: %w", ErrInvalidTransition), http.StatusBadRequest},
		{"invalid id", ErrInvalidID, http.StatusBadRequest},
		{"not found", NotFound("quality control record"), http.StatusNotFound},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusCode(tc.err))
		})
	}
}

func TestValidationMessage(t *testing.T) {
	err := Validation("unknown product %s", "P-1")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation error: unknown product P-1", err.Error())
	assert.True(t, IsClientError(err))
	assert.False(t, IsClientError(errors.New("db down")))
}
