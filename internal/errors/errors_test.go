package errors_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerrors "github.com/storehubapp/storehub-server/internal/errors"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code domainerrors.Code
		want int
	}{
		{domainerrors.CodeNotFound, http.StatusNotFound},
		{domainerrors.CodeConflict, http.StatusConflict},
		{domainerrors.CodeUnauthorized, http.StatusUnauthorized},
		{domainerrors.CodeInvalidCredentials, http.StatusUnauthorized},
		{domainerrors.CodeTokenRevoked, http.StatusUnauthorized},
		{domainerrors.CodeForbidden, http.StatusForbidden},
		{domainerrors.CodeValidation, http.StatusBadRequest},
		{domainerrors.CodeInternal, http.StatusInternalServerError},
		{domainerrors.Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.HTTPStatus(), "code %s", tt.code)
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := domainerrors.InvalidCredentials("invalid username or password")

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, domainerrors.ErrTokenRevoked)
}

func TestValidationWithDetails(t *testing.T) {
	err := domainerrors.ValidationWithDetails("validation failed", map[string]string{"name": "is required"})

	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
	assert.Equal(t, "validation failed", err.Error())
	assert.Contains(t, err.Details.(map[string]string), "name")
}
