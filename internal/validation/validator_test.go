package validation_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/storehubapp/storehub-server/internal/errors"
	"github.com/storehubapp/storehub-server/internal/validation"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
}

type itemRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=80"`
	Price float64 `json:"price" validate:"gte=0"`
}

func TestValidate_Success(t *testing.T) {
	v := validation.New()

	err := v.Validate(registerRequest{
		Username: "tester",
		Email:    "tester@example.com",
		Password: "password123",
	})
	assert.NoError(t, err)
}

func TestValidate_FieldErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       any
		wantField string
	}{
		{
			name:      "missing username",
			req:       registerRequest{Email: "t@example.com", Password: "password123"},
			wantField: "username",
		},
		{
			name:      "invalid email",
			req:       registerRequest{Username: "tester", Email: "nope", Password: "password123"},
			wantField: "email",
		},
		{
			name:      "short password",
			req:       registerRequest{Username: "tester", Email: "t@example.com", Password: "short"},
			wantField: "password",
		},
		{
			name:      "negative price",
			req:       itemRequest{Name: "Hammer", Price: -1},
			wantField: "price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())
			assert.Contains(t, fmt.Sprint(domainErr.Details), tt.wantField)
		})
	}
}

func TestValidate_DetailsUseJSONNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(registerRequest{Username: "tester", Password: "password123"})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "email")
	assert.NotContains(t, details, "Email")
}
