package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/types"
)

func TestRegisterOrLoginEndpoint(t *testing.T) {
	env := setupAPI(t)

	first := env.do(t, http.MethodPost, "/auth", map[string]string{"email": "a@x.com", "secret": "p1"}, "")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	created := decode[types.AuthResponse](t, first)
	assert.NotEmpty(t, created.Token)
	assert.Equal(t, "a@x.com", created.Email)

	second := env.do(t, http.MethodPost, "/auth", map[string]string{"email": "a@x.com", "secret": "p1"}, "")
	require.Equal(t, http.StatusOK, second.Code)
	matched := decode[types.AuthResponse](t, second)
	assert.Equal(t, created.ID, matched.ID)

	var n int64
	require.NoError(t, env.store.DB().Model(&models.Account{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestRegisterOrLoginPasswordAlias(t *testing.T) {
	env := setupAPI(t)

	w := env.do(t, http.MethodPost, "/auth", map[string]string{"email": "b@x.com", "password": "p1"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPost, "/auth", map[string]string{"email": "b@x.com", "secret": "p1"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterOrLoginErrors(t *testing.T) {
	env := setupAPI(t)
	env.login(t, "taken@x.com")

	tests := []struct {
		name   string
		body   any
		status int
		field  string
	}{
		{"wrong secret", map[string]string{"email": "taken@x.com", "secret": "nope"}, http.StatusUnauthorized, ""},
		{"missing email", map[string]string{"secret": "p1"}, http.StatusBadRequest, "email"},
		{"missing secret", map[string]string{"email": "c@x.com"}, http.StatusBadRequest, "secret"},
		{"malformed json", `{"email":`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/auth", tt.body, "")
			assert.Equal(t, tt.status, w.Code)

			body := decode[types.ErrorResponse](t, w)
			assert.NotEmpty(t, body.Error)
			if tt.field != "" {
				require.Len(t, body.Fields, 1)
				assert.Equal(t, tt.field, body.Fields[0].Field)
			}
		})
	}
}
