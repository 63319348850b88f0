package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/store/gormstore"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
	"github.com/pageza/recipebox/backend/internal/types"
)

type testEnv struct {
	router  *gin.Engine
	store   *gormstore.Store
	auth    *service.AuthService
	recipes *service.RecipeService
}

func setupAPI(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := testhelpers.NewSQLiteStore(t)
	authSvc := service.NewAuthService(s, testhelpers.TestJWTSecret, time.Hour, service.WithBcryptCost(bcrypt.MinCost))
	recipeSvc := service.NewRecipeService(s, s, service.WithSearchPageSize(3))

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	api.NewHealthHandler(s).RegisterRoutes(router)
	api.NewAuthHandler(authSvc).RegisterRoutes(router)
	api.NewRecipeHandler(recipeSvc, authSvc).RegisterRoutes(router)

	return &testEnv{router: router, store: s, auth: authSvc, recipes: recipeSvc}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T, email string) types.AuthResponse {
	t.Helper()
	res, err := e.auth.RegisterOrLogin(context.Background(), email, "p1")
	require.NoError(t, err)
	return types.AuthResponse{Token: res.Token, Email: res.Email, ID: res.AccountID.String()}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
