package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
	"github.com/pageza/recipebox/backend/internal/types"
)

func newTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	s := testhelpers.NewSQLiteStore(t)
	cfg := &config.Config{
		BodyLimitBytes: 10 * 1024,
		CORSOrigins:    []string{"http://localhost:5173"},
	}
	return SetupRouter(cfg, Deps{
		Store:   s,
		Auth:    service.NewAuthService(s, testhelpers.TestJWTSecret, time.Hour, service.WithBcryptCost(bcrypt.MinCost)),
		Recipes: service.NewRecipeService(s, s),
	})
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/nowhere", "/recipe/a/b", "/api/v1/recipes"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.JSONEq(t, `{"error":"The route you requested is not found"}`, w.Body.String())
	}
}

func TestGlobalMiddleware(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestOversizedBody(t *testing.T) {
	router := newTestRouter(t)

	body := `{"email":"a@x.com","secret":"` + strings.Repeat("x", 11*1024) + `"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestAuthenticatedFlow(t *testing.T) {
	router := newTestRouter(t)
	post := func(path, body, token string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		router.ServeHTTP(w, req)
		return w
	}

	w := post("/auth", `{"email":"a@x.com","secret":"p1"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var auth types.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))

	recipe := `{"title":"Tacos","description":"d","ingredients":["beef","tortilla"],"image":{"url":"http://x/y.jpg","id":"img1"}}`
	assert.Equal(t, http.StatusUnauthorized, post("/recipe", recipe, "").Code)

	w = post("/recipe", recipe, auth.Token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created types.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/recipe/"+created.ID.String(), nil))
	require.Equal(t, http.StatusOK, w.Code)
	var got types.RecipeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Not specified", got.TotalTime)
	require.NotNil(t, got.User)
	assert.Equal(t, "a@x.com", got.User.Email)
}
