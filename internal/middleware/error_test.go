package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveError(t *testing.T, attach func(c *gin.Context)) (*httptest.ResponseRecorder, types.ErrorResponse) {
	t.Helper()
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/", attach)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		bind    bool
		status  int
		message string
	}{
		{"validation", &service.ValidationError{Fields: []service.FieldError{{Field: "title", Message: "is required"}}}, false, http.StatusBadRequest, MsgValidation},
		{"unauthenticated", service.ErrUnauthenticated, false, http.StatusUnauthorized, MsgUnauthenticated},
		{"invalid credentials", service.ErrInvalidCredentials, false, http.StatusUnauthorized, MsgInvalidCredentials},
		{"not found", service.ErrRecipeNotFound, false, http.StatusNotFound, MsgNotFound},
		{"malformed body", errors.New("unexpected EOF"), true, http.StatusBadRequest, MsgMalformedBody},
		{"body too large", &http.MaxBytesError{Limit: 10}, true, http.StatusRequestEntityTooLarge, MsgBodyTooLarge},
		{"storage fault", &service.StorageError{Op: "find recipe", Err: errors.New("pq: password authentication failed")}, false, http.StatusInternalServerError, MsgInternal},
		{"unknown error", errors.New("boom"), false, http.StatusInternalServerError, MsgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := serveError(t, func(c *gin.Context) {
				e := c.Error(tt.err)
				if tt.bind {
					e.SetType(gin.ErrorTypeBind)
				}
			})
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, body.Error)
			assert.NotContains(t, w.Body.String(), "pq:")
		})
	}
}

func TestErrorHandlerReportsFields(t *testing.T) {
	_, body := serveError(t, func(c *gin.Context) {
		_ = c.Error(&service.ValidationError{Fields: []service.FieldError{
			{Field: "servings", Message: "must be at least 1"},
			{Field: "image.url", Message: "is required"},
		}})
	})
	assert.Equal(t, []types.FieldIssue{
		{Field: "servings", Message: "must be at least 1"},
		{Field: "image.url", Message: "is required"},
	}, body.Fields)
}

func TestErrorHandlerKeepsWrittenResponse(t *testing.T) {
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/", func(c *gin.Context) {
		_ = c.Error(errors.New("logged only"))
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestNotFound(t *testing.T) {
	router := gin.New()
	router.NoRoute(NotFound)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"The route you requested is not found"}`, w.Body.String())
}
