package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/service"
)

// AccountIDKey is the gin context key holding the authenticated account id.
const AccountIDKey = "account_id"

// TokenVerifier maps a bearer token to the account it was issued for.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (uuid.UUID, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the caller's account id under AccountIDKey.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			_ = c.Error(service.ErrUnauthenticated)
			c.Abort()
			return
		}

		accountID, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(AccountIDKey, accountID)
		c.Next()
	}
}

// AccountID returns the id stored by AuthMiddleware.
func AccountID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(AccountIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
