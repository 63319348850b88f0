package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a bearer token. AccountID repeats the
// subject under the "id" key that existing clients decode.
type TokenClaims struct {
	jwt.RegisteredClaims
	AccountID string `json:"id"`
}
