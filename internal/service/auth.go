package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/store"
	"github.com/pageza/recipebox/backend/internal/types"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// AuthResult is the outcome of RegisterOrLogin. Created distinguishes a new
// account from a matched one; the rest of the payload is identical.
type AuthResult struct {
	Token     string
	Email     string
	AccountID uuid.UUID
	Created   bool
}

type AuthService struct {
	accounts   store.AccountStore
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithClock replaces the clock used to stamp and check token times.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

// WithBcryptCost sets the hashing cost for new secrets.
func WithBcryptCost(cost int) AuthOption {
	return func(s *AuthService) { s.bcryptCost = cost }
}

func NewAuthService(accounts store.AccountStore, jwtSecret string, tokenTTL time.Duration, opts ...AuthOption) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	s := &AuthService{
		accounts:   accounts,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterOrLogin logs into the account registered under email, or creates
// it when the email is unseen. Emails are unique, so a known email with a
// different secret is refused instead of creating a second account.
func (s *AuthService) RegisterOrLogin(ctx context.Context, email, secret string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, newValidationError("email", "is required")
	}
	if secret == "" {
		return nil, newValidationError("secret", "is required")
	}

	account, err := s.accounts.FindAccountByEmail(ctx, email)
	switch {
	case err == nil:
		return s.login(account, secret)
	case !errors.Is(err, store.ErrNotFound):
		return nil, &StorageError{Op: "find account", Err: err}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, newValidationError("secret", "must be at most 72 bytes")
		}
		return nil, err
	}

	account = &models.Account{Email: email, SecretHash: string(hash)}
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		if !errors.Is(err, store.ErrDuplicateEmail) {
			return nil, &StorageError{Op: "create account", Err: err}
		}
		// A concurrent call registered the email first.
		winner, err := s.accounts.FindAccountByEmail(ctx, email)
		if err != nil {
			return nil, &StorageError{Op: "find account", Err: err}
		}
		return s.login(winner, secret)
	}

	token, err := s.GenerateToken(account.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Email: account.Email, AccountID: account.ID, Created: true}, nil
}

func (s *AuthService) login(account *models.Account, secret string) (*AuthResult, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(account.SecretHash), []byte(secret)); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.GenerateToken(account.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Email: account.Email, AccountID: account.ID}, nil
}

// GenerateToken signs a token for accountID that expires after the configured TTL.
func (s *AuthService) GenerateToken(accountID uuid.UUID) (string, error) {
	now := s.now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		AccountID: accountID.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken checks signature and expiry and returns the decoded claims.
// It does not consult the account store.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Verify maps a bearer token back to an existing account id. Every failure
// other than a store fault is reported as ErrUnauthenticated.
func (s *AuthService) Verify(ctx context.Context, tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, ErrUnauthenticated
	}
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, ErrUnauthenticated
	}

	raw := claims.AccountID
	if raw == "" {
		raw = claims.Subject
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrUnauthenticated
	}

	account, err := s.accounts.FindAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return uuid.Nil, ErrUnauthenticated
		}
		return uuid.Nil, &StorageError{Op: "find account", Err: err}
	}
	return account.ID, nil
}
