// Package store defines the persistence contracts for accounts and recipes.
// Implementations live in gormstore (Postgres, SQLite) and mongostore.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pageza/recipebox/backend/internal/models"
)

var (
	// ErrNotFound is returned when a point lookup matches nothing.
	ErrNotFound = errors.New("store: record not found")
	// ErrDuplicateEmail is returned when an account insert hits the unique email index.
	ErrDuplicateEmail = errors.New("store: email already registered")
)

// AccountStore persists accounts.
type AccountStore interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	FindAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	FindAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
}

// RecipeQuery selects a page of recipes ordered by ascending id.
type RecipeQuery struct {
	// Text is matched case-insensitively against title, description and ingredients.
	Text string
	// After is the last id of the previous page; nil starts from the beginning.
	After *uuid.UUID
	Limit int
}

// RecipeStore persists recipes.
type RecipeStore interface {
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	FindRecipeByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	FindRecipeByTitle(ctx context.Context, title string) (*models.Recipe, error)
	ListRecipes(ctx context.Context, q RecipeQuery) ([]models.Recipe, error)
}

// Store is the full persistence surface used by the services.
type Store interface {
	AccountStore
	RecipeStore
	Ping(ctx context.Context) error
	Close() error
}
