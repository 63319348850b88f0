package service

import (
	"context"
	"iter"

	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/models"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	RegisterOrLogin(ctx context.Context, email, secret string) (*AuthResult, error)
	Verify(ctx context.Context, token string) (uuid.UUID, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, in RecipeInput, owner *uuid.UUID) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*RecipeView, error)
	SearchRecipes(ctx context.Context, query string) iter.Seq2[*models.Recipe, error]
}

var (
	_ IAuthService   = (*AuthService)(nil)
	_ IRecipeService = (*RecipeService)(nil)
)
