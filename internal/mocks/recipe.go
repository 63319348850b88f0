package mocks

import (
	"context"
	"iter"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/service"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

var _ service.IRecipeService = (*MockRecipeService)(nil)

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, in service.RecipeInput, owner *uuid.UUID) (*models.Recipe, error) {
	args := m.Called(ctx, in, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, id string) (*service.RecipeView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecipeView), args.Error(1)
}

// SearchRecipes yields the recipes given to On(...).Return, then the error if one was set.
func (m *MockRecipeService) SearchRecipes(ctx context.Context, query string) iter.Seq2[*models.Recipe, error] {
	args := m.Called(ctx, query)
	recipes, _ := args.Get(0).([]*models.Recipe)
	err := args.Error(1)
	return func(yield func(*models.Recipe, error) bool) {
		for _, r := range recipes {
			if !yield(r, nil) {
				return
			}
		}
		if err != nil {
			yield(nil, err)
		}
	}
}
