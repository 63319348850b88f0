package service

import (
	"context"
	"errors"
	"iter"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/store"
)

// DefaultSearchPageSize is how many recipes SearchRecipes fetches per store round trip.
const DefaultSearchPageSize = 50

// ImageInput references an image already held by external storage.
type ImageInput struct {
	URL string `json:"url" validate:"required,max=1024"`
	ID  string `json:"id" validate:"required,max=255"`
}

// RecipeInput is the body accepted when creating a recipe.
type RecipeInput struct {
	Title        string     `json:"title" validate:"required,max=255"`
	Description  string     `json:"description" validate:"required"`
	Note         string     `json:"note"`
	Ingredients  []string   `json:"ingredients" validate:"required,min=1,dive,required"`
	Instructions []string   `json:"instructions" validate:"omitempty,dive,required"`
	PrepTime     string     `json:"prepTime" validate:"max=64"`
	CookTime     string     `json:"cookTime" validate:"max=64"`
	Servings     *int       `json:"servings" validate:"omitnil,min=1"`
	Image        ImageInput `json:"image"`
}

func (in *RecipeInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Note = strings.TrimSpace(in.Note)
	in.PrepTime = strings.TrimSpace(in.PrepTime)
	in.CookTime = strings.TrimSpace(in.CookTime)
	in.Image.URL = strings.TrimSpace(in.Image.URL)
	in.Image.ID = strings.TrimSpace(in.Image.ID)
	in.Ingredients = trimAll(in.Ingredients)
	in.Instructions = trimAll(in.Instructions)
}

func trimAll(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func (in *RecipeInput) toModel() *models.Recipe {
	recipe := &models.Recipe{
		Title:       in.Title,
		Description: in.Description,
		Note:        in.Note,
		Ingredients: in.Ingredients,
		PrepTime:    in.PrepTime,
		CookTime:    in.CookTime,
		Servings:    in.Servings,
		Image:       models.Image{URL: in.Image.URL, ExternalID: in.Image.ID},
	}
	if len(in.Instructions) > 0 {
		recipe.Instructions = in.Instructions
	}
	return recipe
}

// RecipeView is a stored recipe together with its owner, when the owner still exists.
type RecipeView struct {
	Recipe *models.Recipe
	Owner  *models.Account
}

type RecipeService struct {
	recipes  store.RecipeStore
	accounts store.AccountStore
	validate *validator.Validate
	pageSize int
}

// RecipeOption customises a RecipeService.
type RecipeOption func(*RecipeService)

// WithSearchPageSize overrides DefaultSearchPageSize.
func WithSearchPageSize(n int) RecipeOption {
	return func(s *RecipeService) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

func NewRecipeService(recipes store.RecipeStore, accounts store.AccountStore, opts ...RecipeOption) *RecipeService {
	s := &RecipeService{
		recipes:  recipes,
		accounts: accounts,
		validate: newValidator(),
		pageSize: DefaultSearchPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRecipe validates in and stores it on behalf of owner. Nothing is
// written when validation fails.
func (s *RecipeService) CreateRecipe(ctx context.Context, in RecipeInput, owner *uuid.UUID) (*models.Recipe, error) {
	in.normalize()
	if err := s.validate.Struct(in); err != nil {
		return nil, toValidationError(err)
	}

	recipe := in.toModel()
	recipe.OwnerID = owner
	if err := s.recipes.CreateRecipe(ctx, recipe); err != nil {
		return nil, &StorageError{Op: "create recipe", Err: err}
	}
	return recipe, nil
}

// GetRecipe loads a recipe and resolves its owner. Ids that do not parse are
// treated the same as ids that do not exist.
func (s *RecipeService) GetRecipe(ctx context.Context, rawID string) (*RecipeView, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, ErrRecipeNotFound
	}

	recipe, err := s.recipes.FindRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, &StorageError{Op: "find recipe", Err: err}
	}

	view := &RecipeView{Recipe: recipe}
	if recipe.OwnerID == nil {
		return view, nil
	}
	owner, err := s.accounts.FindAccountByID(ctx, *recipe.OwnerID)
	switch {
	case err == nil:
		view.Owner = owner
	case !errors.Is(err, store.ErrNotFound):
		return nil, &StorageError{Op: "find owner", Err: err}
	}
	return view, nil
}

// SearchRecipes yields every recipe matching query in ascending id order,
// fetching one page at a time. Each range over the result starts again from
// the first page; stopping early stops fetching. A store fault is yielded
// once as a StorageError and ends the sequence.
func (s *RecipeService) SearchRecipes(ctx context.Context, query string) iter.Seq2[*models.Recipe, error] {
	query = strings.TrimSpace(query)
	return func(yield func(*models.Recipe, error) bool) {
		var after *uuid.UUID
		for {
			page, err := s.recipes.ListRecipes(ctx, store.RecipeQuery{Text: query, After: after, Limit: s.pageSize})
			if err != nil {
				yield(nil, &StorageError{Op: "search recipes", Err: err})
				return
			}
			for i := range page {
				if !yield(&page[i], nil) {
					return
				}
			}
			if len(page) < s.pageSize {
				return
			}
			last := page[len(page)-1].ID
			after = &last
		}
	}
}
