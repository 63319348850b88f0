package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/models"
)

// OwnerResponse is the display form of a recipe's owning account.
type OwnerResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// RecipeResponse is the API representation of a recipe
type RecipeResponse struct {
	ID              uuid.UUID      `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Note            string         `json:"note,omitempty"`
	Ingredients     []string       `json:"ingredients"`
	IngredientsText string         `json:"ingredientsText"`
	Instructions    []string       `json:"instructions"`
	PrepTime        string         `json:"prepTime,omitempty"`
	CookTime        string         `json:"cookTime,omitempty"`
	TotalTime       string         `json:"totalTime"`
	Servings        *int           `json:"servings,omitempty"`
	Image           ImagePayload   `json:"image"`
	User            *OwnerResponse `json:"user,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// RecipeListResponse wraps a page of search results.
type RecipeListResponse struct {
	Recipes []RecipeResponse `json:"recipes"`
}

// NewRecipeResponse renders a recipe; owner may be nil when the recipe has
// no owner or the owning account no longer exists.
func NewRecipeResponse(r *models.Recipe, owner *models.Account) RecipeResponse {
	resp := RecipeResponse{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Note:            r.Note,
		Ingredients:     nonNil(r.Ingredients),
		IngredientsText: r.IngredientsText(),
		Instructions:    nonNil(r.Instructions),
		PrepTime:        r.PrepTime,
		CookTime:        r.CookTime,
		TotalTime:       r.TotalTime(),
		Servings:        r.Servings,
		Image:           ImagePayload{URL: r.Image.URL, ID: r.Image.ExternalID},
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if owner != nil {
		resp.User = &OwnerResponse{ID: owner.ID, Email: owner.Email}
	} else if r.OwnerID != nil {
		resp.User = &OwnerResponse{ID: *r.OwnerID}
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
