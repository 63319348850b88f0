// Package storetest holds behaviour checks shared by every store.Store implementation.
package storetest

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/store"
)

func recipe(title, description string, ingredients ...string) *models.Recipe {
	return &models.Recipe{
		Title:       title,
		Description: description,
		Ingredients: ingredients,
		Image:       models.Image{URL: "http://x/" + title + ".jpg", ExternalID: title},
	}
}

// Run exercises s, which must start empty.
func Run(t *testing.T, s store.Store) {
	ctx := context.Background()

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})

	t.Run("accounts", func(t *testing.T) {
		acct := &models.Account{Email: "a@x.com", SecretHash: "hash"}
		require.NoError(t, s.CreateAccount(ctx, acct))
		require.NotEqual(t, uuid.Nil, acct.ID)

		byEmail, err := s.FindAccountByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, acct.ID, byEmail.ID)
		assert.Equal(t, "hash", byEmail.SecretHash)

		byID, err := s.FindAccountByID(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", byID.Email)

		err = s.CreateAccount(ctx, &models.Account{Email: "a@x.com", SecretHash: "other"})
		assert.ErrorIs(t, err, store.ErrDuplicateEmail)

		_, err = s.FindAccountByEmail(ctx, "nobody@x.com")
		assert.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.FindAccountByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("recipes", func(t *testing.T) {
		owner := uuid.New()
		servings := 3
		r := recipe("Tacos", "Crunchy", "beef", "tortilla")
		r.OwnerID = &owner
		r.Servings = &servings
		r.Instructions = []string{"cook", "serve"}
		r.PrepTime = "5 minutes"
		require.NoError(t, s.CreateRecipe(ctx, r))
		require.NotEqual(t, uuid.Nil, r.ID)

		got, err := s.FindRecipeByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tacos", got.Title)
		assert.Equal(t, []string{"beef", "tortilla"}, []string(got.Ingredients))
		assert.Equal(t, []string{"cook", "serve"}, []string(got.Instructions))
		assert.Equal(t, r.Image, got.Image)
		require.NotNil(t, got.OwnerID)
		assert.Equal(t, owner, *got.OwnerID)
		require.NotNil(t, got.Servings)
		assert.Equal(t, 3, *got.Servings)
		assert.Equal(t, "5 minutes", got.TotalTime())

		byTitle, err := s.FindRecipeByTitle(ctx, "Tacos")
		require.NoError(t, err)
		assert.Equal(t, r.ID, byTitle.ID)

		_, err = s.FindRecipeByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.FindRecipeByTitle(ctx, "Nothing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("list recipes", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			require.NoError(t, s.CreateRecipe(ctx, recipe(fmt.Sprintf("Soup %d", i), "Warm", "Lentils", "water")))
		}
		require.NoError(t, s.CreateRecipe(ctx, recipe("50% Off Cake", "Sweet", "flour")))

		all, err := s.ListRecipes(ctx, store.RecipeQuery{})
		require.NoError(t, err)
		assert.Len(t, all, 6)
		for i := 1; i < len(all); i++ {
			assert.Less(t, all[i-1].ID.String(), all[i].ID.String())
		}

		soups, err := s.ListRecipes(ctx, store.RecipeQuery{Text: "LENTILS"})
		require.NoError(t, err)
		assert.Len(t, soups, 4)

		crunchy, err := s.ListRecipes(ctx, store.RecipeQuery{Text: "crunch"})
		require.NoError(t, err)
		require.Len(t, crunchy, 1)
		assert.Equal(t, "Tacos", crunchy[0].Title)

		percent, err := s.ListRecipes(ctx, store.RecipeQuery{Text: "50%"})
		require.NoError(t, err)
		assert.Len(t, percent, 1)

		var paged []models.Recipe
		q := store.RecipeQuery{Limit: 4}
		for {
			page, err := s.ListRecipes(ctx, q)
			require.NoError(t, err)
			paged = append(paged, page...)
			if len(page) < q.Limit {
				break
			}
			last := page[len(page)-1].ID
			q.After = &last
		}
		require.Len(t, paged, len(all))
		for i := range all {
			assert.Equal(t, all[i].ID, paged[i].ID)
		}
	})

	t.Run("search matches ingredient values", func(t *testing.T) {
		require.NoError(t, s.CreateRecipe(ctx, recipe("Seasoned Broth", "Simple", "Salt & Pepper", "water")))

		titles := func(text string) []string {
			t.Helper()
			found, err := s.ListRecipes(ctx, store.RecipeQuery{Text: text})
			require.NoError(t, err)
			out := make([]string, 0, len(found))
			for _, r := range found {
				out = append(out, r.Title)
			}
			return out
		}

		assert.Equal(t, []string{"Seasoned Broth"}, titles("salt & pepper"))
		assert.Equal(t, []string{"Seasoned Broth"}, titles("& PEP"))
		assert.Empty(t, titles(","))
		assert.Empty(t, titles(`"`))
		assert.Empty(t, titles(`f","t`))
		assert.Empty(t, titles(`beef","tortilla`))
		assert.Equal(t, []string{"Tacos"}, titles("tortilla"))
	})
}
