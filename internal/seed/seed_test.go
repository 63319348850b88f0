package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
)

func TestSamplesAreValid(t *testing.T) {
	data, err := load()
	require.NoError(t, err)
	require.NotEmpty(t, data.Recipes)
	for _, r := range data.Recipes {
		assert.NotEmpty(t, r.Title)
		assert.NotEmpty(t, r.Ingredients, r.Title)
		assert.NotEmpty(t, r.Image.URL, r.Title)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	s := testhelpers.NewSQLiteStore(t)
	authSvc := service.NewAuthService(s, testhelpers.TestJWTSecret, time.Hour, service.WithBcryptCost(bcrypt.MinCost))
	recipeSvc := service.NewRecipeService(s, s)
	seeder := New(s, authSvc, recipeSvc)
	ctx := context.Background()

	data, err := load()
	require.NoError(t, err)

	first, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{Accounts: len(data.Accounts), Recipes: len(data.Recipes)}, first)

	second, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{}, second)

	var n int64
	require.NoError(t, s.DB().Model(&models.Recipe{}).Count(&n).Error)
	assert.Equal(t, int64(len(data.Recipes)), n)

	res, err := authSvc.RegisterOrLogin(ctx, "user1@example.com", "password123")
	require.NoError(t, err)
	assert.False(t, res.Created)

	tacos, err := s.FindRecipeByTitle(ctx, "Beef Tacos")
	require.NoError(t, err)
	require.NotNil(t, tacos.OwnerID)
	assert.Equal(t, res.AccountID, *tacos.OwnerID)
	assert.Equal(t, "25 minutes", tacos.TotalTime())
}
