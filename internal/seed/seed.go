// Package seed loads the sample accounts and recipes used for demos and
// local development. Running it twice changes nothing.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/store"
)

//go:embed samples.json
var samplesJSON []byte

type sampleAccount struct {
	Email  string `json:"email"`
	Secret string `json:"secret"`
}

type samples struct {
	Accounts []sampleAccount       `json:"accounts"`
	Owner    string                `json:"owner"`
	Recipes  []service.RecipeInput `json:"recipes"`
}

// Result counts what a run inserted.
type Result struct {
	Accounts int
	Recipes  int
}

type Seeder struct {
	store   store.Store
	auth    service.IAuthService
	recipes service.IRecipeService
}

func New(st store.Store, auth service.IAuthService, recipes service.IRecipeService) *Seeder {
	return &Seeder{store: st, auth: auth, recipes: recipes}
}

// Run inserts every sample account missing by email and every sample recipe
// missing by title.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	data, err := load()
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, a := range data.Accounts {
		inserted, err := s.ensureAccount(ctx, a)
		if err != nil {
			return res, err
		}
		if inserted {
			res.Accounts++
			slog.Info("inserted sample account", "email", a.Email)
		}
	}

	owner, err := s.store.FindAccountByEmail(ctx, data.Owner)
	if err != nil {
		return res, fmt.Errorf("failed to load sample owner %s: %w", data.Owner, err)
	}

	for _, in := range data.Recipes {
		_, err := s.store.FindRecipeByTitle(ctx, in.Title)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return res, fmt.Errorf("failed to look up recipe %q: %w", in.Title, err)
		}
		if _, err := s.recipes.CreateRecipe(ctx, in, &owner.ID); err != nil {
			return res, fmt.Errorf("failed to insert recipe %q: %w", in.Title, err)
		}
		res.Recipes++
		slog.Info("inserted sample recipe", "title", in.Title)
	}
	return res, nil
}

func (s *Seeder) ensureAccount(ctx context.Context, a sampleAccount) (bool, error) {
	_, err := s.store.FindAccountByEmail(ctx, a.Email)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, store.ErrNotFound):
		return false, fmt.Errorf("failed to look up account %s: %w", a.Email, err)
	}
	if _, err := s.auth.RegisterOrLogin(ctx, a.Email, a.Secret); err != nil {
		return false, fmt.Errorf("failed to insert account %s: %w", a.Email, err)
	}
	return true, nil
}

func load() (samples, error) {
	var data samples
	if err := json.Unmarshal(samplesJSON, &data); err != nil {
		return samples{}, fmt.Errorf("failed to decode sample data: %w", err)
	}
	return data, nil
}
