// Package gormstore implements store.Store on top of gorm for Postgres and SQLite.
package gormstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/store"
)

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// New wraps an open gorm connection. The connection should be opened with
// TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying connection for migrations and tests.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// AutoMigrate creates or updates the tables for accounts and recipes.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&models.Account{}, &models.Recipe{})
}

func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	err := s.db.WithContext(ctx).Create(account).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return store.ErrDuplicateEmail
	}
	return err
}

func (s *Store) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

func (s *Store) FindAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

func (s *Store) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(recipe).Error
}

func (s *Store) FindRecipeByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

func (s *Store) FindRecipeByTitle(ctx context.Context, title string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Where("title = ?", title).First(&recipe).Error; err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

func (s *Store) ListRecipes(ctx context.Context, q store.RecipeQuery) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if text := strings.TrimSpace(q.Text); text != "" {
		like := "%" + escapeLike(strings.ToLower(text)) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\' OR "+s.ingredientMatch(),
			like, like, like,
		)
	}
	if q.After != nil {
		query = query.Where("id > ?", q.After.String())
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var recipes []models.Recipe
	if err := query.Order("id ASC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// ingredientMatch tests each element of the ingredients array, never the
// encoded column.
func (s *Store) ingredientMatch() string {
	if s.db.Dialector.Name() == "postgres" {
		return "EXISTS (SELECT 1 FROM jsonb_array_elements_text(recipes.ingredients) AS e(value) WHERE LOWER(e.value) LIKE ? ESCAPE '\\')"
	}
	return "EXISTS (SELECT 1 FROM json_each(recipes.ingredients) AS je WHERE LOWER(je.value) LIKE ? ESCAPE '\\')"
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
