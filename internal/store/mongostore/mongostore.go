// Package mongostore implements store.Store on a MongoDB database.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/store"
)

const (
	accountsCollection = "accounts"
	recipesCollection  = "recipes"
)

type Store struct {
	client   *mongo.Client
	accounts *mongo.Collection
	recipes  *mongo.Collection
	now      func() time.Time
}

var _ store.Store = (*Store)(nil)

// Connect dials the server, verifies it answers and ensures the indexes exist.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	s := New(client, database)
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// New builds a store on an already connected client.
func New(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		client:   client,
		accounts: db.Collection(accountsCollection),
		recipes:  db.Collection(recipesCollection),
		now:      time.Now,
	}
}

// EnsureIndexes creates the unique email index and the recipe title index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if _, err := s.accounts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create accounts index: %w", err)
	}
	if _, err := s.recipes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create recipes indexes: %w", err)
	}
	return nil
}

// timestamp matches the millisecond precision BSON dates keep.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *Store) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := s.timestamp()
	account.CreatedAt, account.UpdatedAt = now, now

	if _, err := s.accounts.InsertOne(ctx, newAccountDoc(account)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *Store) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.findAccount(ctx, bson.M{"email": email})
}

func (s *Store) FindAccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return s.findAccount(ctx, bson.M{"_id": id.String()})
}

func (s *Store) findAccount(ctx context.Context, filter bson.M) (*models.Account, error) {
	var doc accountDoc
	if err := s.accounts.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.model()
}

func (s *Store) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	now := s.timestamp()
	recipe.CreatedAt, recipe.UpdatedAt = now, now

	_, err := s.recipes.InsertOne(ctx, newRecipeDoc(recipe))
	return err
}

func (s *Store) FindRecipeByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	return s.findRecipe(ctx, bson.M{"_id": id.String()})
}

func (s *Store) FindRecipeByTitle(ctx context.Context, title string) (*models.Recipe, error) {
	return s.findRecipe(ctx, bson.M{"title": title})
}

func (s *Store) findRecipe(ctx context.Context, filter bson.M) (*models.Recipe, error) {
	var doc recipeDoc
	if err := s.recipes.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return doc.model()
}

func (s *Store) ListRecipes(ctx context.Context, q store.RecipeQuery) ([]models.Recipe, error) {
	filter := bson.M{}
	if text := strings.TrimSpace(q.Text); text != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(text), "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
			bson.M{"ingredients": pattern},
		}
	}
	if q.After != nil {
		filter["_id"] = bson.M{"$gt": q.After.String()}
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := s.recipes.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []recipeDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	recipes := make([]models.Recipe, 0, len(docs))
	for _, doc := range docs {
		r, err := doc.model()
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *r)
	}
	return recipes, nil
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func translate(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}
