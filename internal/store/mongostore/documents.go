package mongostore

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/models"
)

// Documents use the string form of the uuid as _id so the same identifiers
// work across every store implementation.

type accountDoc struct {
	ID         string    `bson:"_id"`
	Email      string    `bson:"email"`
	SecretHash string    `bson:"secretHash"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

type imageDoc struct {
	URL string `bson:"url"`
	ID  string `bson:"id"`
}

type recipeDoc struct {
	ID           string    `bson:"_id"`
	OwnerID      string    `bson:"user,omitempty"`
	Title        string    `bson:"title"`
	Description  string    `bson:"description"`
	Note         string    `bson:"note,omitempty"`
	Ingredients  []string  `bson:"ingredients"`
	Instructions []string  `bson:"instructions,omitempty"`
	PrepTime     string    `bson:"prepTime,omitempty"`
	CookTime     string    `bson:"cookTime,omitempty"`
	Servings     *int      `bson:"servings,omitempty"`
	Image        imageDoc  `bson:"image"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func newAccountDoc(a *models.Account) accountDoc {
	return accountDoc{
		ID:         a.ID.String(),
		Email:      a.Email,
		SecretHash: a.SecretHash,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func (d accountDoc) model() (*models.Account, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	return &models.Account{
		ID:         id,
		Email:      d.Email,
		SecretHash: d.SecretHash,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}, nil
}

func newRecipeDoc(r *models.Recipe) recipeDoc {
	doc := recipeDoc{
		ID:           r.ID.String(),
		Title:        r.Title,
		Description:  r.Description,
		Note:         r.Note,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Image:        imageDoc{URL: r.Image.URL, ID: r.Image.ExternalID},
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.OwnerID != nil {
		doc.OwnerID = r.OwnerID.String()
	}
	return doc
}

func (d recipeDoc) model() (*models.Recipe, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	r := &models.Recipe{
		ID:           id,
		Title:        d.Title,
		Description:  d.Description,
		Note:         d.Note,
		Ingredients:  d.Ingredients,
		Instructions: d.Instructions,
		PrepTime:     d.PrepTime,
		CookTime:     d.CookTime,
		Servings:     d.Servings,
		Image:        models.Image{URL: d.Image.URL, ExternalID: d.Image.ID},
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.OwnerID != "" {
		owner, err := uuid.Parse(d.OwnerID)
		if err != nil {
			return nil, err
		}
		r.OwnerID = &owner
	}
	return r, nil
}
