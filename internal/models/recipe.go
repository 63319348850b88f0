package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TotalTimeUnknown is reported when neither prep nor cook time carries a number.
const TotalTimeUnknown = "Not specified"

// Image references a picture held by an external storage provider.
type Image struct {
	URL        string `gorm:"column:url;size:1024;not null" json:"url"`
	ExternalID string `gorm:"column:id;size:255;not null" json:"id"`
}

type Recipe struct {
	ID           uuid.UUID                   `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
	OwnerID      *uuid.UUID                  `gorm:"type:varchar(36);index" json:"user,omitempty"`
	Title        string                      `gorm:"size:255;not null;index" json:"title"`
	Description  string                      `gorm:"type:text;not null" json:"description"`
	Note         string                      `gorm:"type:text" json:"note,omitempty"`
	Ingredients  datatypes.JSONSlice[string] `gorm:"not null" json:"ingredients"`
	Instructions datatypes.JSONSlice[string] `json:"instructions"`
	PrepTime     string                      `gorm:"size:64" json:"prepTime,omitempty"`
	CookTime     string                      `gorm:"size:64" json:"cookTime,omitempty"`
	Servings     *int                        `json:"servings,omitempty"`
	Image        Image                       `gorm:"embedded;embeddedPrefix:image_" json:"image"`
}

func (Recipe) TableName() string {
	return "recipes"
}

var leadingInt = regexp.MustCompile(`^\s*([+-]?\d+)`)

func parseMinutes(s string) (int, bool) {
	m := leadingInt.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// TotalTime sums the leading integers of PrepTime and CookTime. A side without
// a number counts as zero; when neither side has one the result is
// TotalTimeUnknown.
func (r *Recipe) TotalTime() string {
	prep, okPrep := parseMinutes(r.PrepTime)
	cook, okCook := parseMinutes(r.CookTime)
	if !okPrep && !okCook {
		return TotalTimeUnknown
	}
	return fmt.Sprintf("%d minutes", prep+cook)
}

// IngredientsText renders the ingredient list as a single free-text block.
func (r *Recipe) IngredientsText() string {
	return strings.Join(r.Ingredients, "\n")
}
