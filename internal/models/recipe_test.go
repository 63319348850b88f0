package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecipeTotalTime(t *testing.T) {
	tests := []struct {
		name string
		prep string
		cook string
		want string
	}{
		{"both absent", "", "", TotalTimeUnknown},
		{"both set", "15 minutes", "30 minutes", "45 minutes"},
		{"prep only", "10 minutes", "", "10 minutes"},
		{"cook only", "", "40 min", "40 minutes"},
		{"leading whitespace", "  5 minutes", "0 minutes", "5 minutes"},
		{"no numbers", "a while", "overnight", TotalTimeUnknown},
		{"one unparsable side", "about 5", "20 minutes", "20 minutes"},
		{"signed values", "+5 minutes", "-2 minutes", "3 minutes"},
		{"sign without digits", "- minutes", "", TotalTimeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Recipe{PrepTime: tt.prep, CookTime: tt.cook}
			assert.Equal(t, tt.want, r.TotalTime())
		})
	}
}

func TestRecipeIngredientsText(t *testing.T) {
	r := Recipe{Ingredients: []string{"500g ground beef", "8 soft tortillas"}}
	assert.Equal(t, "500g ground beef\n8 soft tortillas", r.IngredientsText())
}
