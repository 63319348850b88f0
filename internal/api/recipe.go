package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type RecipeHandler struct {
	recipes  service.IRecipeService
	verifier middleware.TokenVerifier
}

func NewRecipeHandler(recipes service.IRecipeService, verifier middleware.TokenVerifier) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, verifier: verifier}
}

func (h *RecipeHandler) RegisterRoutes(r gin.IRouter) {
	recipes := r.Group("/recipe")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.verifier), h.CreateRecipe)
	}
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var in service.RecipeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	owner, ok := middleware.AccountID(c)
	if !ok {
		_ = c.Error(service.ErrUnauthenticated)
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), in, &owner)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, types.NewRecipeResponse(recipe, nil))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	view, err := h.recipes.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, types.NewRecipeResponse(view.Recipe, view.Owner))
}

// ListRecipes returns up to limit recipes matching q, in ascending id order.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	out := make([]types.RecipeResponse, 0, limit)
	for recipe, err := range h.recipes.SearchRecipes(c.Request.Context(), c.Query("q")) {
		if err != nil {
			_ = c.Error(err)
			return
		}
		out = append(out, types.NewRecipeResponse(recipe, nil))
		if len(out) == limit {
			break
		}
	}
	c.JSON(http.StatusOK, types.RecipeListResponse{Recipes: out})
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultListLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &service.ValidationError{Fields: []service.FieldError{{Field: "limit", Message: "must be a positive integer"}}}
	}
	return min(n, maxListLimit), nil
}
