package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/zenkitchen/backend/internal/middleware"
	"github.com/pageza/zenkitchen/backend/internal/models"
	"github.com/pageza/zenkitchen/backend/internal/service"
	"github.com/pageza/zenkitchen/backend/internal/types"
)

type RecipeHandler struct {
	recipes *service.RecipeService
}

func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

// ListRecipes lists all recipes, or those carrying ?tag=.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.List(c.Request.Context(), middleware.UserID(c), c.Query("tag"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	recipe, err := h.recipes.Add(c.Request.Context(), middleware.UserID(c), recipeFromRequest(req))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), recipeFromRequest(req))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if !confirmed(c) {
		return
	}
	if err := h.recipes.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func recipeFromRequest(req types.RecipeRequest) models.Recipe {
	return models.Recipe{
		Name:        req.Name,
		Tags:        req.Tags,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		ImageURL:    req.ImageURL,
	}
}
