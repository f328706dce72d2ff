package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pantry/internal/models"
)

// handleSuggestRecipes matches recipes against everything on hand that is
// still edible. Expired items never reach the lookup.
func (h *Handler) handleSuggestRecipes(c *gin.Context) {
	onHand, err := h.store.NamesOfItemsInState(models.Fresh, models.NearExpiry)
	if err != nil {
		respondStorageError(c, err)
		return
	}
	if len(onHand) == 0 {
		c.JSON(http.StatusOK, gin.H{"recipes": []models.Recipe{}})
		return
	}

	found, err := h.recipes.FindByIngredients(c.Request.Context(), onHand)
	if err != nil {
		respondRecipeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": found})
}

// handleStarRecipe caches a recipe for offline use. Instructions are fetched
// on demand so that browsing suggestions never spends quota on steps nobody
// reads.
func (h *Handler) handleStarRecipe(c *gin.Context) {
	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a recipe body is required"})
		return
	}
	if recipe.ID == 0 || recipe.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe id and title are required"})
		return
	}

	if !recipe.InstructionsFetched {
		if err := h.recipes.FetchInstructions(c.Request.Context(), &recipe); err != nil {
			respondRecipeError(c, err)
			return
		}
	}

	if err := h.store.SaveRecipe(&recipe); err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": recipe.ID})
}

func (h *Handler) handleListStarredRecipes(c *gin.Context) {
	starred, err := h.store.ListStarredRecipes()
	if err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": starred})
}

func (h *Handler) handleUnstarRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe id must be a number"})
		return
	}

	if err := h.store.RemoveRecipe(id); err != nil {
		respondStorageError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
