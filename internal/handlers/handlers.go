// Package handlers exposes the pantry over a JSON API. Every handler is a
// method on Handler, which carries its dependencies explicitly.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pantry/internal/logger"
	"pantry/internal/notify"
	"pantry/internal/recipes"
	"pantry/internal/storage"
)

type Handler struct {
	store    storage.Store
	recipes  *recipes.Client
	notifier *notify.Service
}

func New(store storage.Store, recipeClient *recipes.Client, notifier *notify.Service) *Handler {
	return &Handler{
		store:    store,
		recipes:  recipeClient,
		notifier: notifier,
	}
}

func SetupRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.handleHealth)

		api.POST("/containers", h.handleCreateContainer)
		api.GET("/containers", h.handleListContainers)
		api.PUT("/containers/:container", h.handleRenameContainer)
		api.DELETE("/containers/:container", h.handleDeleteContainer)
		api.DELETE("/containers/:container/items", h.handleEmptyContainer)

		api.POST("/containers/:container/items", h.handleAddItem)
		api.GET("/containers/:container/items", h.handleListItems)
		api.GET("/containers/:container/items/:item", h.handleGetItem)
		api.DELETE("/containers/:container/items/:item", h.handleRemoveItem)
		api.PUT("/containers/:container/items/:item/quantity", h.handleUpdateQuantity)
		api.PUT("/containers/:container/items/:item/food-group", h.handleUpdateFoodGroup)
		api.POST("/containers/:container/freshness", h.handleRefreshContainer)

		api.POST("/freshness", h.handleRefreshPantry)
		api.GET("/expiring", h.handleListExpiring)
		api.POST("/expiring/notify", h.handleNotifyExpiring)
		api.GET("/food-groups", h.handleFoodGroupCounts)

		api.POST("/grocery", h.handleAddGroceryItem)
		api.GET("/grocery", h.handleListGroceryItems)
		api.DELETE("/grocery/:name", h.handleRemoveGroceryItem)

		api.GET("/settings", h.handleGetSettings)
		api.PUT("/settings/font-size", h.handleSetFontSize)
		api.PUT("/settings/notifications", h.handleSetNotifications)

		api.GET("/tips/:food", h.handleGetStorageTip)

		api.GET("/recipes/suggestions", h.handleSuggestRecipes)
		api.POST("/recipes/starred", h.handleStarRecipe)
		api.GET("/recipes/starred", h.handleListStarredRecipes)
		api.DELETE("/recipes/starred/:id", h.handleUnstarRecipe)
	}
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondStorageError maps the storage error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a backend failure the client should not
// see the details of.
func respondStorageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrContainerExists),
		errors.Is(err, storage.ErrItemExists),
		errors.Is(err, storage.ErrRecipeExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrEmptyName),
		errors.Is(err, storage.ErrInvalidQuantity),
		errors.Is(err, storage.ErrInvalidFoodGroup):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Storage operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}

func respondRecipeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, recipes.ErrPerMinuteLimitExceeded):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, recipes.ErrDailyLimitExceeded):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		logger.Error("Recipe lookup failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "recipe lookup failed"})
	}
}
