package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pantry/internal/models"
)

type itemRequest struct {
	Name      string `json:"name" binding:"required"`
	Quantity  int    `json:"quantity"`
	Expiry    string `json:"expiry" binding:"required"`
	FoodGroup string `json:"food_group"`
}

type itemView struct {
	Name      string `json:"name"`
	Container string `json:"container"`
	Quantity  int    `json:"quantity"`
	Expiry    string `json:"expiry"`
	FoodGroup string `json:"food_group,omitempty"`
	Freshness string `json:"freshness,omitempty"`
}

func viewOf(item models.Item) itemView {
	return itemView{
		Name:      item.Name,
		Container: item.Container,
		Quantity:  item.Quantity,
		Expiry:    item.Expiry.Format(models.DateLayout),
		FoodGroup: string(item.FoodGroup),
		Freshness: string(item.Freshness),
	}
}

func (h *Handler) handleAddItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item name and expiry date are required"})
		return
	}

	expiry, err := time.Parse(models.DateLayout, req.Expiry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expiry must be a yyyy-mm-dd date"})
		return
	}

	item := models.Item{
		Name:      req.Name,
		Quantity:  req.Quantity,
		Expiry:    expiry,
		FoodGroup: models.FoodGroup(req.FoodGroup),
	}

	added, err := h.store.AddItem(c.Param("container"), item)
	if err != nil {
		respondStorageError(c, err)
		return
	}
	if !added {
		c.JSON(http.StatusConflict, gin.H{"error": "an item with that name already exists in this container"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"name": req.Name})
}

func (h *Handler) handleListItems(c *gin.Context) {
	items, err := h.store.ListItems(c.Param("container"))
	if err != nil {
		respondStorageError(c, err)
		return
	}

	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, viewOf(item))
	}

	c.JSON(http.StatusOK, gin.H{"items": views})
}

func (h *Handler) handleGetItem(c *gin.Context) {
	item, err := h.store.GetItem(c.Param("container"), c.Param("item"))
	if err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusOK, viewOf(*item))
}

func (h *Handler) handleRemoveItem(c *gin.Context) {
	if err := h.store.RemoveItem(c.Param("container"), c.Param("item")); err != nil {
		respondStorageError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) handleUpdateQuantity(c *gin.Context) {
	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}

	if err := h.store.UpdateItemQuantity(c.Param("container"), c.Param("item"), *req.Quantity); err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quantity": *req.Quantity})
}

func (h *Handler) handleUpdateFoodGroup(c *gin.Context) {
	var req struct {
		FoodGroup string `json:"food_group" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "food_group is required"})
		return
	}

	if err := h.store.UpdateItemFoodGroup(c.Param("container"), c.Param("item"), models.FoodGroup(req.FoodGroup)); err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"food_group": req.FoodGroup})
}

func (h *Handler) handleRefreshContainer(c *gin.Context) {
	container := c.Param("container")
	if err := h.store.BatchUpdateFreshness(container); err != nil {
		respondStorageError(c, err)
		return
	}

	items, err := h.store.ListItems(container)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	views := make([]itemView, 0, len(items))
	for _, item := range items {
		views = append(views, viewOf(item))
	}

	c.JSON(http.StatusOK, gin.H{"items": views})
}

// handleRefreshPantry reclassifies every container in one sweep.
func (h *Handler) handleRefreshPantry(c *gin.Context) {
	containers, err := h.store.ListContainers()
	if err != nil {
		respondStorageError(c, err)
		return
	}

	for _, container := range containers {
		if err := h.store.BatchUpdateFreshness(container); err != nil {
			respondStorageError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"containers": len(containers)})
}

func (h *Handler) handleListExpiring(c *gin.Context) {
	expiring, err := h.store.ItemsExpiringSoon()
	if err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expiring": expiring})
}

func (h *Handler) handleNotifyExpiring(c *gin.Context) {
	settings, err := h.store.GetSettings()
	if err != nil {
		respondStorageError(c, err)
		return
	}
	if !settings.NotificationsEnabled {
		c.JSON(http.StatusOK, gin.H{"sent": false, "reason": "notifications are disabled"})
		return
	}
	if !h.notifier.IsEnabled() {
		c.JSON(http.StatusOK, gin.H{"sent": false, "reason": "notification service is not configured"})
		return
	}

	expiring, err := h.store.ItemsExpiringSoon()
	if err != nil {
		respondStorageError(c, err)
		return
	}
	if len(expiring) == 0 {
		c.JSON(http.StatusOK, gin.H{"sent": false, "reason": "nothing expiring soon"})
		return
	}

	if err := h.notifier.SendExpiryDigest(expiring); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to send notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sent": true, "items": len(expiring)})
}

func (h *Handler) handleFoodGroupCounts(c *gin.Context) {
	counts, err := h.store.FoodGroupCounts(c.Query("container"))
	if err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"counts": counts})
}
