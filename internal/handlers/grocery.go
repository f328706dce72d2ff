package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) handleAddGroceryItem(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "grocery item name is required"})
		return
	}

	if err := h.store.AddGroceryItem(req.Name); err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"name": req.Name})
}

func (h *Handler) handleListGroceryItems(c *gin.Context) {
	items, err := h.store.ListGroceryItems()
	if err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"grocery": items})
}

func (h *Handler) handleRemoveGroceryItem(c *gin.Context) {
	if err := h.store.RemoveGroceryItem(c.Param("name")); err != nil {
		respondStorageError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
