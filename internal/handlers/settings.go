package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) handleGetSettings(c *gin.Context) {
	settings, err := h.store.GetSettings()
	if err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *Handler) handleSetFontSize(c *gin.Context) {
	var req struct {
		FontSize *int `json:"font_size" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "font_size is required"})
		return
	}
	if *req.FontSize < 8 || *req.FontSize > 72 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "font_size must be between 8 and 72"})
		return
	}

	if err := h.store.SetFontSize(*req.FontSize); err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"font_size": *req.FontSize})
}

func (h *Handler) handleSetNotifications(c *gin.Context) {
	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "enabled is required"})
		return
	}

	if err := h.store.SetNotificationsEnabled(*req.Enabled); err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"enabled": *req.Enabled})
}

func (h *Handler) handleGetStorageTip(c *gin.Context) {
	tip, err := h.store.GetStorageTip(c.Param("food"))
	if err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"food": c.Param("food"), "tip": tip})
}
