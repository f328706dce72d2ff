package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type containerRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) handleCreateContainer(c *gin.Context) {
	var req containerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "container name is required"})
		return
	}

	if err := h.store.CreateContainer(req.Name); err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"name": req.Name})
}

func (h *Handler) handleListContainers(c *gin.Context) {
	containers, err := h.store.ListContainers()
	if err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"containers": containers})
}

func (h *Handler) handleRenameContainer(c *gin.Context) {
	oldName := c.Param("container")

	var req containerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new container name is required"})
		return
	}

	if err := h.store.RenameContainer(oldName, req.Name); err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"name": req.Name})
}

func (h *Handler) handleDeleteContainer(c *gin.Context) {
	if err := h.store.DeleteContainer(c.Param("container")); err != nil {
		respondStorageError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) handleEmptyContainer(c *gin.Context) {
	if err := h.store.DeleteAllItems(c.Param("container")); err != nil {
		respondStorageError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
