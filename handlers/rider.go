package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delivery-chain/middleware"
	"delivery-chain/models"
	"delivery-chain/tracking"
)

// GetRiderOrders lists orders assigned to the rider or not assigned yet
func (h *Handler) GetRiderOrders(c *gin.Context) {
	queue := tracking.RiderQueue(h.facade.Orders(), middleware.GetUserID(c))
	if queue == nil {
		queue = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":  tracking.Stats(queue),
		"count":  len(queue),
		"orders": queue,
	})
}

type UpdateOrderStatusRequest struct {
	Status   string `json:"status" binding:"required"`
	Location string `json:"location" binding:"required"`
}

// UpdateOrderStatus relabels an order and logs the change
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill all fields"})
		return
	}

	// The facade ignores unknown ids, so check first.
	if _, ok := h.facade.Order(orderID); !ok {
		h.respondError(c, models.ErrOrderNotFound)
		return
	}

	order, found, err := h.facade.UpdateOrderStatus(c.Request.Context(), orderID, req.Status, req.Location)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !found {
		h.respondError(c, models.ErrOrderNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order updated and logged to blockchain",
		"order":   order,
	})
}

// GetStatusPresets returns the rider quick-fill buttons
func (h *Handler) GetStatusPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"presets":       tracking.Presets(),
		"progress_step": tracking.ProgressStep,
		"max_progress":  tracking.MaxProgress,
		"description":   "Status labels are free text; every update adds a fixed progress step",
	})
}
