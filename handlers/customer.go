package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delivery-chain/middleware"
	"delivery-chain/models"
	"delivery-chain/orders"
	"delivery-chain/tracking"
)

type PlaceOrderRequest struct {
	Items []models.OrderItem `json:"items"`
}

// PlaceOrder creates a new order for the logged-in customer
func (h *Handler) PlaceOrder(c *gin.Context) {
	user := middleware.GetUser(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := orders.ValidItems(req.Items)
	if err != nil {
		h.respondError(c, err)
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), user.ID, user.Name, items)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created and logged to blockchain",
		"order":   order,
	})
}

// GetMyOrders returns the customer's orders in creation order
func (h *Handler) GetMyOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	mine := []models.Order{}
	for _, o := range h.facade.Orders() {
		if o.CustomerID == customerID {
			mine = append(mine, o)
		}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(mine), "orders": mine})
}

// GetOrderDetail returns one of the customer's orders with its ledger history
func (h *Handler) GetOrderDetail(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	order, ok := h.facade.Order(c.Param("id"))
	if !ok {
		h.respondError(c, models.ErrOrderNotFound)
		return
	}
	if order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":   order,
		"history": h.facade.OrderHistory(order.ID),
	})
}

// TrackOrder returns the order shown on the customer's tracker
func (h *Handler) TrackOrder(c *gin.Context) {
	order, ok := tracking.TrackedOrder(h.facade.Orders(), middleware.GetUserID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No orders available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}
