package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delivery-chain/models"
	"delivery-chain/tracking"
)

// AdminGetAllOrders returns every order with a status summary (admin only)
func (h *Handler) AdminGetAllOrders(c *gin.Context) {
	status := c.Query("status")
	customerID := c.Query("customer_id")
	riderID := c.Query("rider_id")

	list := []models.Order{}
	for _, o := range h.facade.Orders() {
		if status != "" && o.Status != status {
			continue
		}
		if customerID != "" && o.CustomerID != customerID {
			continue
		}
		if riderID != "" && o.RiderID != riderID {
			continue
		}
		list = append(list, o)
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": tracking.CountByStatus(list),
		"count":         len(list),
		"orders":        list,
	})
}

// AdminGetAllUsers returns all accounts without passwords (admin only)
func (h *Handler) AdminGetAllUsers(c *gin.Context) {
	role := models.UserRole(c.Query("role"))
	users := []models.User{}
	for _, u := range h.facade.Accounts() {
		if role != "" && u.Role != role {
			continue
		}
		users = append(users, u)
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}
