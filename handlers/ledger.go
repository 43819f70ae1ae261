package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"delivery-chain/models"
	"delivery-chain/session"
)

// GetLedger returns the whole log; the last entry is the "latest block"
func (h *Handler) GetLedger(c *gin.Context) {
	entries := h.facade.Ledger()
	if entries == nil {
		entries = []models.LedgerEntry{}
	}
	resp := gin.H{
		"count":   len(entries),
		"entries": entries,
	}
	if len(entries) > 0 {
		resp["latest_hash"] = entries[len(entries)-1].Hash
	}
	c.JSON(http.StatusOK, resp)
}

// GetOrderLedger returns the entries recorded for one order
func (h *Handler) GetOrderLedger(c *gin.Context) {
	orderID := c.Param("id")
	if _, ok := h.facade.Order(orderID); !ok {
		h.respondError(c, models.ErrOrderNotFound)
		return
	}
	entries := h.facade.OrderHistory(orderID)
	if entries == nil {
		entries = []models.LedgerEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"order_id": orderID, "count": len(entries), "entries": entries})
}

// StreamState pushes the combined state as server-sent events: once on
// connect, then after every change and every refresh tick.
func (h *Handler) StreamState(c *gin.Context) {
	updates := make(chan session.State, 8)
	cancel := h.facade.Subscribe(func(st session.State) {
		select {
		case updates <- st:
		default:
			// slow reader: drop, the next refresh catches up
		}
	})
	defer cancel()

	c.SSEvent("state", h.facade.State())
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case st := <-updates:
			c.SSEvent("state", st)
			return true
		}
	})
}
