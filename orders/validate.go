package orders

import (
	"strings"

	"delivery-chain/models"
)

// ValidItems applies the order form rules: rows with a blank name are
// dropped and at least one row must remain.
func ValidItems(items []models.OrderItem) ([]models.OrderItem, error) {
	var out []models.OrderItem
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			continue
		}
		out = append(out, it)
	}
	if len(out) == 0 {
		return nil, models.ErrEmptyItemList
	}
	return out, nil
}
