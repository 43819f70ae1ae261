package tracking

import "delivery-chain/models"

// RiderQueue returns the orders a rider works on: the ones assigned to them
// and the ones nobody is assigned to yet.
func RiderQueue(orders []models.Order, riderID string) []models.Order {
	var out []models.Order
	for _, o := range orders {
		if o.RiderID == riderID || o.RiderID == "" {
			out = append(out, o)
		}
	}
	return out
}

// RiderStats is the header of the rider dashboard.
type RiderStats struct {
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// Stats counts delivered orders as completed and everything else as active.
func Stats(orders []models.Order) RiderStats {
	var s RiderStats
	for _, o := range orders {
		if o.Status == models.StatusDelivered {
			s.Completed++
		} else {
			s.Active++
		}
	}
	return s
}

// CountByStatus groups orders by their current label.
func CountByStatus(orders []models.Order) map[string]int {
	summary := map[string]int{}
	for _, o := range orders {
		summary[o.Status]++
	}
	return summary
}

// TrackedOrder picks the order shown on a customer's tracker: their first
// order, or the first order overall when they have none.
func TrackedOrder(orders []models.Order, customerID string) (models.Order, bool) {
	for _, o := range orders {
		if o.CustomerID == customerID {
			return o, true
		}
	}
	if len(orders) > 0 {
		return orders[0], true
	}
	return models.Order{}, false
}
