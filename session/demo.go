package session

import (
	"time"

	"delivery-chain/ledger"
	"delivery-chain/models"
	"delivery-chain/tracking"
)

// DemoOrderID is the order seeded on first run.
const DemoOrderID = "ORD-2024-001"

func demoOrder(now time.Time) models.Order {
	clock := now.Format(time.TimeOnly)
	return models.Order{
		ID:              DemoOrderID,
		CustomerID:      "demo-customer",
		CustomerName:    "Demo Customer",
		Status:          "In Transit",
		Progress:        60,
		EstimatedTime:   "15 mins",
		CurrentLocation: "Downtown Hub",
		Items: []models.OrderItem{
			{Name: "Fresh Vegetables", Quantity: 2},
			{Name: "Dairy Products", Quantity: 1},
			{Name: "Snacks", Quantity: 3},
		},
		DeliverySteps: []models.DeliveryStep{
			{Label: tracking.StepPlaced, Completed: true, Time: clock},
			{Label: tracking.StepProcessing, Completed: true, Time: clock},
			{Label: tracking.StepOutForDel, Completed: true, Time: clock},
			{Label: tracking.StepDelivered, Completed: false, Time: tracking.PendingTime},
		},
		RiderID:   "demo-rider",
		RiderName: "Demo Rider",
		CreatedAt: now,
	}
}

func seedDemoLedger(l *ledger.Ledger) {
	l.Append(DemoOrderID, "Order Placed", "")
	l.Append(DemoOrderID, "Payment Confirmed", "")
	l.Append(DemoOrderID, "Order Processing", "")
	l.Append(DemoOrderID, "Assigned to Delivery Partner", "demo-rider")
	l.Append(DemoOrderID, "Picked Up from Warehouse", "demo-rider")
	l.Append(DemoOrderID, "In Transit - Checkpoint 1", "demo-rider")
}
