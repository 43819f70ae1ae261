package models

import "time"

// Status is a free-text label chosen by whoever updates the order.
// There is deliberately no fixed set of values.
type Status = string

const (
	StatusPlaced    Status = "Order Placed"
	StatusDelivered Status = "Delivered"
)

type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// DeliveryStep is one row of the delivery timeline. Time is a wall clock
// string or "Pending".
type DeliveryStep struct {
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
	Time      string `json:"time"`
}

type Order struct {
	ID              string         `json:"id"`
	CustomerID      string         `json:"customerId"`
	CustomerName    string         `json:"customerName"`
	Status          Status         `json:"status"`
	Progress        int            `json:"progress"`
	EstimatedTime   string         `json:"estimatedTime"`
	CurrentLocation string         `json:"currentLocation"`
	Items           []OrderItem    `json:"items"`
	DeliverySteps   []DeliveryStep `json:"deliverySteps"`
	RiderID         string         `json:"riderId,omitempty"`
	RiderName       string         `json:"riderName,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// Clone returns a copy that shares no slices with o.
func (o Order) Clone() Order {
	c := o
	if o.Items != nil {
		c.Items = make([]OrderItem, len(o.Items))
		copy(c.Items, o.Items)
	}
	if o.DeliverySteps != nil {
		c.DeliverySteps = make([]DeliveryStep, len(o.DeliverySteps))
		copy(c.DeliverySteps, o.DeliverySteps)
	}
	return c
}
