// Package orders keeps the order collection and records every change in the
// ledger.
package orders

import (
	"time"

	"delivery-chain/id"
	"delivery-chain/ledger"
	"delivery-chain/models"
	"delivery-chain/tracking"
)

// Defaults stamped on new orders.
const (
	DefaultEstimatedTime = "30 mins"
	DefaultLocation      = "Processing Center"

	ActionCreated       = "Order Created"
	ActionStatusUpdated = "Status Updated: "
)

// Store is not safe for concurrent use; the session facade serializes access.
type Store struct {
	orders []models.Order
	ledger *ledger.Ledger
	now    func() time.Time
	newID  func() string
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// NewStore continues from existing orders (in creation order) and appends
// to l on every mutation.
func NewStore(existing []models.Order, l *ledger.Ledger, opts ...Option) *Store {
	s := &Store{
		ledger: l,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  id.NewOrderID,
	}
	for _, o := range existing {
		s.orders = append(s.orders, o.Clone())
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create places a new order. Items are taken as given: an empty list is
// accepted here, ValidItems is for callers that want the form rules.
func (s *Store) Create(customerID, customerName string, items []models.OrderItem) models.Order {
	now := s.now()
	steps := make([]models.DeliveryStep, 0, 4)
	for i, label := range tracking.TimelineLabels() {
		step := models.DeliveryStep{Label: label, Time: tracking.PendingTime}
		if i == 0 {
			step.Completed = true
			step.Time = now.Format(time.TimeOnly)
		}
		steps = append(steps, step)
	}

	o := models.Order{
		ID:              s.newID(),
		CustomerID:      customerID,
		CustomerName:    customerName,
		Status:          models.StatusPlaced,
		Progress:        0,
		EstimatedTime:   DefaultEstimatedTime,
		CurrentLocation: DefaultLocation,
		Items:           append([]models.OrderItem{}, items...),
		DeliverySteps:   steps,
		CreatedAt:       now,
	}
	s.orders = append(s.orders, o)
	s.ledger.Append(o.ID, ActionCreated, customerID)

	return o.Clone()
}

// UpdateStatus relabels an order, moves it and advances its progress by one
// step. Repeating the same label still advances. An unknown id changes
// nothing and reports false.
func (s *Store) UpdateStatus(orderID, status, location, actorID string) (models.Order, bool) {
	for i := range s.orders {
		o := &s.orders[i]
		if o.ID != orderID {
			continue
		}
		o.Status = status
		o.CurrentLocation = location
		o.Progress = tracking.Advance(o.Progress)
		s.ledger.Append(orderID, ActionStatusUpdated+status, actorID)
		return o.Clone(), true
	}
	return models.Order{}, false
}

// All returns every order in creation order.
func (s *Store) All() []models.Order {
	out := make([]models.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.Clone()
	}
	return out
}

// Find returns the first order matching pred.
func (s *Store) Find(pred func(models.Order) bool) (models.Order, bool) {
	for _, o := range s.orders {
		if pred(o) {
			return o.Clone(), true
		}
	}
	return models.Order{}, false
}

func (s *Store) Get(orderID string) (models.Order, bool) {
	return s.Find(func(o models.Order) bool { return o.ID == orderID })
}
