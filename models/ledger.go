package models

import "time"

// LedgerEntry is one record of the append-only audit log.
//
// Hash is a decorative placeholder token. It is not derived from the entry,
// the order or any previous entry, and nothing ever verifies it. Verified is
// always true for the same reason.
type LedgerEntry struct {
	ID        int       `json:"id"`
	OrderID   string    `json:"orderId"`
	Action    string    `json:"action"`
	Hash      string    `json:"hash"`
	Timestamp time.Time `json:"timestamp"`
	Verified  bool      `json:"verified"`
	RiderID   string    `json:"riderId,omitempty"`
}
