// Package ledger is the append-only action log shown to users as a
// "blockchain". Entries are numbered densely from 1 and never change once
// appended.
package ledger

import (
	"time"

	"delivery-chain/models"
)

// Ledger is not safe for concurrent use; the session facade serializes access.
type Ledger struct {
	entries []models.LedgerEntry
	token   TokenSource
	now     func() time.Time
}

type Option func(*Ledger)

// WithTokenSource replaces the placeholder token generator.
func WithTokenSource(src TokenSource) Option {
	return func(l *Ledger) { l.token = src }
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New returns a ledger continuing after the given entries, which must
// already be in append order.
func New(entries []models.LedgerEntry, opts ...Option) *Ledger {
	l := &Ledger{
		entries: append([]models.LedgerEntry(nil), entries...),
		token:   PlaceholderToken,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append records an action. riderID may be empty.
func (l *Ledger) Append(orderID, action, riderID string) models.LedgerEntry {
	e := models.LedgerEntry{
		ID:        len(l.entries) + 1,
		OrderID:   orderID,
		Action:    action,
		Hash:      l.token(),
		Timestamp: l.now(),
		Verified:  true,
		RiderID:   riderID,
	}
	l.entries = append(l.entries, e)
	return e
}

// All returns every entry in append order.
func (l *Ledger) All() []models.LedgerEntry {
	out := make([]models.LedgerEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Latest returns the most recent entry, the "latest block".
func (l *Ledger) Latest() (models.LedgerEntry, bool) {
	if len(l.entries) == 0 {
		return models.LedgerEntry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

func (l *Ledger) Len() int { return len(l.entries) }

// ForOrder returns the entries referencing orderID, oldest first.
func (l *Ledger) ForOrder(orderID string) []models.LedgerEntry {
	var out []models.LedgerEntry
	for _, e := range l.entries {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out
}
