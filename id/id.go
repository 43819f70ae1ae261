// Package id generates identifiers for accounts and orders.
//
// Ids are TypeIDs ("prefix_suffix"): UUIDv7-based, so they are unique and
// sort by creation time.
package id

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the entity type encoded in an id.
type Prefix string

const (
	PrefixAccount Prefix = "user"
	PrefixOrder   Prefix = "ord"
)

// New generates a new id with the given prefix.
// It panics if prefix is not a valid TypeID prefix (programming error).
func New(prefix Prefix) string {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}
	return tid.String()
}

// NewAccountID generates a new unique account id.
func NewAccountID() string { return New(PrefixAccount) }

// NewOrderID generates a new unique order id.
func NewOrderID() string { return New(PrefixOrder) }
