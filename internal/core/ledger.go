package core

import (
	"strconv"
	"strings"
)

// MaxQuantity is the largest quantity one order entry may carry. It keeps
// per-product totals far from int overflow.
const MaxQuantity = 1_000_000

// Ledger is the append-and-cascade-delete store of order entries.
// Insertion order is preserved; Summarize relies on it for first-appearance ordering.
type Ledger struct {
	entries  []OrderEntry
	products ProductFinder
}

// NewLedger creates an empty ledger. When products is non-nil, Record rejects
// entries for IDs it cannot resolve.
func NewLedger(products ProductFinder) *Ledger {
	return &Ledger{products: products}
}

// Record appends an order entry.
// quantity must be in [1, MaxQuantity] and userName must not be blank. userName is stored
// as given (trimmed) and is never updated afterwards.
func (l *Ledger) Record(productID string, quantity int, userName string) (OrderEntry, error) {
	if quantity <= 0 {
		return OrderEntry{}, &ValidationError{
			Field:   FieldQuantity,
			Value:   strconv.Itoa(quantity),
			Message: "quantity must be greater than zero",
		}
	}
	if quantity > MaxQuantity {
		return OrderEntry{}, &ValidationError{
			Field:   FieldQuantity,
			Value:   strconv.Itoa(quantity),
			Message: "quantity must not exceed " + strconv.Itoa(MaxQuantity),
		}
	}
	if strings.TrimSpace(userName) == "" {
		return OrderEntry{}, &ValidationError{
			Field:   FieldUserName,
			Value:   userName,
			Message: "user name must not be blank",
		}
	}
	if l.products != nil {
		if _, ok := l.products.Find(productID); !ok {
			return OrderEntry{}, &UnknownProductError{ID: productID}
		}
	}

	e := OrderEntry{
		ProductID: productID,
		Quantity:  quantity,
		UserName:  strings.TrimSpace(userName),
	}
	l.entries = append(l.entries, e)
	return e, nil
}

// RemoveByProduct drops every entry for productID and returns how many were removed.
func (l *Ledger) RemoveByProduct(productID string) int {
	kept := l.entries[:0]
	for _, e := range l.entries {
		if e.ProductID != productID {
			kept = append(kept, e)
		}
	}
	removed := len(l.entries) - len(kept)
	// zero the tail so dropped entries don't linger in the backing array
	for i := len(kept); i < len(l.entries); i++ {
		l.entries[i] = OrderEntry{}
	}
	l.entries = kept
	return removed
}

// All returns the entries in insertion order.
func (l *Ledger) All() []OrderEntry {
	out := make([]OrderEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}
