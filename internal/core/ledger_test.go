package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) (*Catalog, *Ledger, Product) {
	t.Helper()
	c := NewCatalog()
	l := NewLedger(c)
	c.OnRemove(func(id string) { l.RemoveByProduct(id) })
	p, err := c.Add("Соль", "S-1", "кг")
	require.NoError(t, err)
	return c, l, p
}

func TestLedger_Record(t *testing.T) {
	_, l, p := newTestLedger(t)

	e, err := l.Record(p.ID, 3, " Анна ")
	require.NoError(t, err)
	assert.Equal(t, OrderEntry{ProductID: p.ID, Quantity: 3, UserName: "Анна"}, e)
	assert.Equal(t, []OrderEntry{e}, l.All())
}

func TestLedger_RejectsNonPositiveQuantity(t *testing.T) {
	_, l, p := newTestLedger(t)
	_, err := l.Record(p.ID, 1, "A")
	require.NoError(t, err)
	before := l.All()

	for _, qty := range []int{0, -3} {
		_, err := l.Record(p.ID, qty, "A")

		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "quantity %d", qty)
		assert.Equal(t, FieldQuantity, ve.Field)
		assert.Equal(t, before, l.All(), "ledger must be unchanged")
	}
}

func TestLedger_RejectsQuantityAboveMax(t *testing.T) {
	catalog, l, p := newTestLedger(t)

	_, err := l.Record(p.ID, MaxQuantity, "A")
	require.NoError(t, err)

	for _, qty := range []int{MaxQuantity + 1, math.MaxInt} {
		_, err := l.Record(p.ID, qty, "B")

		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "quantity %d", qty)
		assert.Equal(t, FieldQuantity, ve.Field)
	}

	rows := Summarize(catalog, l)
	require.Len(t, rows, 1)
	assert.Equal(t, MaxQuantity, rows[0].TotalQuantity)
	assert.Equal(t, []string{"A"}, rows[0].Orderers)
}

func TestLedger_RejectsBlankUser(t *testing.T) {
	_, l, p := newTestLedger(t)

	_, err := l.Record(p.ID, 1, "  ")
	assert.True(t, IsValidation(err))
	assert.Zero(t, l.Len())
}

func TestLedger_RejectsUnknownProduct(t *testing.T) {
	_, l, _ := newTestLedger(t)

	_, err := l.Record("missing", 1, "A")
	assert.ErrorIs(t, err, ErrUnknownProduct)
	assert.Zero(t, l.Len())
}

func TestLedger_WithoutFinderAcceptsAnyProduct(t *testing.T) {
	l := NewLedger(nil)

	_, err := l.Record("anything", 1, "A")
	assert.NoError(t, err)
}

func TestLedger_CascadeOnProductRemoval(t *testing.T) {
	c, l, salt := newTestLedger(t)
	sugar, err := c.Add("Сахар", "SG-1", "кг")
	require.NoError(t, err)

	_, _ = l.Record(salt.ID, 1, "A")
	_, _ = l.Record(sugar.ID, 2, "B")
	_, _ = l.Record(salt.ID, 3, "C")

	require.True(t, c.Remove(salt.ID))

	for _, e := range l.All() {
		assert.NotEqual(t, salt.ID, e.ProductID)
	}
	assert.Equal(t, []OrderEntry{{ProductID: sugar.ID, Quantity: 2, UserName: "B"}}, l.All())
}

func TestLedger_RemoveByProductCount(t *testing.T) {
	_, l, p := newTestLedger(t)
	_, _ = l.Record(p.ID, 1, "A")
	_, _ = l.Record(p.ID, 1, "B")

	assert.Equal(t, 2, l.RemoveByProduct(p.ID))
	assert.Equal(t, 0, l.RemoveByProduct(p.ID))
	assert.Zero(t, l.Len())
}
