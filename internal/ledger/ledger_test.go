package ledger

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(category Category) *Ledger {
	l := New(category)
	n := 0
	l.newID = func() string {
		n++
		return "item-" + strconv.Itoa(n)
	}
	return l
}

func mustEdit(t *testing.T, l *Ledger, id string, field ItemField, raw string) {
	t.Helper()
	ok, err := l.Edit(id, field, raw)
	require.NoError(t, err)
	require.True(t, ok, "item %q not found", id)
}

func TestParseCategory(t *testing.T) {
	for _, raw := range []string{"hardware", "material"} {
		_, err := ParseCategory(raw)
		require.NoError(t, err, raw)
	}

	for _, raw := range []string{"", "Hardware", "perangkat", "service"} {
		_, err := ParseCategory(raw)
		require.ErrorIs(t, err, ErrUnknownCategory, raw)
	}
}

func TestParseItemField(t *testing.T) {
	_, err := ParseItemField("total")
	require.ErrorIs(t, err, ErrUnknownItemField)

	f, err := ParseItemField("quantity")
	require.NoError(t, err)
	assert.Equal(t, FieldQuantity, f)
}

func TestAddAppendsEmptyItemsInOrder(t *testing.T) {
	l := newTestLedger(Hardware)

	first := l.Add()
	second := l.Add()

	require.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, LineItem{ID: first.ID, Category: Hardware}, first)

	items := l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
}

func TestDefaultIDsAreUnique(t *testing.T) {
	l := New(Material)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := l.Add().ID
		require.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}

func TestEditRecomputesSubtotal(t *testing.T) {
	l := newTestLedger(Hardware)
	item := l.Add()

	mustEdit(t, l, item.ID, FieldPrice, "1,000")
	got, _ := l.Get(item.ID)
	assert.Zero(t, got.Subtotal, "subtotal without quantity")

	mustEdit(t, l, item.ID, FieldQuantity, "3")
	got, _ = l.Get(item.ID)
	assert.Equal(t, 3000.0, got.Subtotal)
	assert.Equal(t, "1,000", got.Price.Raw)
	assert.Equal(t, "3", got.Quantity.Raw)

	mustEdit(t, l, item.ID, FieldName, "Access point")
	got, _ = l.Get(item.ID)
	assert.Equal(t, "Access point", got.Name)
	assert.Equal(t, 3000.0, got.Subtotal)

	mustEdit(t, l, item.ID, FieldQuantity, "x")
	got, _ = l.Get(item.ID)
	assert.Zero(t, got.Subtotal, "subtotal after invalid quantity")
}

func TestEditRejectsUnknownField(t *testing.T) {
	l := newTestLedger(Hardware)
	item := l.Add()
	mustEdit(t, l, item.ID, FieldPrice, "5")

	ok, err := l.Edit(item.ID, ItemField("subtotal"), "99")
	require.ErrorIs(t, err, ErrUnknownItemField)
	assert.False(t, ok)

	got, _ := l.Get(item.ID)
	assert.Equal(t, "5", got.Price.Raw)
	assert.Zero(t, got.Subtotal)
}

func TestEditAndRemoveUnknownIDAreNoOps(t *testing.T) {
	l := newTestLedger(Material)
	item := l.Add()
	mustEdit(t, l, item.ID, FieldPrice, "10")
	mustEdit(t, l, item.ID, FieldQuantity, "2")
	before := l.Items()

	ok, err := l.Edit("missing", FieldPrice, "99")
	require.NoError(t, err)
	assert.False(t, ok, "edit of unknown id reported success")
	assert.False(t, l.Remove("missing"), "remove of unknown id reported success")

	assert.Equal(t, before, l.Items())
}

func TestRemoveKeepsOrderOfRemainingItems(t *testing.T) {
	l := newTestLedger(Hardware)
	a, b, c := l.Add(), l.Add(), l.Add()

	require.True(t, l.Remove(b.ID))
	items := l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, c.ID, items[1].ID)

	assert.NotEqual(t, b.ID, l.Add().ID, "removed id was reused")
}

func TestItemsReturnsCopy(t *testing.T) {
	l := newTestLedger(Hardware)
	item := l.Add()

	items := l.Items()
	items[0].Name = "mutated"

	got, _ := l.Get(item.ID)
	assert.Empty(t, got.Name)
}

func TestSubtotals(t *testing.T) {
	l := newTestLedger(Material)
	for _, pq := range [][2]string{{"100", "2"}, {"2,500", "4"}} {
		it := l.Add()
		mustEdit(t, l, it.ID, FieldPrice, pq[0])
		mustEdit(t, l, it.ID, FieldQuantity, pq[1])
	}

	assert.Equal(t, []float64{200, 10000}, l.Subtotals())
}
