// Package ledger keeps the itemized goods of a quote, one ordered ledger per category.
package ledger

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/Simplici0/quote.works/internal/pricing"
)

var (
	ErrUnknownCategory  = errors.New("unknown item category")
	ErrUnknownItemField = errors.New("unknown item field")
)

// Category is the closed set of goods categories.
type Category string

const (
	Hardware Category = "hardware"
	Material Category = "material"
)

// Categories lists every category in display order.
var Categories = []Category{Hardware, Material}

// ParseCategory converts boundary input into a Category.
func ParseCategory(raw string) (Category, error) {
	switch c := Category(raw); c {
	case Hardware, Material:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
}

// ItemField names an editable field of a line item.
type ItemField string

const (
	FieldName     ItemField = "name"
	FieldPrice    ItemField = "price"
	FieldQuantity ItemField = "quantity"
)

// ParseItemField converts boundary input into an ItemField.
func ParseItemField(raw string) (ItemField, error) {
	if f := ItemField(raw); f.valid() {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownItemField, raw)
}

func (f ItemField) valid() bool {
	return f == FieldName || f == FieldPrice || f == FieldQuantity
}

// LineItem is one priced row of a ledger.
type LineItem struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Price    pricing.Field `json:"price"`
	Quantity pricing.Field `json:"quantity"`
	Category Category      `json:"category"`
	Subtotal float64       `json:"subtotal"`
}

func (it *LineItem) recompute() {
	it.Subtotal = pricing.Subtotal(it.Price, it.Quantity)
}

// Ledger is an ordered collection of line items of a single category.
type Ledger struct {
	category Category
	items    []LineItem
	newID    func() string
}

// New returns an empty ledger for category.
func New(category Category) *Ledger {
	return &Ledger{category: category, newID: uuid.NewString}
}

// Category returns the category the ledger holds.
func (l *Ledger) Category() Category { return l.category }

// Len returns the number of items.
func (l *Ledger) Len() int { return len(l.items) }

// Add appends an empty item and returns it.
func (l *Ledger) Add() LineItem {
	item := LineItem{ID: l.newID(), Category: l.category}
	l.items = append(l.items, item)
	return item
}

// Edit replaces one field of the item with id. Editing price or quantity recomputes the
// subtotal. It reports whether the item exists; an unknown id changes nothing.
func (l *Ledger) Edit(id string, field ItemField, raw string) (bool, error) {
	if !field.valid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownItemField, field)
	}

	i := l.index(id)
	if i < 0 {
		return false, nil
	}

	item := &l.items[i]
	switch field {
	case FieldName:
		item.Name = raw
	case FieldPrice:
		item.Price = pricing.NewField(raw)
		item.recompute()
	case FieldQuantity:
		item.Quantity = pricing.NewField(raw)
		item.recompute()
	}
	return true, nil
}

// Remove deletes the item with id and reports whether it existed.
func (l *Ledger) Remove(id string) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

// Get returns the item with id.
func (l *Ledger) Get(id string) (LineItem, bool) {
	i := l.index(id)
	if i < 0 {
		return LineItem{}, false
	}
	return l.items[i], true
}

// Items returns a copy of the items in insertion order.
func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Subtotals returns the subtotal of every item.
func (l *Ledger) Subtotals() []float64 {
	out := make([]float64, len(l.items))
	for i, it := range l.items {
		out[i] = it.Subtotal
	}
	return out
}

func (l *Ledger) index(id string) int {
	return slices.IndexFunc(l.items, func(it LineItem) bool { return it.ID == id })
}
