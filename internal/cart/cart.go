// Package cart holds the in-session shopping cart aggregate: an ordered set
// of line items keyed by product + canonicalized option selection. All
// totals are folds over the entries, so they cannot drift from the items.
package cart

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"restobar/internal/models"
	"restobar/internal/pricing"
)

// LineItem is one distinct product+options combination and its quantity.
// EntryID addresses the row from the UI; identity for merging is the
// canonical key.
type LineItem struct {
	EntryID         string                  `json:"entryId"`
	ProductID       string                  `json:"productId"`
	ProductName     string                  `json:"productName"`
	SelectedOptions []models.SelectedOption `json:"selectedOptions,omitempty"`
	UnitPrice       pricing.Money           `json:"unitPrice"`
	Quantity        int                     `json:"quantity"`
	Subtotal        pricing.Money           `json:"subtotal"`

	key string
}

// Cart is single-owner, mutated synchronously by UI events. It is not safe
// for concurrent use.
type Cart struct {
	entries []*LineItem
	byKey   map[string]*LineItem
}

func New() *Cart {
	return &Cart{byKey: make(map[string]*LineItem)}
}

// CanonicalKey derives the deterministic identity of a product + selection.
// The selection is sorted by (group id, value label), so input order never
// matters.
func CanonicalKey(productID string, selected []models.SelectedOption) string {
	sorted := make([]models.SelectedOption, len(selected))
	copy(sorted, selected)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].GroupID != sorted[j].GroupID {
			return sorted[i].GroupID < sorted[j].GroupID
		}
		return sorted[i].ValueLabel < sorted[j].ValueLabel
	})

	var b strings.Builder
	b.WriteString(productID)
	for _, s := range sorted {
		fmt.Fprintf(&b, "|%s:%s", s.GroupID, s.ValueLabel)
	}
	return b.String()
}

// AddItem merges into an existing entry when the canonical key matches.
// The unit price is re-derived from the product on every call, never
// reused across a product edit.
func (c *Cart) AddItem(p models.Product, selected []models.SelectedOption, quantity int) (*LineItem, error) {
	if quantity <= 0 {
		return nil, pricing.ErrInvalidQuantity
	}

	unit, err := p.UnitPrice(selected)
	if err != nil {
		return nil, err
	}

	key := CanonicalKey(p.ID.Hex(), selected)
	if item, ok := c.byKey[key]; ok {
		subtotal, err := pricing.LineSubtotal(unit, item.Quantity+quantity)
		if err != nil {
			return nil, err
		}
		item.Quantity += quantity
		item.UnitPrice = unit
		item.Subtotal = subtotal
		return item, nil
	}

	subtotal, err := pricing.LineSubtotal(unit, quantity)
	if err != nil {
		return nil, err
	}
	item := &LineItem{
		EntryID:         uuid.NewString(),
		ProductID:       p.ID.Hex(),
		ProductName:     p.Name,
		SelectedOptions: append([]models.SelectedOption(nil), selected...),
		UnitPrice:       unit,
		Quantity:        quantity,
		Subtotal:        subtotal,
		key:             key,
	}
	c.entries = append(c.entries, item)
	c.byKey[key] = item
	return item, nil
}

// RemoveItem deletes the entry with the given entry id. Removing an unknown
// id is a no-op.
func (c *Cart) RemoveItem(entryID string) {
	for i, item := range c.entries {
		if item.EntryID == entryID {
			delete(c.byKey, item.key)
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// UpdateQuantity replaces an entry's quantity and recomputes its subtotal.
// A quantity of zero or less removes the entry.
func (c *Cart) UpdateQuantity(entryID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(entryID)
		return
	}
	for _, item := range c.entries {
		if item.EntryID == entryID {
			item.Quantity = quantity
			item.Subtotal = item.UnitPrice * pricing.Money(quantity)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.entries = nil
	c.byKey = make(map[string]*LineItem)
}

// TotalItems folds quantities across entries.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.entries {
		total += item.Quantity
	}
	return total
}

// Subtotal folds line subtotals across entries.
func (c *Cart) Subtotal() pricing.Money {
	var total pricing.Money
	for _, item := range c.entries {
		total += item.Subtotal
	}
	return total
}

// Items returns the entries in insertion order. The returned slice is a
// copy; mutating it does not touch the cart.
func (c *Cart) Items() []LineItem {
	items := make([]LineItem, 0, len(c.entries))
	for _, item := range c.entries {
		items = append(items, *item)
	}
	return items
}

func (c *Cart) Len() int {
	return len(c.entries)
}
