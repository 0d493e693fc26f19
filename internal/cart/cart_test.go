package cart

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"restobar/internal/models"
	"restobar/internal/pricing"
)

func product(name string, price pricing.Money, groups ...models.OptionGroup) models.Product {
	return models.Product{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Price:        price,
		IsAvailable:  true,
		OptionGroups: groups,
	}
}

func addOn(id, name string, delta pricing.Money) models.OptionGroup {
	g, err := models.NewOptionGroup(id, name, models.OptionAddOn, false, delta, nil)
	if err != nil {
		panic(err)
	}
	return g
}

func selected(g models.OptionGroup) models.SelectedOption {
	return models.SelectedOption{GroupID: g.ID, GroupName: g.Name, PriceDelta: g.PriceDelta}
}

func TestCanonicalKeyIgnoresSelectionOrder(t *testing.T) {
	a := models.SelectedOption{GroupID: "size", ValueLabel: "Grande"}
	b := models.SelectedOption{GroupID: "extra", ValueLabel: ""}

	k1 := CanonicalKey("p1", []models.SelectedOption{a, b})
	k2 := CanonicalKey("p1", []models.SelectedOption{b, a})
	assert.Equal(t, k1, k2)

	assert.NotEqual(t, k1, CanonicalKey("p2", []models.SelectedOption{a, b}), "different product")
	assert.NotEqual(t, k1, CanonicalKey("p1", []models.SelectedOption{a}), "different selection")
}

func TestAddItemMergesSameSelection(t *testing.T) {
	extra := addOn("extra", "Extra queso", 500)
	p := product("Roll", 3000, extra)
	c := New()

	_, err := c.AddItem(p, []models.SelectedOption{selected(extra)}, 1)
	require.NoError(t, err)
	_, err = c.AddItem(p, []models.SelectedOption{selected(extra)}, 2)
	require.NoError(t, err)

	require.Equal(t, 1, c.Len(), "same selection must collapse into one entry")
	items := c.Items()
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, pricing.Money(10500), items[0].Subtotal)
	assert.Equal(t, 3, c.TotalItems())
}

func TestAddItemHonorsPriceEditOnMerge(t *testing.T) {
	p := product("Roll", 3000)
	c := New()

	_, err := c.AddItem(p, nil, 1)
	require.NoError(t, err)

	p.Price = 3500
	_, err = c.AddItem(p, nil, 1)
	require.NoError(t, err)

	items := c.Items()
	assert.Equal(t, pricing.Money(3500), items[0].UnitPrice)
	assert.Equal(t, pricing.Money(7000), items[0].Subtotal)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	p := product("Roll", 3000)
	c := New()
	item, err := c.AddItem(p, nil, 1)
	require.NoError(t, err)

	c.RemoveItem(item.EntryID)
	assert.Equal(t, 0, c.Len())
	c.RemoveItem(item.EntryID) // no-op
	c.RemoveItem("missing")    // no-op
	assert.Equal(t, 0, c.Len())
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	p := product("Roll", 3000)

	c1 := New()
	i1, err := c1.AddItem(p, nil, 2)
	require.NoError(t, err)
	c1.UpdateQuantity(i1.EntryID, 0)

	c2 := New()
	i2, err := c2.AddItem(p, nil, 2)
	require.NoError(t, err)
	c2.RemoveItem(i2.EntryID)

	assert.Equal(t, c1.Items(), c2.Items())
	assert.Equal(t, c1.Subtotal(), c2.Subtotal())

	// re-adding after removal creates a fresh entry
	_, err = c1.AddItem(p, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, c1.Len())
}

func TestUpdateQuantityRecomputesSubtotal(t *testing.T) {
	p := product("Roll", 3000)
	c := New()
	item, err := c.AddItem(p, nil, 1)
	require.NoError(t, err)

	c.UpdateQuantity(item.EntryID, 5)
	items := c.Items()
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, pricing.Money(15000), items[0].Subtotal)
}

// Random operation sequences must never break the fold invariants:
// subtotal == Σ item subtotals and item.Subtotal == unitPrice * quantity.
func TestTotalsInvariantUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	extra := addOn("extra", "Extra", 250)
	products := []models.Product{
		product("A", 1000),
		product("B", 2500, extra),
		product("C", 4500),
	}

	c := New()
	for i := 0; i < 500; i++ {
		switch rng.Intn(4) {
		case 0, 1:
			p := products[rng.Intn(len(products))]
			var sel []models.SelectedOption
			if len(p.OptionGroups) > 0 && rng.Intn(2) == 0 {
				sel = []models.SelectedOption{selected(p.OptionGroups[0])}
			}
			_, err := c.AddItem(p, sel, 1+rng.Intn(3))
			require.NoError(t, err)
		case 2:
			if items := c.Items(); len(items) > 0 {
				c.UpdateQuantity(items[rng.Intn(len(items))].EntryID, rng.Intn(5))
			}
		case 3:
			if items := c.Items(); len(items) > 0 {
				c.RemoveItem(items[rng.Intn(len(items))].EntryID)
			}
		}

		var sum pricing.Money
		totalItems := 0
		for _, item := range c.Items() {
			require.GreaterOrEqual(t, item.Quantity, 1, "stored quantity must stay positive")
			assert.Equal(t, item.UnitPrice*pricing.Money(item.Quantity), item.Subtotal)
			sum += item.Subtotal
			totalItems += item.Quantity
		}
		assert.Equal(t, sum, c.Subtotal())
		assert.Equal(t, totalItems, c.TotalItems())
	}
}

func TestRestoreDropsUnresolvableEntries(t *testing.T) {
	extra := addOn("extra", "Extra", 500)
	kept := product("Roll", 3000, extra)
	gone := product("Retirado", 2000)
	unavailable := product("Agotado", 1500)
	unavailable.IsAvailable = false

	catalog := map[string]*models.Product{
		kept.ID.Hex():        &kept,
		unavailable.ID.Hex(): &unavailable,
	}
	resolve := func(ctx context.Context, id string) (*models.Product, error) {
		return catalog[id], nil
	}

	entries := []SnapshotEntry{
		{ProductID: kept.ID.Hex(), SelectedOptions: []models.SelectedOption{selected(extra)}, Quantity: 2},
		{ProductID: gone.ID.Hex(), Quantity: 1},
		{ProductID: unavailable.ID.Hex(), Quantity: 1},
		{ProductID: kept.ID.Hex(), SelectedOptions: []models.SelectedOption{{GroupID: "ya-no-existe"}}, Quantity: 1},
	}

	c, err := Restore(context.Background(), entries, resolve)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, pricing.Money(7000), c.Subtotal())
}

func TestSnapshotRoundTrip(t *testing.T) {
	extra := addOn("extra", "Extra", 500)
	p := product("Roll", 3000, extra)
	catalog := map[string]*models.Product{p.ID.Hex(): &p}
	resolve := func(ctx context.Context, id string) (*models.Product, error) {
		return catalog[id], nil
	}

	c := New()
	_, err := c.AddItem(p, []models.SelectedOption{selected(extra)}, 2)
	require.NoError(t, err)
	_, err = c.AddItem(p, nil, 1)
	require.NoError(t, err)

	restored, err := Restore(context.Background(), c.Snapshot(), resolve)
	require.NoError(t, err)
	assert.Equal(t, c.Subtotal(), restored.Subtotal())
	assert.Equal(t, c.TotalItems(), restored.TotalItems())
	assert.Equal(t, c.Len(), restored.Len())
}
