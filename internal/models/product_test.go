package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restobar/internal/pricing"
)

func testProduct() Product {
	size, _ := NewOptionGroup("size", "Tamaño", OptionSingleChoice, true, 0, []OptionValue{
		{Label: "Chico", PriceDelta: 0},
		{Label: "Grande", PriceDelta: 700},
	})
	cheese, _ := NewOptionGroup("extra-queso", "Extra queso", OptionAddOn, false, 500, nil)
	noOnion, _ := NewOptionGroup("sin-cebolla", "Sin cebolla", OptionRemoval, false, 0, nil)

	return Product{
		Name:         "Roll de salmón",
		Price:        3000,
		IsAvailable:  true,
		OptionGroups: []OptionGroup{size, cheese, noOnion},
	}
}

func TestNewOptionGroupShapeRules(t *testing.T) {
	_, err := NewOptionGroup("g", "Tamaño", OptionSingleChoice, true, 0, nil)
	assert.Error(t, err, "choice kind without values")

	_, err = NewOptionGroup("g", "Extra", OptionAddOn, false, 500, []OptionValue{{Label: "x"}})
	assert.Error(t, err, "add-on with values")

	_, err = NewOptionGroup("g", "Sin sal", OptionRemoval, false, 100, nil)
	assert.Error(t, err, "removal with a price delta")

	_, err = NewOptionGroup("g", "Extra", "combo", false, 0, nil)
	assert.Error(t, err, "unknown kind")
}

func TestUnitPriceSumsCapturedDeltas(t *testing.T) {
	p := testProduct()
	selection := []SelectedOption{
		{GroupID: "size", GroupName: "Tamaño", ValueLabel: "Grande", PriceDelta: 700},
		{GroupID: "extra-queso", GroupName: "Extra queso", PriceDelta: 500},
	}

	unit, err := p.UnitPrice(selection)
	require.NoError(t, err)
	assert.Equal(t, pricing.Money(4200), unit)
}

func TestUnitPriceRejectsForeignAndIncompleteSelections(t *testing.T) {
	p := testProduct()

	_, err := p.UnitPrice([]SelectedOption{
		{GroupID: "size", ValueLabel: "Grande"},
		{GroupID: "otra-cosa"},
	})
	var selErr pricing.InvalidSelectionError
	require.ErrorAs(t, err, &selErr, "foreign group")

	_, err = p.UnitPrice([]SelectedOption{
		{GroupID: "size", ValueLabel: "Mediano"},
	})
	require.ErrorAs(t, err, &selErr, "unknown value")

	_, err = p.UnitPrice(nil)
	require.ErrorAs(t, err, &selErr, "required group uncovered")
}

func TestResolveSelectionIgnoresClientDeltas(t *testing.T) {
	p := testProduct()
	// client claims the large size is free and the add-on costs 1 peso
	selection := []SelectedOption{
		{GroupID: "size", ValueLabel: "Grande", PriceDelta: 0},
		{GroupID: "extra-queso", PriceDelta: 1},
	}

	resolved, unit, err := p.ResolveSelection(selection)
	require.NoError(t, err)
	assert.Equal(t, pricing.Money(4200), unit)
	require.Len(t, resolved, 2)
	assert.Equal(t, pricing.Money(700), resolved[0].PriceDelta)
	assert.Equal(t, "Tamaño", resolved[0].GroupName)
	assert.Equal(t, pricing.Money(500), resolved[1].PriceDelta)
}

func TestSelectedOptionDisplayName(t *testing.T) {
	withValue := SelectedOption{GroupName: "Tamaño", ValueLabel: "Grande"}
	assert.Equal(t, "Tamaño: Grande", withValue.DisplayName())

	plain := SelectedOption{GroupName: "Extra queso"}
	assert.Equal(t, "Extra queso", plain.DisplayName())
}
