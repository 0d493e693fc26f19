package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"restobar/internal/cart"
	"restobar/internal/models"
	"restobar/internal/pricing"
)

func checkoutCart(t *testing.T) *cart.Cart {
	t.Helper()

	plain := models.Product{ID: primitive.NewObjectID(), Name: "Combo", Price: 4500, IsAvailable: true}
	extraGroup, err := models.NewOptionGroup("extra", "Extra queso", models.OptionAddOn, false, 500, nil)
	require.NoError(t, err)
	withExtra := models.Product{
		ID: primitive.NewObjectID(), Name: "Roll", Price: 3000, IsAvailable: true,
		OptionGroups: []models.OptionGroup{extraGroup},
	}

	c := cart.New()
	_, err = c.AddItem(plain, nil, 2)
	require.NoError(t, err)
	_, err = c.AddItem(withExtra, []models.SelectedOption{
		{GroupID: "extra", GroupName: "Extra queso", PriceDelta: 500},
	}, 1)
	require.NoError(t, err)
	return c
}

func TestBuildSubmissionPickupTotals(t *testing.T) {
	c := checkoutCart(t)
	settings := models.Settings{DeliveryCost: 800}

	sub, err := BuildSubmission(c,
		CustomerInfo{Name: "Juan", Phone: "1155551234"},
		models.DeliveryModePickup, models.PaymentCash, "", "", settings)
	require.NoError(t, err)

	assert.Equal(t, pricing.Money(12500), sub.ClientSubtotal)
	assert.Equal(t, pricing.Money(0), sub.ClientDeliveryCost)
	assert.Equal(t, pricing.Money(12500), sub.ClientTotal)
	assert.Len(t, sub.CartItems, 2)
}

func TestBuildSubmissionDeliveryTotals(t *testing.T) {
	c := checkoutCart(t)
	settings := models.Settings{DeliveryCost: 800}

	sub, err := BuildSubmission(c,
		CustomerInfo{Name: "Juan", Phone: "1155551234"},
		models.DeliveryModeDelivery, models.PaymentTransfer, "Av. Corrientes 1234", "", settings)
	require.NoError(t, err)

	assert.Equal(t, pricing.Money(800), sub.ClientDeliveryCost)
	assert.Equal(t, pricing.Money(13300), sub.ClientTotal)
}

func TestBuildSubmissionFreeDelivery(t *testing.T) {
	c := checkoutCart(t)
	settings := models.Settings{DeliveryCost: 800, IsDeliveryFree: true}

	sub, err := BuildSubmission(c,
		CustomerInfo{Name: "Juan", Phone: "1155551234"},
		models.DeliveryModeDelivery, models.PaymentCash, "Av. Corrientes 1234", "", settings)
	require.NoError(t, err)
	assert.Equal(t, pricing.Money(0), sub.ClientDeliveryCost)
	assert.Equal(t, pricing.Money(12500), sub.ClientTotal)
}

func TestBuildSubmissionEmptyCart(t *testing.T) {
	_, err := BuildSubmission(cart.New(),
		CustomerInfo{Name: "Juan", Phone: "1155551234"},
		models.DeliveryModePickup, models.PaymentCash, "", "", models.Settings{})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, CodeEmptyCart, vErr.Code)
}

func TestBuildSubmissionMissingAddress(t *testing.T) {
	c := checkoutCart(t)
	_, err := BuildSubmission(c,
		CustomerInfo{Name: "Juan", Phone: "1155551234"},
		models.DeliveryModeDelivery, models.PaymentCash, "", "", models.Settings{})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, CodeMissingAddress, vErr.Code)
}

func TestBuildSubmissionFreezesCartSnapshot(t *testing.T) {
	c := checkoutCart(t)
	sub, err := BuildSubmission(c,
		CustomerInfo{Name: "Juan", Phone: "1155551234"},
		models.DeliveryModePickup, models.PaymentCash, "", "", models.Settings{})
	require.NoError(t, err)

	before := sub.CartItems[0].Quantity
	c.Clear()
	assert.Equal(t, before, sub.CartItems[0].Quantity, "submission must not track the live cart")
}
