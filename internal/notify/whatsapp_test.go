package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restobar/internal/models"
)

func sampleOrder() models.Order {
	return models.Order{
		CustomerName: "Juan Pérez",
		DeliveryMode: models.DeliveryModePickup,
		Items: []models.OrderItem{
			{Name: "Roll de salmón", Quantity: 2},
			{
				Name:     "Niguiri",
				Quantity: 1,
				SelectedOptions: []models.SelectedOption{
					{GroupName: "Extra queso"},
					{GroupName: "Tamaño", ValueLabel: "Grande"},
				},
			},
		},
		Total: 12500,
	}
}

func TestRenderSummaryPickup(t *testing.T) {
	got := RenderSummary(sampleOrder(), "")

	want := `🍣 *NUEVO PEDIDO*

👤 *Cliente:* Juan Pérez
🏪 *Retiro en local*

📋 *Productos:*
• 2x Roll de salmón
• 1x Niguiri (Extra queso, Tamaño: Grande)

💰 *Total: $12.500*`
	assert.Equal(t, want, got)
}

func TestRenderSummaryIsDeterministic(t *testing.T) {
	o := sampleOrder()
	assert.Equal(t, RenderSummary(o, "https://x/order-view/1"), RenderSummary(o, "https://x/order-view/1"))
}

func TestRenderSummaryDeliveryAndLink(t *testing.T) {
	o := sampleOrder()
	o.DeliveryMode = models.DeliveryModeDelivery
	o.DeliveryAddress = "Av. Corrientes 1234"

	got := RenderSummary(o, "https://resto.example/order-view/abc")
	assert.Contains(t, got, "📍 *Dirección:* Av. Corrientes 1234")
	assert.Contains(t, got, "🔗 *Ver pedido completo:* https://resto.example/order-view/abc")
	assert.NotContains(t, got, "Retiro en local")
}

func TestBuildDeepLink(t *testing.T) {
	link, err := BuildDeepLink("+54 9 11 5555-1234", "hola mundo")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/5491155551234?text=hola%20mundo", link)
	assert.False(t, strings.Contains(link, "+"), "spaces must be %%20, not '+'")
}

func TestBuildDeepLinkRejectsBadAddress(t *testing.T) {
	_, err := BuildDeepLink("abc", "hola")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}
