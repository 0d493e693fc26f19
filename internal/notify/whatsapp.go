// Package notify renders the outbound order message and its wa.me deep
// link. It only builds the URL; delivering the message is the customer's
// click.
package notify

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"restobar/internal/models"
	"restobar/internal/phone"
	"restobar/internal/pricing"
)

// ErrInvalidAddress is returned when the destination number cannot be
// normalized to a dialable form.
var ErrInvalidAddress = errors.New("notification address is not dialable")

// RenderSummary renders the fixed order template. The output is
// deterministic for a given order: same order value, same bytes.
func RenderSummary(o models.Order, orderViewURL string) string {
	var items strings.Builder
	for i, item := range o.Items {
		if i > 0 {
			items.WriteByte('\n')
		}
		fmt.Fprintf(&items, "• %dx %s", item.Quantity, item.Name)
		if len(item.SelectedOptions) > 0 {
			names := make([]string, 0, len(item.SelectedOptions))
			for _, s := range item.SelectedOptions {
				names = append(names, s.DisplayName())
			}
			fmt.Fprintf(&items, " (%s)", strings.Join(names, ", "))
		}
	}

	var delivery string
	if o.DeliveryMode == models.DeliveryModeDelivery {
		delivery = fmt.Sprintf("📍 *Dirección:* %s\n", o.DeliveryAddress)
	} else {
		delivery = "🏪 *Retiro en local*\n"
	}

	var link string
	if orderViewURL != "" {
		link = fmt.Sprintf("\n🔗 *Ver pedido completo:* %s", orderViewURL)
	}

	return fmt.Sprintf(`🍣 *NUEVO PEDIDO*

👤 *Cliente:* %s
%s
📋 *Productos:*
%s

💰 *Total: %s*%s`,
		o.CustomerName, delivery, items.String(), pricing.FormatARS(o.Total), link)
}

// BuildDeepLink composes the wa.me URL carrying the percent-encoded
// message.
func BuildDeepLink(channelAddress, message string) (string, error) {
	digits, err := phone.Digits(channelAddress)
	if err != nil {
		return "", ErrInvalidAddress
	}
	// QueryEscape uses '+' for spaces, which WhatsApp renders literally
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, encoded), nil
}
