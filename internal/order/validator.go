package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"restobar/internal/models"
	"restobar/internal/phone"
	"restobar/internal/pricing"
	"restobar/internal/ratelimit"
)

// Bounds for a submission. Anything outside rejects hard; the note is the
// one exception, which is truncated instead.
const (
	MinNameLen      = 2
	MaxNameLen      = 100
	MinPhoneLen     = 8
	MaxPhoneLen     = 20
	MaxCartItems    = 50
	MaxItemQuantity = 99
	MinAddressLen   = 5
	MaxAddressLen   = 200
	MaxNoteLen      = 500
)

// Catalog resolves products by hex id. A nil product with a nil error means
// the product does not exist; a non-nil error means the lookup itself
// failed and validation must fail closed.
type Catalog interface {
	ProductByID(ctx context.Context, id string) (*models.Product, error)
}

// SettingsSource reads the restaurant settings record.
type SettingsSource interface {
	RestaurantSettings(ctx context.Context) (models.Settings, error)
}

// Validator is the trust boundary for order submissions: every numeric and
// textual input is bounds-checked, every price re-derived from the catalog.
// Client-sent prices are never inputs of record.
type Validator struct {
	catalog  Catalog
	settings SettingsSource
	limiter  ratelimit.Limiter

	now func() time.Time
}

func NewValidator(catalog Catalog, settings SettingsSource, limiter ratelimit.Limiter) *Validator {
	return &Validator{
		catalog:  catalog,
		settings: settings,
		limiter:  limiter,
		now:      time.Now,
	}
}

// Validate checks a submission from sourceAddr and returns the order to
// persist, priced entirely from authoritative data. On any error nothing
// has been persisted and nothing must be.
func (v *Validator) Validate(ctx context.Context, sub Submission, sourceAddr string) (*models.Order, error) {
	name := sanitizeText(sub.Customer.Name)
	if l := len([]rune(name)); l < MinNameLen || l > MaxNameLen {
		return nil, invalidField("customerInfo.name", "name must be between %d and %d characters", MinNameLen, MaxNameLen)
	}

	rawPhone := sanitizePhone(sub.Customer.Phone)
	if l := len(rawPhone); l < MinPhoneLen || l > MaxPhoneLen {
		return nil, invalidField("customerInfo.phone", "phone must be between %d and %d characters", MinPhoneLen, MaxPhoneLen)
	}
	dialable, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, invalidField("customerInfo.phone", "phone is not a dialable number")
	}

	if !sub.DeliveryMode.Valid() {
		return nil, invalidField("deliveryMode", "delivery mode must be %q or %q", models.DeliveryModeDelivery, models.DeliveryModePickup)
	}
	if !sub.PaymentMethod.Valid() {
		return nil, invalidField("paymentMethod", "payment method must be %q or %q", models.PaymentCash, models.PaymentTransfer)
	}

	address := ""
	if sub.DeliveryMode == models.DeliveryModeDelivery {
		address = sanitizeText(sub.DeliveryAddress)
		if address == "" {
			return nil, &ValidationError{
				Code:    CodeMissingAddress,
				Field:   "deliveryAddress",
				Message: "a delivery address is required for delivery orders",
			}
		}
		if l := len([]rune(address)); l < MinAddressLen || l > MaxAddressLen {
			return nil, invalidField("deliveryAddress", "address must be between %d and %d characters", MinAddressLen, MaxAddressLen)
		}
	}

	note := truncate(sanitizeText(sub.Note), MaxNoteLen)

	if len(sub.CartItems) == 0 {
		return nil, &ValidationError{Code: CodeEmptyCart, Message: "the cart is empty"}
	}
	if len(sub.CartItems) > MaxCartItems {
		return nil, invalidField("cartItems", "at most %d distinct items per order", MaxCartItems)
	}

	items := make([]models.OrderItem, 0, len(sub.CartItems))
	var subtotal pricing.Money
	for i, item := range sub.CartItems {
		field := fmt.Sprintf("cartItems[%d]", i)

		if item.Quantity < 1 || item.Quantity > MaxItemQuantity {
			return nil, invalidField(field+".quantity", "quantity must be between 1 and %d", MaxItemQuantity)
		}

		oid, ok := ParseProductID(item.ProductID)
		if !ok {
			return nil, &ValidationError{Code: CodeUnknownProduct, Field: field, Message: "unknown product"}
		}

		product, err := v.catalog.ProductByID(ctx, item.ProductID)
		if err != nil {
			// fail closed: never fall back to client-supplied figures
			return nil, fmt.Errorf("product lookup for %s: %w", item.ProductID, err)
		}
		if product == nil || product.IsDeleted {
			return nil, &ValidationError{Code: CodeUnknownProduct, Field: field, Message: "unknown product"}
		}
		if !product.IsAvailable {
			return nil, &ValidationError{Code: CodeProductUnavailable, Field: field, Message: fmt.Sprintf("%q is not available right now", product.Name)}
		}
		if product.Stock != nil && *product.Stock < item.Quantity {
			return nil, &ValidationError{Code: CodeProductUnavailable, Field: field, Message: fmt.Sprintf("only %d of %q left", *product.Stock, product.Name)}
		}

		resolved, unit, err := product.ResolveSelection(item.SelectedOptions)
		if err != nil {
			var selErr pricing.InvalidSelectionError
			if errors.As(err, &selErr) {
				return nil, invalidField(field+".selectedOptions", "%s", selErr.Reason)
			}
			return nil, err
		}

		lineSubtotal, err := pricing.LineSubtotal(unit, item.Quantity)
		if err != nil {
			return nil, invalidField(field+".quantity", "%v", err)
		}

		if item.ClientSubtotal != 0 && item.ClientSubtotal != lineSubtotal {
			log.Printf("[ORDER] client subtotal mismatch for product %s: client=%d server=%d (using server)",
				item.ProductID, item.ClientSubtotal, lineSubtotal)
		}

		items = append(items, models.OrderItem{
			ProductID:       oid,
			Name:            product.Name,
			SelectedOptions: resolved,
			UnitPrice:       unit,
			Quantity:        item.Quantity,
			Subtotal:        lineSubtotal,
		})
		subtotal += lineSubtotal
	}

	settings, err := v.settings.RestaurantSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("settings lookup: %w", err)
	}
	deliveryCost := settings.DeliveryCostFor(sub.DeliveryMode)
	total := subtotal + deliveryCost

	if sub.ClientTotal != 0 && sub.ClientTotal != total {
		log.Printf("[ORDER] client total mismatch: client=%d server=%d (using server)", sub.ClientTotal, total)
	}

	// counted last so rejected attempts never burn window budget; the
	// window throttles accepted submissions
	allowed, err := v.limiter.Allow(ctx, sourceAddr)
	if err != nil {
		// the limiter is a deterrent, not a gate worth an outage
		log.Printf("[ORDER] rate limiter unavailable, allowing %s: %v", sourceAddr, err)
	} else if !allowed {
		return nil, &ValidationError{Code: CodeRateLimited, Message: "too many orders from this address, try again in a minute"}
	}

	return &models.Order{
		CustomerName:    name,
		CustomerPhone:   dialable,
		DeliveryMode:    sub.DeliveryMode,
		DeliveryAddress: address,
		PaymentMethod:   sub.PaymentMethod,
		Items:           items,
		Subtotal:        subtotal,
		DeliveryCost:    deliveryCost,
		Total:           total,
		Status:          models.StatusPending,
		Note:            note,
		CreatedAt:       v.now(),
	}, nil
}
