package order

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"restobar/internal/cart"
	"restobar/internal/models"
)

// BuildSubmission turns a cart plus checkout choices into the payload the
// server expects. The cart items are copied into the submission, so later
// cart mutations cannot alter an in-flight order.
func BuildSubmission(
	c *cart.Cart,
	customer CustomerInfo,
	mode models.DeliveryMode,
	payment models.PaymentMethod,
	address, note string,
	settings models.Settings,
) (Submission, error) {
	if c.TotalItems() == 0 {
		return Submission{}, &ValidationError{Code: CodeEmptyCart, Message: "the cart is empty"}
	}
	if mode == models.DeliveryModeDelivery && address == "" {
		return Submission{}, &ValidationError{
			Code:    CodeMissingAddress,
			Field:   "deliveryAddress",
			Message: "a delivery address is required for delivery orders",
		}
	}

	items := make([]SubmissionItem, 0, c.Len())
	for _, item := range c.Items() {
		items = append(items, SubmissionItem{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			SelectedOptions: item.SelectedOptions,
			ClientUnitPrice: item.UnitPrice,
			ClientSubtotal:  item.Subtotal,
		})
	}

	subtotal := c.Subtotal()
	deliveryCost := settings.DeliveryCostFor(mode)

	return Submission{
		Customer:           customer,
		DeliveryMode:       mode,
		DeliveryAddress:    address,
		PaymentMethod:      payment,
		Note:               note,
		CartItems:          items,
		ClientSubtotal:     subtotal,
		ClientDeliveryCost: deliveryCost,
		ClientTotal:        subtotal + deliveryCost,
	}, nil
}

// ParseProductID converts the wire form of a product id.
func ParseProductID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
