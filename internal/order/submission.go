package order

import (
	"restobar/internal/models"
	"restobar/internal/pricing"
)

// CustomerInfo is the contact block of a submission.
type CustomerInfo struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// SubmissionItem is one cart row as the client sends it. The client prices
// are advisory display values; the server re-derives every figure from the
// catalog.
type SubmissionItem struct {
	ProductID       string                  `json:"productId" binding:"required"`
	Quantity        int                     `json:"quantity" binding:"required"`
	SelectedOptions []models.SelectedOption `json:"selectedOptions,omitempty"`
	ClientUnitPrice pricing.Money           `json:"clientUnitPrice"`
	ClientSubtotal  pricing.Money           `json:"clientSubtotal"`
}

// Submission is the JSON body the storefront posts to create an order.
type Submission struct {
	Customer        CustomerInfo         `json:"customerInfo" binding:"required"`
	DeliveryMode    models.DeliveryMode  `json:"deliveryMode" binding:"required"`
	DeliveryAddress string               `json:"deliveryAddress,omitempty"`
	PaymentMethod   models.PaymentMethod `json:"paymentMethod" binding:"required"`
	Note            string               `json:"note,omitempty"`
	CartItems       []SubmissionItem     `json:"cartItems" binding:"required"`

	// client-computed totals, advisory only
	ClientSubtotal     pricing.Money `json:"clientSubtotal,omitempty"`
	ClientDeliveryCost pricing.Money `json:"clientDeliveryCost,omitempty"`
	ClientTotal        pricing.Money `json:"clientTotal,omitempty"`
}
