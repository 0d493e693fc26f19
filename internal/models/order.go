package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"restobar/internal/pricing"
)

// DeliveryMode says whether an order is brought to an address or picked up.
type DeliveryMode string

const (
	DeliveryModeDelivery DeliveryMode = "delivery"
	DeliveryModePickup   DeliveryMode = "pickup"
)

func (m DeliveryMode) Valid() bool {
	return m == DeliveryModeDelivery || m == DeliveryModePickup
}

// PaymentMethod is the closed set of accepted payment choices.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentTransfer
}

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo enforces the lifecycle: pending → confirmed → preparing →
// delivered, with cancellation allowed at any point before delivered.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if next == StatusCancelled {
		return s != StatusDelivered && s != StatusCancelled
	}
	switch s {
	case StatusPending:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusPreparing
	case StatusPreparing:
		return next == StatusDelivered
	}
	return false
}

// OrderItem is a frozen, server-priced line item inside a persisted order.
type OrderItem struct {
	ProductID       primitive.ObjectID `bson:"productId" json:"productId"`
	Name            string             `bson:"name" json:"name"`
	SelectedOptions []SelectedOption   `bson:"selectedOptions,omitempty" json:"selectedOptions,omitempty"`
	UnitPrice       pricing.Money      `bson:"unitPrice" json:"unitPrice"`
	Quantity        int                `bson:"quantity" json:"quantity"`
	Subtotal        pricing.Money      `bson:"subtotal" json:"subtotal"`
}

// Order is the persisted order document. Subtotal, DeliveryCost and Total
// are always the server-recomputed figures; total == subtotal + deliveryCost.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerName    string             `bson:"customerName" json:"customerName"`
	CustomerPhone   string             `bson:"customerPhone" json:"customerPhone"`
	DeliveryMode    DeliveryMode       `bson:"deliveryMode" json:"deliveryMode"`
	DeliveryAddress string             `bson:"deliveryAddress,omitempty" json:"deliveryAddress,omitempty"`
	PaymentMethod   PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Subtotal        pricing.Money      `bson:"subtotal" json:"subtotal"`
	DeliveryCost    pricing.Money      `bson:"deliveryCost" json:"deliveryCost"`
	Total           pricing.Money      `bson:"total" json:"total"`
	Status          OrderStatus        `bson:"status" json:"status"`
	Note            string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
