package handlers

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"restobar/internal/models"
	"restobar/internal/order"
	"restobar/internal/ratelimit"
)

// NewOrderValidator wires the order validator to the live collections.
func NewOrderValidator(db *mongo.Database, limiter ratelimit.Limiter) *order.Validator {
	return order.NewValidator(mongoCatalog{db: db}, mongoSettings{db: db}, limiter)
}

// mongoCatalog adapts the products collection to the validator's Catalog
// interface.
type mongoCatalog struct {
	db *mongo.Database
}

func (m mongoCatalog) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil // not resolvable, not an infrastructure failure
	}

	lookupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var product models.Product
	err = m.db.Collection("products").FindOne(
		lookupCtx,
		bson.M{"_id": oid, "isDeleted": bson.M{"$ne": true}},
	).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// mongoSettings reads the singleton settings document. A missing document
// behaves as zero-valued settings so a fresh install can take orders.
type mongoSettings struct {
	db *mongo.Database
}

func (m mongoSettings) RestaurantSettings(ctx context.Context) (models.Settings, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var settings models.Settings
	err := m.db.Collection("settings").FindOne(lookupCtx, bson.M{}).Decode(&settings)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Settings{}, nil
	}
	if err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}
