package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"restobar/internal/models"
)

func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders"
		defer handlePanic(c, route)

		limit, offset, err := parseLimitOffset(c.Query("limit"), c.Query("offset"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		filter := bson.M{}
		if status := c.Query("status"); status != "" {
			if !models.OrderStatus(status).Valid() {
				respondWithError(c, http.StatusBadRequest, route, "unknown status")
				return
			}
			filter["status"] = status
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("orders").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(limit).
			SetSkip(offset)
		cursor, err := db.Collection("orders").Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data":   orders,
			"total":  total,
			"limit":  limit,
			"offset": offset,
		})
	}
}

type orderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// a delivered or cancelled order is final
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/orders/:id/status"
		defer handlePanic(c, route)

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		if !req.Status.Valid() {
			respondWithError(c, http.StatusBadRequest, route, "unknown status")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var current models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": oid}).Decode(&current)
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if !current.Status.CanTransitionTo(req.Status) {
			respondWithError(c, http.StatusConflict, route,
				"cannot move order from "+string(current.Status)+" to "+string(req.Status))
			return
		}

		_, err = db.Collection("orders").UpdateOne(
			ctx,
			bson.M{"_id": oid, "status": current.Status},
			bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now()}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "status updated", "status": req.Status})
	}
}
