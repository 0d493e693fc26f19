package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"restobar/internal/models"
	"restobar/internal/notify"
	"restobar/internal/order"
)

// the trust boundary: the submission is re-priced from the catalog and
// persisted in status pending; on any rejection nothing is persisted
func CreateOrder(db *mongo.Database, validator *order.Validator, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var sub order.Submission
		if err := c.ShouldBindJSON(&sub); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		validated, err := validator.Validate(c.Request.Context(), sub, c.ClientIP())
		if err != nil {
			var vErr *order.ValidationError
			if errors.As(err, &vErr) {
				respondValidation(c, route, vErr)
				return
			}
			// lookup infrastructure failed: fail closed, nothing persisted
			respondWithError(c, http.StatusInternalServerError, route, "order could not be validated")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("orders").InsertOne(ctx, validated)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		orderID, _ := res.InsertedID.(primitive.ObjectID)
		validated.ID = orderID

		orderViewURL := baseURL + "/order-view/" + orderID.Hex()
		summary := notify.RenderSummary(*validated, orderViewURL)

		settings, err := mongoSettings{db: db}.RestaurantSettings(c.Request.Context())
		if err != nil {
			log.Printf("[%s] settings lookup for notification failed: %v", route, err)
		}

		deepLink := ""
		if destination := settings.NotificationNumber(); destination != "" {
			deepLink, err = notify.BuildDeepLink(destination, summary)
			if err != nil {
				// the order exists either way; the link is best effort
				log.Printf("[%s] notification link not built: %v", route, err)
			}
		}

		log.Printf("[%s] order %s created, total %d", route, orderID.Hex(), validated.Total)
		c.JSON(http.StatusCreated, gin.H{
			"orderId":              orderID.Hex(),
			"status":               validated.Status,
			"total":                validated.Total,
			"notificationDeepLink": deepLink,
			"orderViewUrl":         orderViewURL,
		})
	}
}

func GetOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id"
		defer handlePanic(c, route)

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var o models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": oid}).Decode(&o)
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, o)
	}
}
