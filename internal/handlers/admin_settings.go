package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"restobar/internal/models"
	"restobar/internal/phone"
	"restobar/internal/pricing"
)

type settingsUpdateRequest struct {
	Name           *string              `json:"name"`
	Phone          *string              `json:"phone"`
	WhatsAppNumber *string              `json:"whatsapp_number"`
	Address        *string              `json:"address"`
	IsDeliveryFree *bool                `json:"is_delivery_free"`
	DeliveryCost   *pricing.Money       `json:"delivery_cost"`
	OpeningHours   *models.WeekSchedule `json:"opening_hours"`
}

func GetAdminSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/settings"
		defer handlePanic(c, route)

		settings, err := mongoSettings{db: db}.RestaurantSettings(c.Request.Context())
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, settings)
	}
}

// upserts the singleton settings document; numbers are stored in
// dialable form so the notification link never has to guess
func UpdateSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/settings"
		defer handlePanic(c, route)

		var req settingsUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		set := bson.M{"updatedAt": time.Now()}
		if req.Name != nil {
			set["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Phone != nil {
			set["phone"] = strings.TrimSpace(*req.Phone)
		}
		if req.WhatsAppNumber != nil {
			number := strings.TrimSpace(*req.WhatsAppNumber)
			if number != "" {
				normalized, err := phone.Normalize(number)
				if err != nil {
					respondWithError(c, http.StatusBadRequest, route, "whatsapp number is not dialable")
					return
				}
				number = normalized
			}
			set["whatsappNumber"] = number
		}
		if req.Address != nil {
			set["address"] = strings.TrimSpace(*req.Address)
		}
		if req.IsDeliveryFree != nil {
			set["isDeliveryFree"] = *req.IsDeliveryFree
		}
		if req.DeliveryCost != nil {
			if *req.DeliveryCost < 0 {
				respondWithError(c, http.StatusBadRequest, route, "delivery cost must not be negative")
				return
			}
			set["deliveryCost"] = *req.DeliveryCost
		}
		if req.OpeningHours != nil {
			set["openingHours"] = *req.OpeningHours
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Update().SetUpsert(true)
		_, err := db.Collection("settings").UpdateOne(ctx, bson.M{}, bson.M{"$set": set}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		settings, err := mongoSettings{db: db}.RestaurantSettings(c.Request.Context())
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, settings)
	}
}
