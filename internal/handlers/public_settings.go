package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"restobar/internal/models"
)

type settingsResponse struct {
	models.Settings
	IsOpen bool `json:"is_open"`
}

func GetSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /settings"
		defer handlePanic(c, route)

		settings, err := mongoSettings{db: db}.RestaurantSettings(c.Request.Context())
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, settingsResponse{
			Settings: settings,
			IsOpen:   settings.IsOpenAt(time.Now()),
		})
	}
}
