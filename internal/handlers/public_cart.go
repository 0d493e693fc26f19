package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"restobar/internal/cart"
)

const sessionHeader = "X-Session-ID"

func sessionID(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(sessionHeader))
}

// totals come from the rebuilt aggregate, never from the stored snapshot
func GetCart(db *mongo.Database, store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart"
		defer handlePanic(c, route)

		session := sessionID(c)
		if session == "" {
			respondWithError(c, http.StatusBadRequest, route, "missing "+sessionHeader+" header")
			return
		}

		entries, err := store.Load(c.Request.Context(), session)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart store unavailable")
			return
		}

		restored, err := cart.Restore(c.Request.Context(), entries, mongoCatalog{db: db}.ProductByID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart could not be restored")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items":      restored.Items(),
			"totalItems": restored.TotalItems(),
			"subtotal":   restored.Subtotal(),
		})
	}
}

type saveCartRequest struct {
	Items []cart.SnapshotEntry `json:"items"`
}

func SaveCart(store cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /cart"
		defer handlePanic(c, route)

		session := sessionID(c)
		if session == "" {
			respondWithError(c, http.StatusBadRequest, route, "missing "+sessionHeader+" header")
			return
		}

		var req saveCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		if err := store.Save(c.Request.Context(), session, req.Items); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "cart store unavailable")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "cart saved"})
	}
}
