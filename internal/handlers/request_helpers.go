package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"restobar/internal/order"
)

var errBadPagination = errors.New("invalid limit or offset")

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func ensureDBConnection(ctx context.Context, db *mongo.Database) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.Client().Ping(checkCtx, readpref.Primary())
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// the contract's error shape: a human message plus the machine code and
// the offending field
func respondValidation(c *gin.Context, route string, vErr *order.ValidationError) {
	log.Printf("[%s] rejected: %s", route, vErr)
	body := gin.H{"error": vErr.Message, "code": vErr.Code}
	if vErr.Field != "" {
		body["field"] = vErr.Field
	}
	c.AbortWithStatusJSON(vErr.HTTPStatus(), body)
}

func parseLimitOffset(limitStr, offsetStr string) (int64, int64, error) {
	limit := int64(50)
	offset := int64(0)

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 || l > 200 {
			return 0, 0, errBadPagination
		}
		limit = l
	}

	if offsetStr != "" {
		o, err := strconv.ParseInt(offsetStr, 10, 64)
		if err != nil || o < 0 {
			return 0, 0, errBadPagination
		}
		offset = o
	}

	return limit, offset, nil
}
