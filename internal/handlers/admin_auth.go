package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"restobar/internal/models"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// unknown email and wrong password produce the same response
func AdminLogin(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/login"
		defer handlePanic(c, route)

		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "email and password are required")
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		err := db.Collection("admins").FindOne(ctx, bson.M{"email": email}).Decode(&admin)
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondWithError(c, http.StatusUnauthorized, route, "invalid credentials")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
			respondWithError(c, http.StatusUnauthorized, route, "invalid credentials")
			return
		}

		now := time.Now()
		claims := jwt.MapClaims{
			"sub":   admin.ID.Hex(),
			"email": admin.Email,
			"role":  "admin",
			"iat":   now.Unix(),
			"exp":   now.Add(tokenTTL).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "could not issue token")
			return
		}

		log.Printf("[%s] admin %s logged in", route, admin.Email)
		c.JSON(http.StatusOK, gin.H{
			"token":     token,
			"expiresIn": int64(tokenTTL.Seconds()),
			"email":     admin.Email,
		})
	}
}
