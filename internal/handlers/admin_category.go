package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"restobar/internal/models"
)

type categoryCreateRequest struct {
	Name         string `json:"name" binding:"required"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     *bool  `json:"isActive"`
}

type categoryUpdateRequest struct {
	Name         *string `json:"name"`
	DisplayOrder *int    `json:"displayOrder"`
	IsActive     *bool   `json:"isActive"`
}

func GetAllCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/categories"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "displayOrder", Value: 1}, {Key: "name", Value: 1}})
		cursor, err := db.Collection("categories").Find(ctx, bson.M{}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		categories := make([]models.Category, 0)
		if err := cursor.All(ctx, &categories); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": categories})
	}
}

func CreateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/categories"
		defer handlePanic(c, route)

		var req categoryCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			respondWithError(c, http.StatusBadRequest, route, "name must not be empty")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("categories").CountDocuments(ctx, bson.M{"name": name})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if count > 0 {
			respondWithError(c, http.StatusConflict, route, "category already exists")
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		category := models.Category{
			Name:         name,
			DisplayOrder: req.DisplayOrder,
			IsActive:     isActive,
			CreatedAt:    time.Now(),
		}

		res, err := db.Collection("categories").InsertOne(ctx, category)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		category.ID = res.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, category)
	}
}

func UpdateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/categories/:id"
		defer handlePanic(c, route)

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req categoryUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		set := bson.M{}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				respondWithError(c, http.StatusBadRequest, route, "name must not be empty")
				return
			}
			set["name"] = name
		}
		if req.DisplayOrder != nil {
			set["displayOrder"] = *req.DisplayOrder
		}
		if req.IsActive != nil {
			set["isActive"] = *req.IsActive
		}
		if len(set) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "nothing to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("categories").UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "category not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "category updated"})
	}
}

// refused while products still point at the category
func DeleteCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/categories/:id"
		defer handlePanic(c, route)

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		inUse, err := db.Collection("products").CountDocuments(ctx, bson.M{
			"categoryId": oid.Hex(),
			"isDeleted":  bson.M{"$ne": true},
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if inUse > 0 {
			respondWithError(c, http.StatusConflict, route, "category has products")
			return
		}

		res, err := db.Collection("categories").DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "category not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
	}
}
