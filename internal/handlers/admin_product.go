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
	"restobar/internal/pricing"
	"restobar/internal/storage"
)

type optionValueRequest struct {
	Label      string        `json:"label" binding:"required"`
	PriceDelta pricing.Money `json:"priceDelta"`
}

type optionGroupRequest struct {
	ID         string               `json:"id"`
	Name       string               `json:"name" binding:"required"`
	Kind       models.OptionKind    `json:"kind" binding:"required"`
	Required   bool                 `json:"required"`
	PriceDelta pricing.Money        `json:"priceDelta"`
	Values     []optionValueRequest `json:"values"`
}

type productCreateRequest struct {
	Name         string               `json:"name" binding:"required"`
	Description  string               `json:"description"`
	Price        *pricing.Money       `json:"price" binding:"required"`
	CategoryID   string               `json:"categoryId" binding:"required"`
	IsAvailable  *bool                `json:"isAvailable"`
	Stock        *int                 `json:"stock"`
	OptionGroups []optionGroupRequest `json:"optionGroups"`
}

type productUpdateRequest struct {
	Name         *string               `json:"name"`
	Description  *string               `json:"description"`
	Price        *pricing.Money        `json:"price"`
	CategoryID   *string               `json:"categoryId"`
	IsAvailable  *bool                 `json:"isAvailable"`
	Stock        *int                  `json:"stock"`
	ClearStock   bool                  `json:"clearStock"`
	OptionGroups *[]optionGroupRequest `json:"optionGroups"`
}

// every group goes through the models constructor so a malformed
// kind/shape never reaches the collection
func buildOptionGroups(reqs []optionGroupRequest) ([]models.OptionGroup, error) {
	groups := make([]models.OptionGroup, 0, len(reqs))
	for _, r := range reqs {
		id := r.ID
		if id == "" {
			id = primitive.NewObjectID().Hex()
		}
		values := make([]models.OptionValue, 0, len(r.Values))
		for _, v := range r.Values {
			values = append(values, models.OptionValue{Label: v.Label, PriceDelta: v.PriceDelta})
		}
		if len(values) == 0 {
			values = nil
		}
		group, err := models.NewOptionGroup(id, strings.TrimSpace(r.Name), r.Kind, r.Required, r.PriceDelta, values)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func GetAllProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/products"
		defer handlePanic(c, route)

		filter := bson.M{"isDeleted": bson.M{"$ne": true}}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["categoryId"] = category
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("products").Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": products})
	}
}

func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products"
		defer handlePanic(c, route)

		var req productCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		if *req.Price < 0 {
			respondWithError(c, http.StatusBadRequest, route, "price must not be negative")
			return
		}
		if req.Stock != nil && *req.Stock < 0 {
			respondWithError(c, http.StatusBadRequest, route, "stock must not be negative")
			return
		}

		groups, err := buildOptionGroups(req.OptionGroups)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		isAvailable := true
		if req.IsAvailable != nil {
			isAvailable = *req.IsAvailable
		}

		product := models.Product{
			Name:         strings.TrimSpace(req.Name),
			Description:  strings.TrimSpace(req.Description),
			Price:        *req.Price,
			CategoryID:   req.CategoryID,
			IsAvailable:  isAvailable,
			Stock:        req.Stock,
			OptionGroups: groups,
			CreatedAt:    time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		product.ID = res.InsertedID.(primitive.ObjectID)

		c.JSON(http.StatusCreated, product)
	}
}

func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/products/:id"
		defer handlePanic(c, route)

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req productUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		set := bson.M{"updatedAt": time.Now()}
		unset := bson.M{}

		if req.Name != nil {
			set["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			set["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Price != nil {
			if *req.Price < 0 {
				respondWithError(c, http.StatusBadRequest, route, "price must not be negative")
				return
			}
			set["price"] = *req.Price
		}
		if req.CategoryID != nil {
			set["categoryId"] = *req.CategoryID
		}
		if req.IsAvailable != nil {
			set["isAvailable"] = *req.IsAvailable
		}
		if req.ClearStock {
			unset["stock"] = ""
		} else if req.Stock != nil {
			if *req.Stock < 0 {
				respondWithError(c, http.StatusBadRequest, route, "stock must not be negative")
				return
			}
			set["stock"] = *req.Stock
		}
		if req.OptionGroups != nil {
			groups, err := buildOptionGroups(*req.OptionGroups)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
			set["optionGroups"] = groups
		}

		update := bson.M{"$set": set}
		if len(unset) > 0 {
			update["$unset"] = unset
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").UpdateOne(
			ctx,
			bson.M{"_id": oid, "isDeleted": bson.M{"$ne": true}},
			update,
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product updated"})
	}
}

// soft delete; existing orders keep their frozen item snapshots
func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/products/:id"
		defer handlePanic(c, route)

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		now := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").UpdateOne(
			ctx,
			bson.M{"_id": oid, "isDeleted": bson.M{"$ne": true}},
			bson.M{"$set": bson.M{"isDeleted": true, "isAvailable": false, "deletedAt": now}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}

func UploadProductImage(db *mongo.Database, store storage.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products/:id/image"
		defer handlePanic(c, route)

		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "image file is required")
			return
		}
		ext, err := storage.ValidateImage(file)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		filename := primitive.NewObjectID().Hex() + ext
		imageURL, err := store.Save(c.Request.Context(), filename, file)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "upload failed")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").UpdateOne(
			ctx,
			bson.M{"_id": oid, "isDeleted": bson.M{"$ne": true}},
			bson.M{"$set": bson.M{"imageUrl": imageURL, "updatedAt": time.Now()}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"imageUrl": imageURL})
	}
}
