package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("products").Indexes()

	categoryIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "categoryId", Value: 1}, {Key: "isAvailable", Value: 1}},
		Options: options.Index().SetName("category_available"),
	}
	nameIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("name_index"),
	}

	log.Println("EnsureProductIndexes: creating product indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{categoryIndex, nameIndex})
	if err != nil {
		log.Println("EnsureProductIndexes: index error:", err)
		return err
	}
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	statusIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("status_createdAt"),
	}

	log.Println("EnsureOrderIndexes: creating status_createdAt index")
	_, err := indexes.CreateOne(ctx, statusIndex)
	if err != nil {
		log.Println("EnsureOrderIndexes: status index error:", err)
		return err
	}
	return nil
}

func EnsureAdminIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("admins").Indexes()

	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_unique").SetUnique(true),
	}

	log.Println("EnsureAdminIndexes: creating email_unique index")
	_, err := indexes.CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureAdminIndexes: email index error:", err)
		return err
	}
	return nil
}
