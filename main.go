package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"restobar/internal/cart"
	"restobar/internal/config"
	"restobar/internal/database"
	"restobar/internal/handlers"
	"restobar/internal/middleware"
	"restobar/internal/ratelimit"
	"restobar/internal/storage"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Printf("admin index warning: %v", err)
	}

	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(
		config.AppEnv.RateLimitMax,
		config.AppEnv.RateLimitWindow,
	)
	var cartStore cart.Store
	if config.AppEnv.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: config.AppEnv.RedisAddr})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatal("redis unreachable: ", err)
		}
		cancel()
		log.Println("Redis connected to:", config.AppEnv.RedisAddr)
		limiter = ratelimit.NewRedisLimiter(rdb, config.AppEnv.RateLimitMax, config.AppEnv.RateLimitWindow)
		cartStore = cart.NewRedisStore(rdb, config.AppEnv.CartTTL)
	}

	var imageStore storage.ImageStore = storage.NewLocalStore(config.AppEnv.PublicDir)
	if config.AppEnv.S3Bucket != "" {
		s3Store, err := storage.NewS3Store(context.Background(), storage.S3Config{
			Endpoint:  config.AppEnv.S3Endpoint,
			AccessKey: config.AppEnv.S3AccessKey,
			SecretKey: config.AppEnv.S3SecretKey,
			Bucket:    config.AppEnv.S3Bucket,
			BaseURL:   config.AppEnv.S3BaseURL,
		})
		if err != nil {
			log.Fatal("object storage init failed: ", err)
		}
		imageStore = s3Store
	}

	validator := handlers.NewOrderValidator(db, limiter)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppEnv.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Static("/public", config.AppEnv.PublicDir)

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/:id", handlers.GetProductByID(db))
	r.GET("/categories", handlers.GetCategories(db))
	r.GET("/settings", handlers.GetSettings(db))
	r.POST("/orders", handlers.CreateOrder(db, validator, config.AppEnv.BaseURL))
	r.GET("/orders/:id", handlers.GetOrder(db))

	if cartStore != nil {
		r.GET("/cart", handlers.GetCart(db, cartStore))
		r.PUT("/cart", handlers.SaveCart(cartStore))
	}

	r.POST("/admin/login", handlers.AdminLogin(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/products", handlers.GetAllProducts(db))
		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))
		admin.POST("/products/:id/image", handlers.UploadProductImage(db, imageStore))

		admin.GET("/categories", handlers.GetAllCategories(db))
		admin.POST("/categories", handlers.CreateCategory(db))
		admin.PUT("/categories/:id", handlers.UpdateCategory(db))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(db))

		admin.GET("/orders", handlers.GetOrders(db))
		admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus(db))

		admin.GET("/settings", handlers.GetAdminSettings(db))
		admin.PUT("/settings", handlers.UpdateSettings(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
