package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"modaai/internal/cart"
	"modaai/internal/catalog"
	"modaai/internal/checkout"
	"modaai/internal/config"
	"modaai/internal/database"
	"modaai/internal/genai"
	"modaai/internal/handlers"
	"modaai/internal/imaging"
	"modaai/internal/middleware"
	"modaai/internal/notify"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	config.Load()
	cfg := config.AppEnv

	if cfg.MongoURI == "" {
		zlog.Fatal().Msg("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		zlog.Fatal().Msg("JWT_SECRET is required")
	}
	if err := cfg.GeminiReady(); err != nil {
		zlog.Warn().Msg(err.Error() + " (AI generation disabled)")
	}

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}

	db := client.Database(cfg.DBName)
	zlog.Info().Str("db", db.Name()).Msg("MongoDB connected")

	if err := database.EnsureProductIndexes(db); err != nil {
		zlog.Warn().Err(err).Msg("product index warning")
	}
	if err := database.EnsureSaleIndexes(db); err != nil {
		zlog.Warn().Err(err).Msg("sale index warning")
	}

	store := catalog.NewStore(db, cfg.AppID)
	hub := notify.NewHub()
	carts := cart.NewStore()
	sim := checkout.NewSimulator(cfg.CheckoutDelay, 10*time.Minute)
	pre := imaging.New(cfg.ImageMaxDimension, cfg.ImageJPEGQuality)
	generator := genai.NewGenerator(
		genai.NewClient(cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiAPIKey),
		store,
		hub,
	)

	r := gin.Default()

	r.POST("/session", handlers.CreateSession(cfg.JWTSecret))
	r.GET("/products", handlers.GetProducts(store))
	r.GET("/products/stream", handlers.StreamProducts(store))
	r.GET("/products/:id", handlers.GetProduct(store))

	authed := r.Group("/")
	authed.Use(middleware.Session(cfg.JWTSecret))
	{
		authed.GET("/notifications/stream", handlers.StreamNotifications(hub))

		authed.GET("/cart", handlers.GetCart(carts))
		authed.POST("/cart/items", handlers.AddCartItem(carts, store))
		authed.DELETE("/cart/items/:index", handlers.RemoveCartItem(carts))
		authed.DELETE("/cart", handlers.ClearCart(carts))

		authed.POST("/checkout", handlers.BeginCheckout(sim, carts))
		authed.POST("/checkout/:id/pay", handlers.PayCheckout(sim, carts))
		authed.GET("/checkout/:id", handlers.GetCheckout(sim))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.Session(cfg.JWTSecret))
	{
		admin.POST("/products", handlers.CreateProduct(store, pre, generator, cfg))
		admin.DELETE("/products/:id", handlers.DeleteProduct(store))
		admin.POST("/products/:id/generate", handlers.RegenerateAssets(store, generator, cfg))
		admin.POST("/demo-data", handlers.SeedDemoData(store))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		zlog.Fatal().Err(err).Msg("server stopped")
	}
}
