package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/Kariqs/foodhub-api/controllers"
	"github.com/Kariqs/foodhub-api/events"
	"github.com/Kariqs/foodhub-api/geocoding"
	"github.com/Kariqs/foodhub-api/initializers"
	"github.com/Kariqs/foodhub-api/middlewares"
	"github.com/Kariqs/foodhub-api/pricing"
	"github.com/Kariqs/foodhub-api/routes"
	"github.com/Kariqs/foodhub-api/services"
	"github.com/Kariqs/foodhub-api/storage"
	"github.com/Kariqs/foodhub-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	initializers.LoadEnv()
	cfg, err := initializers.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	initializers.InitLogger(cfg.LogLevel)
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	if err := initializers.ConnectToDB(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	db := initializers.DB
	if err := initializers.SyncDatabase(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	if err := initializers.SeedManagement(db, cfg.ManagementEmail, cfg.ManagementPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to seed management account")
	}

	hub := events.NewHub()
	publisher := buildPublisher(cfg, hub)
	defer publisher.Close()

	var cache geocoding.Cache = geocoding.NopCache{}
	if cfg.RedisAddr != "" {
		cache = geocoding.NewRedisCache(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}

	var uploader storage.Uploader = storage.Disabled{}
	if cfg.S3Bucket != "" {
		s3Uploader, err := storage.NewS3Uploader(context.Background(), cfg.S3Bucket)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to configure S3")
		}
		uploader = s3Uploader
	}

	charges := pricing.Charges{Delivery: cfg.Pricing.DeliveryCharge, Platform: cfg.Pricing.PlatformCharge}
	handler := &controllers.Handler{
		Auth:        services.NewAuthService(db, cfg.JWTSecret),
		Carts:       services.NewCartService(db, charges),
		Checkout:    services.NewCheckoutService(db, charges, publisher),
		Orders:      services.NewOrderService(db, publisher),
		Restaurants: services.NewRestaurantService(db),
		Addresses:   services.NewAddressService(db),
		Support:     services.NewSupportService(db),
		Dashboards:  services.NewDashboardService(db),
		Geocoder:    geocoding.NewClient(cfg.Geocoding.BaseURL, cache, cfg.Geocoding.CacheTTL),
		Uploader:    uploader,
		Hub:         hub,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(cfg.CORSOrigins, origin)
			},
		},
	}

	utils.UseJSONFieldNames()
	gin.SetMode(cfg.GinMode)
	server := gin.New()
	server.Use(gin.Recovery(), middlewares.RequestLogger())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", controllers.IdempotencyKeyHeader},
		ExposeHeaders:    []string{"Content-Length", controllers.ReplayedHeader, middlewares.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limiter := middlewares.NewIPRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst, 10*time.Minute)
	routes.Register(server, handler, cfg.JWTSecret, limiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server_started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// buildPublisher always feeds the websocket hub and adds the configured broker.
func buildPublisher(cfg *initializers.Config, hub *events.Hub) events.Publisher {
	publishers := events.Multi{hub}
	switch cfg.EventsBroker {
	case "kafka":
		publishers = append(publishers, events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic))
	case "rabbitmq":
		rabbit, err := events.DialRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Error().Err(err).Msg("rabbitmq unavailable, order events stay local")
			break
		}
		publishers = append(publishers, rabbit)
	}
	return publishers
}
