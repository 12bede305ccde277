package app

import (
	"recordshop-backend/internal/config"
	"recordshop-backend/internal/database"
	"recordshop-backend/internal/discogs"
	invsvc "recordshop-backend/internal/inventory"
	"recordshop-backend/internal/labels"
	"recordshop-backend/internal/middleware"

	healthh "recordshop-backend/internal/interfaces/handlers/health"
	inventoryh "recordshop-backend/internal/interfaces/handlers/inventory"
	labelh "recordshop-backend/internal/interfaces/handlers/labelinfo"
	synch "recordshop-backend/internal/interfaces/handlers/syncjobs"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration, and the connections it serves from.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, *discogs.SyncService, error) {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, nil, err
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		rdb = redis.NewClient(opts)
	}

	syncService := &discogs.SyncService{
		DB: db,
		Client: &discogs.Client{
			Token:          cfg.DiscogsToken,
			SellerUsername: cfg.DiscogsSellerUsername,
			UserAgent:      cfg.DiscogsUserAgent,
		},
		Redis:  rdb,
		Seller: cfg.DiscogsSellerUsername,
	}
	labelService := &labels.Service{DB: db}
	if cfg.GeminiAPIKey != "" {
		labelService.Generator = &labels.GeminiClient{APIKey: cfg.GeminiAPIKey}
	}

	app := Router(db, rdb, syncService, labelService, middleware.CORSConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})
	return app, db, rdb, syncService, nil
}

// Router wires middleware and routes onto a Fiber app. Split out of CreateApp
// so tests can mount the routes over their own connections.
func Router(db *gorm.DB, rdb *redis.Client, syncService *discogs.SyncService, labelService *labels.Service, corsCfg middleware.CORSConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	// CORS (before everything else)
	app.Use(middleware.CORS(corsCfg))
	app.Use(middleware.RequestID())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.AccessLogger(db))

	inventoryHandlers := &inventoryh.Handlers{Service: &invsvc.Service{DB: db}}
	syncHandlers := &synch.Handlers{Service: syncService}
	labelHandlers := &labelh.Handlers{Service: labelService}
	healthHandlers := &healthh.Handlers{DB: db, Redis: rdb}

	app.Get("/health", healthHandlers.Health)

	api := app.Group("/api")
	api.Get("/data", inventoryHandlers.GetData)
	api.Get("/data/:listing_id", inventoryHandlers.GetItem)
	api.Get("/search", inventoryHandlers.Search)
	api.Post("/sync", syncHandlers.TriggerSync)
	api.Get("/sync/status", syncHandlers.SyncStatus)
	api.Get("/labels/:label_name", labelHandlers.GetOverview)

	return app
}
