package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"bhavan/internal/config"
	"bhavan/internal/database"
	"bhavan/internal/gateway"
	"bhavan/internal/logger"
	"bhavan/internal/middleware"
	"bhavan/internal/modules/auth"
	"bhavan/internal/modules/booking"
	"bhavan/internal/modules/catalog"
	"bhavan/internal/modules/inventory"
	jwtsvc "bhavan/internal/pkg/jwt"
	"bhavan/internal/pkg/response"
	"bhavan/internal/repository"

	"net/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	gw := gateway.New(gateway.Config{
		BaseURL:   cfg.GatewayBaseURL,
		KeyID:     cfg.GatewayKeyID,
		KeySecret: cfg.GatewayKeySecret,
		Timeout:   cfg.GatewayTimeout,
	})

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	inventoryService := inventory.NewService(resourceRepo, bookingRepo)
	inventoryHandler := inventory.NewHandler(inventoryService)

	catalogService := catalog.NewService(packageRepo, resourceRepo, bookingRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo, packageRepo, resourceRepo, inventoryService, gw)
	bookingHandler := booking.NewHandler(bookingService)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(cfg.AppEnv))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		inventoryHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		// authenticated users
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			bookingHandler.RegisterRoutes(protected)
		}

		// venue staff
		admin := v1.Group("/")
		admin.Use(middleware.Auth(j), middleware.AdminOnly())
		{
			inventoryHandler.RegisterAdminRoutes(admin)
			catalogHandler.RegisterAdminRoutes(admin)
			bookingHandler.RegisterAdminRoutes(admin)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
