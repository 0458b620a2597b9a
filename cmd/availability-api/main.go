package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/slotgate/availability-api/api/swagger"
	"github.com/slotgate/availability-api/internal/calcom"
	"github.com/slotgate/availability-api/internal/handler"
	"github.com/slotgate/availability-api/internal/middleware"
	"github.com/slotgate/availability-api/internal/repository"
	"github.com/slotgate/availability-api/internal/service"
	"github.com/slotgate/availability-api/pkg/cache"
	"github.com/slotgate/availability-api/pkg/config"
	"github.com/slotgate/availability-api/pkg/logger"
	corsmiddleware "github.com/slotgate/availability-api/pkg/middleware/cors"
	reqidmiddleware "github.com/slotgate/availability-api/pkg/middleware/requestid"
	"github.com/slotgate/availability-api/pkg/validation"
)

// @title Availability API
// @version 1.0.0
// @description Free-slot availability service in front of the Cal.com booking platform
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	validation.Register()

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, lookup caching disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.EventTypeTTL, logr, cfg.Cache.Enabled)

	client := calcom.NewClient(cfg.CalCom, logr, calcom.WithObserver(metricsSvc))

	availabilitySvc := service.NewAvailabilityService(
		client, client, client,
		cfg.Availability.TimezoneOffsetMinutes,
		cfg.Availability.MaxRangeDays,
		logr,
	)
	bookingSvc := service.NewBookingService(client, client, client, availabilitySvc, cacheSvc, logr)

	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Scrape)

	api := r.Group(cfg.APIPrefix)
	api.GET("/slots", availabilityHandler.List)
	api.GET("/slots/range", availabilityHandler.Range)
	api.GET("/free-schedule", availabilityHandler.FreeSchedule)
	if cfg.Bookings.Enabled {
		api.GET("/event-types", bookingHandler.ListEventTypes)
		api.POST("/bookings", bookingHandler.Create)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
