// Package main is the entry point for the wizard session service.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"

	"remesa/internal/backend"
	"remesa/internal/config"
	"remesa/internal/metrics"
	"remesa/internal/minikit"
	"remesa/internal/routes"
	"remesa/internal/services/auth"
	"remesa/internal/store"
	"remesa/pkg/logger"
)

func main() {
	config.LoadEnv()
	logger.Init(config.GetEnv("ENV", "development"))
	defer logger.Sync()

	backendClient := backend.New(backend.Config{
		BaseURL:   config.GetEnv("BACKEND_BASE_URL", "http://localhost:8080/api/v1"),
		AuthToken: config.GetEnv("BACKEND_AUTH_TOKEN", ""),
		Timeout:   config.GetDurationEnv("BACKEND_TIMEOUT", 30*time.Second),
	})

	sdk := minikit.NewBridge(
		config.GetEnv("WALLET_BRIDGE_URL", "http://localhost:7654"),
		config.GetDurationEnv("WALLET_BRIDGE_TIMEOUT", 0),
	)

	rdb := store.NewRedisClient(&store.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, reference cache will not persist", zap.Error(err))
		rdb = nil
	}
	cancel()

	app := fiber.New(fiber.Config{
		AppName:               "remesa",
		DisableStartupMessage: config.IsProduction(),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// The wallet handshake is expensive; throttle session creation per IP.
	app.Use("/v1/session", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	sessions := routes.SetupRoutes(app, routes.Deps{
		Backend:    backendClient,
		SDK:        sdk,
		Redis:      rdb,
		Metrics:    metrics.NewPrometheus(),
		AuthConfig: auth.Config{},
		SessionTTL: config.GetDurationEnv("SESSION_TTL", 0),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		sessions.Stop()
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = app.Shutdown()
	}()

	if err := app.Listen(":" + config.GetEnv("PORT", "3000")); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
