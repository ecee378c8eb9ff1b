package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"remesa/internal/backend"
)

// HealthHandler reports liveness of the service and its dependencies.
type HealthHandler struct {
	backend *backend.Client
	redis   *redis.Client
}

func NewHealthHandler(be *backend.Client, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{backend: be, redis: rdb}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	backendStatus := "unavailable"
	if h.backend.Available(c.Context()) {
		backendStatus = "connected"
	}

	redisStatus := "connected"
	if h.redis == nil {
		redisStatus = "disabled"
	} else if err := h.redis.Ping(c.Context()).Err(); err != nil {
		redisStatus = "unavailable"
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"services": fiber.Map{
			"backend": backendStatus,
			"redis":   redisStatus,
		},
	})
}
