package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db  *mongo.Database
	rdb *redis.Client
}

func NewHealthHandler(db *mongo.Database, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

// Liveness reports whether the process is alive.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness reports whether the backing stores answer. Each dependency is
// pinged with a short timeout so a hung store cannot stall the probe.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx := c.Request().Context()
	deps := map[string]string{"mongo": "ok", "redis": "ok"}
	healthy := true

	mongoCtx, cancelMongo := context.WithTimeout(ctx, healthCheckTimeout)
	if err := h.db.Client().Ping(mongoCtx, nil); err != nil {
		deps["mongo"] = err.Error()
		healthy = false
	}
	cancelMongo()

	redisCtx, cancelRedis := context.WithTimeout(ctx, healthCheckTimeout)
	if err := h.rdb.Ping(redisCtx).Err(); err != nil {
		deps["redis"] = err.Error()
		healthy = false
	}
	cancelRedis()

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{"status": statusWord(healthy), "dependencies": deps})
}

func statusWord(healthy bool) string {
	if healthy {
		return "ready"
	}
	return "degraded"
}
