package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kekambas-blog/internal/bootstrap"
)

type HealthHandler struct {
	app *bootstrap.App
}

type dependencyStatus struct {
	OK        bool   `json:"ok"`
	LatencyMS int64  `json:"latency_ms"`
	Message   string `json:"message,omitempty"`
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	pings := map[string]func(context.Context) error{
		"mysql": func(ctx context.Context) error {
			sqlDB, err := h.app.MySQL.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return h.app.Redis.Ping(ctx).Err()
		},
		"rabbitmq": func(context.Context) error {
			if h.app.MQConn == nil || h.app.MQConn.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		},
	}

	allOK := true
	deps := gin.H{}
	for name, ping := range pings {
		started := time.Now()
		err := ping(ctx)
		status := dependencyStatus{
			OK:        err == nil,
			LatencyMS: time.Since(started).Milliseconds(),
		}
		if err != nil {
			status.Message = err.Error()
			allOK = false
		}
		deps[name] = status
	}

	statusCode := http.StatusOK
	if !allOK {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"app":          h.app.Config.App.Name,
		"env":          h.app.Config.App.Env,
		"uptime_sec":   int(time.Since(h.app.StartedAt).Seconds()),
		"dependencies": deps,
	})
}
