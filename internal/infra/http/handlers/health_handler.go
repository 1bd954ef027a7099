package handlers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/sensibot/crmsync/internal/usecase"
)

type HealthHandler struct {
	Cursor    usecase.CursorStore
	RabbitMQ  *amqp091.Connection
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(cursor usecase.CursorStore, rabbitMQ *amqp091.Connection) *HealthHandler {
	return &HealthHandler{
		Cursor:    cursor,
		RabbitMQ:  rabbitMQ,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	// Check cursor store
	if h.Cursor != nil {
		if _, err := h.Cursor.Load(r.Context()); err != nil {
			deps["cursor"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["cursor"] = "healthy"
		}
	} else {
		deps["cursor"] = "not configured"
	}

	// Check RabbitMQ
	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	// Check Sensibot API
	if os.Getenv("SENSIBOT_API_TOKEN") != "" {
		deps["sensibot"] = "configured"
	} else {
		deps["sensibot"] = "not configured"
	}

	// Determine overall status
	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "configured" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	uptime := time.Since(h.StartTime).Round(time.Second).String()

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       uptime,
		Dependencies: deps,
	}

	if status == "degraded" {
		writeJSON(w, http.StatusServiceUnavailable, response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}
