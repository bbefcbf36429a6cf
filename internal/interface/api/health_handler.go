package api

import (
	"context"
	"net/http"
	"time"

	"launchboard-service/internal/domain/entity"
	"launchboard-service/internal/domain/repository"
	"launchboard-service/internal/usecase"
	"launchboard-service/pkg/logger"
)

// HealthHandler reports storage reachability and cache state
type HealthHandler struct {
	Storage repository.BlobRepository
	Service *usecase.LaunchService
	Version string
	Logger  logger.Logger
}

type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// Check handles GET /health. A failed launch fetch degrades the report but only
// an unreachable favorites store makes it unhealthy.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := make(map[string]string)
	status := "ok"
	code := http.StatusOK

	if h.Storage != nil {
		if err := h.Storage.Ping(ctx); err != nil {
			checks["storage"] = "error: " + err.Error()
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		} else {
			checks["storage"] = "ok"
		}
	}

	if h.Service != nil {
		entry := h.Service.GetLaunches()
		checks["launchCache"] = string(entry.Status)
		if entry.Status == entity.CacheStatusError && status == "ok" {
			status = "degraded"
		}
	}

	writeJSON(w, h.Logger, code, healthResponse{Status: status, Version: h.Version, Checks: checks})
}
