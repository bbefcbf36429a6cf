package api

import (
	"encoding/json"
	"net/http"
	"time"

	"launchboard-service/internal/domain/entity"
	"launchboard-service/pkg/logger"
)

// launchResponse is a launch annotated with the caller's favorite state
type launchResponse struct {
	entity.Launch
	Favorite bool `json:"favorite"`
}

type launchListResponse struct {
	Status    entity.CacheStatus `json:"status"`
	FetchedAt *time.Time         `json:"fetchedAt,omitempty"`
	Total     int                `json:"total"`
	Count     int                `json:"count"`
	Error     string             `json:"error,omitempty"`
	Launches  []launchResponse   `json:"launches"`
}

type toggleResponse struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
	Error    string `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes v as the response body. The status line is already sent when
// encoding fails, so the failure is only logged.
func writeJSON(w http.ResponseWriter, log logger.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && log != nil {
		log.Debug("Failed to write response body", "status", status, "error", err)
	}
}

func writeError(w http.ResponseWriter, log logger.Logger, status int, msg string) {
	writeJSON(w, log, status, errorResponse{Error: msg})
}

func fetchedAtPtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
