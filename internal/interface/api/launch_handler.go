package api

import (
	"errors"
	"net/http"

	"launchboard-service/internal/domain/entity"
	"launchboard-service/internal/usecase"
	"launchboard-service/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// LaunchHandler serves launches and favorites over HTTP
type LaunchHandler struct {
	service *usecase.LaunchService
	logger  logger.Logger
}

// NewLaunchHandler creates a new launch handler
func NewLaunchHandler(service *usecase.LaunchService, logger logger.Logger) *LaunchHandler {
	return &LaunchHandler{
		service: service,
		logger:  logger,
	}
}

// ListLaunches handles GET /launches?search=&year=&status=
func (h *LaunchHandler) ListLaunches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := entity.FilterCriteria{
		SearchText: q.Get("search"),
		Year:       q.Get("year"),
		Status:     entity.ParseLaunchStatus(q.Get("status")),
	}

	res, err := h.service.Search(r.Context(), criteria)
	if err != nil {
		h.logger.Error("Failed to list launches", "error", err)
		writeError(w, h.logger, statusForError(err), err.Error())
		return
	}

	body := launchListResponse{
		Status:    res.Status,
		FetchedAt: fetchedAtPtr(res.FetchedAt),
		Total:     res.Total,
		Count:     len(res.Launches),
		Launches:  make([]launchResponse, 0, len(res.Launches)),
	}
	if res.Err != nil {
		body.Error = res.Err.Error()
	}
	for _, l := range res.Launches {
		body.Launches = append(body.Launches, launchResponse{Launch: l, Favorite: res.Favorite[l.ID]})
	}
	writeJSON(w, h.logger, http.StatusOK, body)
}

// GetLaunch handles GET /launches/{id}
func (h *LaunchHandler) GetLaunch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	l, err := h.service.GetLaunch(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, statusForError(err), err.Error())
		return
	}
	writeJSON(w, h.logger, http.StatusOK, launchResponse{Launch: l, Favorite: h.service.IsFavorite(l.ID)})
}

// RefreshLaunches handles POST /launches/refresh
func (h *LaunchHandler) RefreshLaunches(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.ForceRefresh(r.Context())
	body := launchListResponse{
		Status:    entry.Status,
		FetchedAt: fetchedAtPtr(entry.FetchedAt),
		Total:     len(entry.Data),
		Count:     len(entry.Data),
		Launches:  []launchResponse{},
	}
	if err != nil {
		body.Error = err.Error()
		writeJSON(w, h.logger, http.StatusBadGateway, body)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, body)
}

// ListFavorites handles GET /favorites
func (h *LaunchHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites := h.service.Favorites()
	out := make([]launchResponse, 0, len(favorites))
	for _, l := range favorites {
		out = append(out, launchResponse{Launch: l, Favorite: true})
	}
	writeJSON(w, h.logger, http.StatusOK, out)
}

// ToggleFavorite handles POST /favorites/{id}/toggle.
// A storage failure still reports the new in-memory state so the client can retry.
func (h *LaunchHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	favorite, _, err := h.service.ToggleByID(r.Context(), id)
	if err != nil && !errors.Is(err, entity.ErrStorageWrite) {
		writeError(w, h.logger, statusForError(err), err.Error())
		return
	}

	body := toggleResponse{ID: id, Favorite: favorite}
	if err != nil {
		h.logger.Warn("Favorite toggled but not persisted", "launchID", id, "error", err)
		body.Error = err.Error()
		writeJSON(w, h.logger, http.StatusInternalServerError, body)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, body)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, entity.ErrLaunchNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrMalformedRecord):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
