package spacex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"launchboard-service/internal/domain/entity"
	"launchboard-service/internal/domain/repository"
	"launchboard-service/pkg/logger"
	"launchboard-service/pkg/metrics"
)

// DefaultLaunchesURL is the public SpaceX v4 launches endpoint
const DefaultLaunchesURL = "https://api.spacexdata.com/v4/launches"

// LaunchSource fetches the full launch collection from the SpaceX API
type LaunchSource struct {
	client  *http.Client
	url     string
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewLaunchSource creates a new SpaceX launch source. A nil client uses a 30s timeout client.
func NewLaunchSource(client *http.Client, url string, logger logger.Logger, m *metrics.Metrics) repository.LaunchSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if url == "" {
		url = DefaultLaunchesURL
	}
	return &LaunchSource{
		client:  client,
		url:     url,
		logger:  logger,
		metrics: m,
	}
}

// apiLaunch is the subset of the v4 launch schema this service uses
type apiLaunch struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	DateUTC   string  `json:"date_utc"`
	Upcoming  bool    `json:"upcoming"`
	Success   *bool   `json:"success"`
	Details   *string `json:"details"`
	Rocket    string  `json:"rocket"`
	Launchpad string  `json:"launchpad"`
	Links     struct {
		Patch struct {
			Small *string `json:"small"`
			Large *string `json:"large"`
		} `json:"patch"`
	} `json:"links"`
}

// FetchLaunches fetches every launch and maps it onto entity.Launch
func (s *LaunchSource) FetchLaunches(ctx context.Context) ([]entity.Launch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", entity.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %v", entity.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: launch API returned status %d: %s", entity.ErrFetch, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", entity.ErrFetch, err)
	}

	launches := make([]entity.Launch, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	dropped := 0
	for i, msg := range raw {
		launch, err := decodeLaunch(msg)
		if err == nil {
			if _, dup := seen[launch.ID]; dup {
				err = fmt.Errorf("%w: duplicate id %q", entity.ErrMalformedRecord, launch.ID)
			}
		}
		if err != nil {
			dropped++
			s.logger.Debug("Dropping launch record", "index", i, "error", err)
			continue
		}
		seen[launch.ID] = struct{}{}
		launches = append(launches, launch)
	}

	if dropped > 0 && s.metrics != nil {
		s.metrics.MalformedDropped.Add(float64(dropped))
	}

	s.logger.Info("Fetched launches",
		"received", len(raw),
		"kept", len(launches),
		"dropped", dropped)

	return launches, nil
}

func decodeLaunch(msg json.RawMessage) (entity.Launch, error) {
	var a apiLaunch
	if err := json.Unmarshal(msg, &a); err != nil {
		return entity.Launch{}, fmt.Errorf("%w: %v", entity.ErrMalformedRecord, err)
	}
	return toEntity(a)
}

func toEntity(a apiLaunch) (entity.Launch, error) {
	if strings.TrimSpace(a.ID) == "" {
		return entity.Launch{}, fmt.Errorf("%w: missing id", entity.ErrMalformedRecord)
	}
	date, err := time.Parse(time.RFC3339, a.DateUTC)
	if err != nil {
		return entity.Launch{}, fmt.Errorf("%w: launch %s has invalid date_utc %q", entity.ErrMalformedRecord, a.ID, a.DateUTC)
	}

	launch := entity.Launch{
		ID:        a.ID,
		Name:      a.Name,
		DateUTC:   date.UTC(),
		Upcoming:  a.Upcoming,
		Success:   a.Success,
		Rocket:    a.Rocket,
		Launchpad: a.Launchpad,
	}
	if a.Details != nil {
		launch.Details = *a.Details
	}
	if a.Links.Patch.Small != nil {
		launch.PatchImageURL = *a.Links.Patch.Small
	}
	return launch, nil
}
