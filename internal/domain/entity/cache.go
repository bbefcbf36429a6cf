package entity

import "time"

// CacheStatus is the lifecycle state of the launch cache.
type CacheStatus string

const (
	CacheStatusIdle    CacheStatus = "idle"
	CacheStatusLoading CacheStatus = "loading"
	CacheStatusReady   CacheStatus = "ready"
	CacheStatusError   CacheStatus = "error"
)

// CacheEntry is a point-in-time view of the launch cache.
// Data is nil and FetchedAt is zero until the first successful fetch.
type CacheEntry struct {
	Data      []Launch    `json:"data"`
	FetchedAt time.Time   `json:"fetchedAt"`
	Status    CacheStatus `json:"status"`
	Err       error       `json:"-"` // last fetch error, set while Status is error
}

// HasData reports whether a successful fetch has ever populated the entry.
func (e CacheEntry) HasData() bool {
	return !e.FetchedAt.IsZero()
}

// IsStale reports whether the entry must be refetched at now.
func (e CacheEntry) IsStale(now time.Time, staleTime time.Duration) bool {
	if !e.HasData() {
		return true
	}
	return now.Sub(e.FetchedAt) > staleTime
}
