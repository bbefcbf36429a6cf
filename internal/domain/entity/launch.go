// internal/domain/entity/launch.go
package entity

import (
	"time"
)

// Launch is a single launch record as returned by the remote launch source.
// Values are treated as immutable once fetched.
type Launch struct {
	ID            string    `json:"id" bson:"id"`
	Name          string    `json:"name" bson:"name"`
	DateUTC       time.Time `json:"date_utc" bson:"dateUtc"`
	Upcoming      bool      `json:"upcoming" bson:"upcoming"`
	Success       *bool     `json:"success" bson:"success,omitempty"` // nil when upcoming or unrecorded
	Details       string    `json:"details,omitempty" bson:"details,omitempty"`
	Rocket        string    `json:"rocket" bson:"rocket"`
	Launchpad     string    `json:"launchpad" bson:"launchpad"`
	PatchImageURL string    `json:"patch_image_url,omitempty" bson:"patchImageUrl,omitempty"`
}

// Year returns the calendar year of the launch date in UTC.
func (l Launch) Year() int {
	return l.DateUTC.UTC().Year()
}

// Clone returns a copy of the launch that shares no pointers with the original.
func (l Launch) Clone() Launch {
	c := l
	if l.Success != nil {
		s := *l.Success
		c.Success = &s
	}
	return c
}
