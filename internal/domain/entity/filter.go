package entity

import "strings"

// LaunchStatus selects launches by whether they have happened yet.
type LaunchStatus string

const (
	LaunchStatusAll      LaunchStatus = "all"
	LaunchStatusPast     LaunchStatus = "past"
	LaunchStatusUpcoming LaunchStatus = "upcoming"
)

// ParseLaunchStatus maps a user supplied value onto a LaunchStatus.
// Unknown or empty values select all launches.
func ParseLaunchStatus(s string) LaunchStatus {
	switch LaunchStatus(strings.ToLower(strings.TrimSpace(s))) {
	case LaunchStatusPast:
		return LaunchStatusPast
	case LaunchStatusUpcoming:
		return LaunchStatusUpcoming
	default:
		return LaunchStatusAll
	}
}

// FilterCriteria narrows a launch collection. The zero value matches everything.
type FilterCriteria struct {
	SearchText string
	Year       string
	Status     LaunchStatus
}
