package usecase

import (
	"strconv"
	"strings"

	"launchboard-service/internal/domain/entity"
)

// ApplyFilter returns the launches matching every constraint in criteria, in input order.
// It never modifies records. Neutral criteria return an element-for-element copy of records.
//
//   - SearchText: case-insensitive substring of the launch name.
//   - Year: UTC calendar year of the launch date. Empty or non-numeric means no constraint.
//   - Status: past keeps launches that are not upcoming, upcoming keeps upcoming ones.
func ApplyFilter(records []entity.Launch, criteria entity.FilterCriteria) []entity.Launch {
	search := strings.ToLower(criteria.SearchText)
	year, hasYear := parseYear(criteria.Year)
	status := entity.ParseLaunchStatus(string(criteria.Status))

	out := make([]entity.Launch, 0, len(records))
	for _, l := range records {
		if search != "" && !strings.Contains(strings.ToLower(l.Name), search) {
			continue
		}
		if hasYear && l.Year() != year {
			continue
		}
		if !matchesStatus(l, status) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return y, true
}

func matchesStatus(l entity.Launch, status entity.LaunchStatus) bool {
	switch status {
	case entity.LaunchStatusPast:
		return !l.Upcoming
	case entity.LaunchStatusUpcoming:
		return l.Upcoming
	default:
		return true
	}
}
