package usecase

import (
	"testing"

	"launchboard-service/internal/domain/entity"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func filterFixture() []entity.Launch {
	return []entity.Launch{
		launch("1", "FalconSat", "2006-03-24T22:30:00Z", false),
		launch("2", "Starlink-15 (v1.0)", "2020-10-24T15:31:00Z", false),
		launch("3", "Crew-1", "2020-11-16T00:27:00Z", false),
		launch("4", "Starlink Group 6-1", "2023-02-27T23:13:00Z", false),
		launch("5", "USSF-44", "2022-11-01T13:41:00Z", true),
		launch("6", "Crew-9", "2024-09-28T17:17:00Z", true),
	}
}

func ids(launches []entity.Launch) []string {
	out := make([]string, 0, len(launches))
	for _, l := range launches {
		out = append(out, l.ID)
	}
	return out
}

func TestApplyFilter_YearAndPastScenario(t *testing.T) {
	records := threeLaunches()

	got := ApplyFilter(records, entity.FilterCriteria{Year: "2023", Status: entity.LaunchStatusPast})

	if diff := cmp.Diff(records[:2], got); diff != "" {
		t.Errorf("ApplyFilter() mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyFilter_NeutralCriteriaIsIdentity(t *testing.T) {
	records := filterFixture()

	for _, c := range []entity.FilterCriteria{
		{},
		{Status: entity.LaunchStatusAll},
		{SearchText: "", Year: "", Status: "all"},
	} {
		got := ApplyFilter(records, c)
		if diff := cmp.Diff(records, got); diff != "" {
			t.Errorf("ApplyFilter(%+v) should be identity (-want +got):\n%s", c, diff)
		}
	}
}

func TestApplyFilter_IsIdempotent(t *testing.T) {
	records := filterFixture()

	for _, c := range []entity.FilterCriteria{
		{SearchText: "starlink"},
		{Year: "2020"},
		{Status: entity.LaunchStatusUpcoming},
		{SearchText: "crew", Status: entity.LaunchStatusPast},
		{SearchText: "crew", Year: "2024", Status: entity.LaunchStatusUpcoming},
		{SearchText: "nothing matches"},
	} {
		once := ApplyFilter(records, c)
		twice := ApplyFilter(once, c)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("ApplyFilter(%+v) not idempotent (-once +twice):\n%s", c, diff)
		}
	}
}

func TestApplyFilter_Predicates(t *testing.T) {
	tests := []struct {
		name     string
		criteria entity.FilterCriteria
		want     []string
	}{
		{"search is case insensitive", entity.FilterCriteria{SearchText: "STARLINK"}, []string{"2", "4"}},
		{"search matches substrings", entity.FilterCriteria{SearchText: "rew-"}, []string{"3", "6"}},
		{"year", entity.FilterCriteria{Year: "2020"}, []string{"2", "3"}},
		{"year with spaces", entity.FilterCriteria{Year: " 2022 "}, []string{"5"}},
		{"non numeric year is ignored", entity.FilterCriteria{Year: "twenty"}, []string{"1", "2", "3", "4", "5", "6"}},
		{"past", entity.FilterCriteria{Status: entity.LaunchStatusPast}, []string{"1", "2", "3", "4"}},
		{"upcoming", entity.FilterCriteria{Status: entity.LaunchStatusUpcoming}, []string{"5", "6"}},
		{"unknown status means all", entity.FilterCriteria{Status: "later"}, []string{"1", "2", "3", "4", "5", "6"}},
		{"all predicates combine", entity.FilterCriteria{SearchText: "crew", Year: "2020", Status: entity.LaunchStatusPast}, []string{"3"}},
		{"no match", entity.FilterCriteria{SearchText: "Apollo"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilter(filterFixture(), tt.criteria)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyFilter_YearUsesUTC(t *testing.T) {
	// 23:30 on New Year's Eve in New York is already next year in UTC
	l := launch("ny", "Late launch", "2023-12-31T23:30:00-05:00", false)

	assert.Len(t, ApplyFilter([]entity.Launch{l}, entity.FilterCriteria{Year: "2024"}), 1)
	assert.Empty(t, ApplyFilter([]entity.Launch{l}, entity.FilterCriteria{Year: "2023"}))
}

func TestApplyFilter_EmptyInput(t *testing.T) {
	assert.Empty(t, ApplyFilter(nil, entity.FilterCriteria{SearchText: "x"}))
	assert.Empty(t, ApplyFilter([]entity.Launch{}, entity.FilterCriteria{}))
}

func TestApplyFilter_DoesNotModifyInput(t *testing.T) {
	records := filterFixture()
	before := filterFixture()

	ApplyFilter(records, entity.FilterCriteria{SearchText: "crew", Status: entity.LaunchStatusUpcoming})

	if diff := cmp.Diff(before, records); diff != "" {
		t.Errorf("input modified (-before +after):\n%s", diff)
	}
}
