package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsWith_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsWith(reg, "launchboard")

	m.LaunchFetches.WithLabelValues("success").Inc()
	m.FavoriteToggles.WithLabelValues("added").Add(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LaunchFetches.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FavoriteToggles.WithLabelValues("added")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "launchboard_launch_fetches_total")
	assert.Contains(t, names, "launchboard_favorite_toggles_total")
}

func TestNewMetricsWith_NilRegistererDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetricsWith(nil, "a")
		NewMetricsWith(nil, "a")
	})
}
