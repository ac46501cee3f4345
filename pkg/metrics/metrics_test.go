package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeRegistersMetrics(t *testing.T) {
	srv := Serve("127.0.0.1:0", nil)
	defer srv.Close()

	SignalsEmitted.WithLabelValues("momentum", "buy").Inc()

	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range mfs {
		if mf.GetName() == "papertrade_signals_emitted_total" {
			found = true
			break
		}
	}
	assert.True(t, found, "papertrade_signals_emitted_total metric not found")
}

func TestObserveCycle(t *testing.T) {
	before := testutil.ToFloat64(CycleErrors.WithLabelValues("test-engine"))

	ObserveCycle("test-engine", time.Now(), nil)
	ObserveCycle("test-engine", time.Now(), errors.New("boom"))

	assert.Equal(t, before+1, testutil.ToFloat64(CycleErrors.WithLabelValues("test-engine")))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(CycleDuration, "papertrade_cycle_duration_seconds"), 1)
}
