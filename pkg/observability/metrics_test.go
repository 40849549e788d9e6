package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveTurn(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveTurn("claim_count", false, 5*time.Millisecond)
	m.ObserveTurn("unhandled", true, 120*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.turns.WithLabelValues("claim_count")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.turns.WithLabelValues("unhandled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallback))
}
