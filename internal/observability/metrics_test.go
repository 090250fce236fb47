package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsAccumulateRequestLatency(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/tickets", "POST", 201, 30*time.Millisecond)
	m.RecordRequest("/tickets", "POST", 201, 20*time.Millisecond)
	m.RecordRequest("/tickets", "POST", 409, 5*time.Millisecond)

	stats := m.RequestStats("/tickets", "POST", 201)
	assert.Equal(t, int64(2), stats.Count)
	assert.Equal(t, 50*time.Millisecond, stats.TotalLatency)

	assert.Equal(t, int64(1), m.RequestStats("/tickets", "POST", 409).Count)
	assert.Zero(t, m.RequestStats("/tickets", "GET", 200).Count)
}

func TestMetricsErrorCounts(t *testing.T) {
	m := NewMetrics()

	m.RecordError("/duty/clock-in", "POST", "ALREADY_ACTIVE")
	m.RecordError("/duty/clock-in", "POST", "ALREADY_ACTIVE")

	assert.Equal(t, int64(2), m.ErrorCount("/duty/clock-in", "POST", "ALREADY_ACTIVE"))
	assert.Zero(t, m.ErrorCount("/duty/clock-in", "POST", "NOT_FOUND"))
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/x", "GET", 200, time.Millisecond)
	m.RecordError("/x", "GET", "NOT_FOUND")
	assert.Zero(t, m.RequestStats("/x", "GET", 200).Count)
	assert.Zero(t, m.ErrorCount("/x", "GET", "NOT_FOUND"))
}
