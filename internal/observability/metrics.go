package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics keeps in-process counters: request counts with accumulated latency
// per route/status, and error counts per domain error code.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]*routeStats
	errors   map[string]int64
}

type routeStats struct {
	count   int64
	latency time.Duration
}

// RouteStats is a point-in-time view of one route's counters.
type RouteStats struct {
	Count        int64
	TotalLatency time.Duration
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]*routeStats),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts a completed request and accumulates its latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := requestKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.requests[key]
	if stats == nil {
		stats = &routeStats{}
		m.requests[key] = stats
	}
	stats.count++
	stats.latency += duration
}

// RecordError counts a request that resolved to a domain error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[path+"|"+method+"|"+code]++
}

// RequestStats returns the counters for one route, zero-valued when unseen.
func (m *Metrics) RequestStats(path, method string, status int) RouteStats {
	if m == nil {
		return RouteStats{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := m.requests[requestKey(path, method, status)]
	if stats == nil {
		return RouteStats{}
	}
	return RouteStats{Count: stats.count, TotalLatency: stats.latency}
}

// ErrorCount returns how many requests resolved to the given error code.
func (m *Metrics) ErrorCount(path, method, code string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[path+"|"+method+"|"+code]
}

func requestKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
