// Package metrics provides metrics implementations for the mcloud OAuth2
// server core.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Chenxicheng/mcloud-oauth2-server/pkg/interfaces"
)

// NoOpMetrics is a no-operation metrics implementation
type NoOpMetrics struct{}

// Counter increments a counter metric
func (m *NoOpMetrics) Counter(name string, value float64, labels map[string]string) {}

// Gauge sets a gauge metric
func (m *NoOpMetrics) Gauge(name string, value float64, labels map[string]string) {}

// Timer records an operation duration in seconds
func (m *NoOpMetrics) Timer(name string, seconds float64, labels map[string]string) {}

// NewNoOpMetrics creates a new no-op metrics implementation
func NewNoOpMetrics() interfaces.Metrics {
	return &NoOpMetrics{}
}

// InMemoryMetrics accumulates metrics in process memory. It backs tests and
// small deployments that scrape state over an admin surface.
type InMemoryMetrics struct {
	mu       sync.RWMutex
	counters map[string]float64
	gauges   map[string]float64
	timers   map[string][]float64
}

// NewInMemoryMetrics creates an in-memory metrics recorder
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		counters: make(map[string]float64),
		gauges:   make(map[string]float64),
		timers:   make(map[string][]float64),
	}
}

// NewTestMetrics creates a metrics implementation for testing
func NewTestMetrics() *InMemoryMetrics {
	return NewInMemoryMetrics()
}

// Counter increments a counter metric
func (m *InMemoryMetrics) Counter(name string, value float64, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[key(name, labels)] += value
}

// Gauge sets a gauge metric
func (m *InMemoryMetrics) Gauge(name string, value float64, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[key(name, labels)] = value
}

// Timer records an operation duration in seconds
func (m *InMemoryMetrics) Timer(name string, seconds float64, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(name, labels)
	m.timers[k] = append(m.timers[k], seconds)
}

// CounterValue returns the accumulated value for a counter
func (m *InMemoryMetrics) CounterValue(name string, labels map[string]string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[key(name, labels)]
}

// GaugeValue returns the last value set for a gauge
func (m *InMemoryMetrics) GaugeValue(name string, labels map[string]string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gauges[key(name, labels)]
}

// TimerCount returns how many durations were recorded for a timer
func (m *InMemoryMetrics) TimerCount(name string, labels map[string]string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.timers[key(name, labels)])
}

// key flattens a metric name and its labels into a stable map key.
func key(name string, labels map[string]string) string {
	if len(labels) == 0 {
		return name
	}
	parts := make([]string, 0, len(labels))
	for k, v := range labels {
		parts = append(parts, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(parts)
	return name + "{" + strings.Join(parts, ",") + "}"
}

var _ interfaces.Metrics = (*NoOpMetrics)(nil)
var _ interfaces.Metrics = (*InMemoryMetrics)(nil)
