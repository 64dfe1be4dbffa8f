package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoOpMetrics(t *testing.T) {
	m := NewNoOpMetrics()

	// All operations are safe no-ops.
	m.Counter("ops", 1, nil)
	m.Gauge("depth", 3, map[string]string{"queue": "a"})
	m.Timer("latency", 0.25, nil)
}

func TestInMemoryMetrics_Counter(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Counter("user_create", 1, nil)
	m.Counter("user_create", 1, nil)
	assert.Equal(t, 2.0, m.CounterValue("user_create", nil))

	labels := map[string]string{"result": "conflict"}
	m.Counter("user_create", 1, labels)
	assert.Equal(t, 1.0, m.CounterValue("user_create", labels))
	assert.Equal(t, 2.0, m.CounterValue("user_create", nil))
}

func TestInMemoryMetrics_Gauge(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Gauge("open_conns", 4, nil)
	m.Gauge("open_conns", 2, nil)
	assert.Equal(t, 2.0, m.GaugeValue("open_conns", nil))
}

func TestInMemoryMetrics_Timer(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Timer("user_get", 0.01, nil)
	m.Timer("user_get", 0.02, nil)
	assert.Equal(t, 2, m.TimerCount("user_get", nil))
	assert.Equal(t, 0, m.TimerCount("user_get", map[string]string{"result": "ok"}))
}

func TestInMemoryMetrics_LabelOrderIndependent(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Counter("ops", 1, map[string]string{"a": "1", "b": "2"})
	m.Counter("ops", 1, map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, 2.0, m.CounterValue("ops", map[string]string{"a": "1", "b": "2"}))
}

func TestInMemoryMetrics_Concurrent(t *testing.T) {
	m := NewInMemoryMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Counter("ops", 1, nil)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1600.0, m.CounterValue("ops", nil))
}
