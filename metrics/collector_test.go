package metrics

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildKeyIsOrderIndependent(t *testing.T) {
	a := buildKey("m", map[string]string{"a": "1", "b": "2"})
	b := buildKey("m", map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, a, b)
	assert.Equal(t, "m:a=1:b=2", a)
	assert.Equal(t, "m", buildKey("m", nil))
}

func TestCounter(t *testing.T) {
	c := NewCollector()
	labels := map[string]string{"format": "png"}

	c.IncCounter("total", labels)
	c.IncCounter("total", labels)
	c.AddCounter("total", 3, labels)

	m := c.GetMetric("total", labels)
	require.NotNil(t, m)
	assert.Equal(t, "counter", m.Type)
	assert.Equal(t, 5.0, m.Value)
}

func TestGaugeOverwrites(t *testing.T) {
	c := NewCollector()
	c.SetGauge("g", 1, nil)
	c.SetGauge("g", 7, nil)
	assert.Equal(t, 7.0, c.GetMetric("g", nil).Value)
}

func TestHistogramHistoryIsBounded(t *testing.T) {
	c := NewCollector()
	for i := 0; i < historyLimit+20; i++ {
		c.ObserveHistogram("h", float64(i), nil)
	}

	m := c.GetMetric("h", nil)
	require.NotNil(t, m)
	assert.Len(t, m.History, historyLimit)
	assert.Equal(t, float64(historyLimit+19), m.Value)
	assert.Equal(t, 20.0, m.History[0])
}

func TestRecordGeneration(t *testing.T) {
	c := NewCollector()
	c.RecordGeneration("webp", 0.01, nil)
	c.RecordGeneration("webp", 0.02, nil)
	c.RecordGeneration("webp", 0, errors.New("boom"))

	labels := map[string]string{"format": "webp"}
	assert.Equal(t, 2.0, c.GetMetric(CaptchaGeneratedTotal, labels).Value)
	assert.Equal(t, 1.0, c.GetMetric(CaptchaErrorsTotal, labels).Value)
	assert.Len(t, c.GetMetric(CaptchaBuildSeconds, labels).History, 2)
}

func TestGetMetricsReturnsCopies(t *testing.T) {
	c := NewCollector()
	c.IncCounter("x", nil)

	snapshot := c.GetMetrics()
	snapshot["x"].Value = 100
	assert.Equal(t, 1.0, c.GetMetric("x", nil).Value)

	c.Reset()
	assert.Empty(t, c.GetMetrics())
}

func TestConcurrentCounters(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.IncCounter("n", map[string]string{"format": "png"})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50.0, c.GetMetric("n", map[string]string{"format": "png"}).Value)
}
