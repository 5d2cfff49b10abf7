package metrics

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// 指标名称
const (
	CaptchaGeneratedTotal = "captcha_generated_total"
	CaptchaErrorsTotal    = "captcha_errors_total"
	CaptchaBuildSeconds   = "captcha_build_seconds"
)

// 历史记录上限
const historyLimit = 100

// Collector 指标收集器
type Collector struct {
	metrics map[string]*Metric
	mu      sync.RWMutex
}

// Metric 指标
type Metric struct {
	Type      string            `json:"type"`
	Value     float64           `json:"value"`
	Labels    map[string]string `json:"labels,omitempty"`
	History   []float64         `json:"history,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// NewCollector 创建指标收集器
func NewCollector() *Collector {
	return &Collector{
		metrics: make(map[string]*Metric),
	}
}

// IncCounter 增加计数器
func (c *Collector) IncCounter(name string, labels map[string]string) {
	c.AddCounter(name, 1, labels)
}

// AddCounter 增加计数器值
func (c *Collector) AddCounter(name string, value float64, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := buildKey(name, labels)
	if metric, exists := c.metrics[key]; exists {
		metric.Value += value
		metric.Timestamp = time.Now().Unix()
		return
	}
	c.metrics[key] = &Metric{
		Type:      "counter",
		Value:     value,
		Labels:    copyLabels(labels),
		Timestamp: time.Now().Unix(),
	}
}

// SetGauge 设置仪表值
func (c *Collector) SetGauge(name string, value float64, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.metrics[buildKey(name, labels)] = &Metric{
		Type:      "gauge",
		Value:     value,
		Labels:    copyLabels(labels),
		Timestamp: time.Now().Unix(),
	}
}

// ObserveHistogram 观察直方图，Value 保存最近一次观测值
func (c *Collector) ObserveHistogram(name string, value float64, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := buildKey(name, labels)
	if metric, exists := c.metrics[key]; exists {
		metric.Value = value
		metric.History = append(metric.History, value)
		if len(metric.History) > historyLimit {
			metric.History = metric.History[1:]
		}
		metric.Timestamp = time.Now().Unix()
		return
	}
	c.metrics[key] = &Metric{
		Type:      "histogram",
		Value:     value,
		Labels:    copyLabels(labels),
		History:   []float64{value},
		Timestamp: time.Now().Unix(),
	}
}

// RecordGeneration 记录一次验证码生成
func (c *Collector) RecordGeneration(format string, seconds float64, err error) {
	labels := map[string]string{"format": format}
	if err != nil {
		c.IncCounter(CaptchaErrorsTotal, labels)
		return
	}
	c.IncCounter(CaptchaGeneratedTotal, labels)
	c.ObserveHistogram(CaptchaBuildSeconds, seconds, labels)
}

// GetMetrics 获取所有指标
func (c *Collector) GetMetrics() map[string]*Metric {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// 返回副本
	result := make(map[string]*Metric, len(c.metrics))
	for k, v := range c.metrics {
		m := *v
		m.History = append([]float64(nil), v.History...)
		result[k] = &m
	}
	return result
}

// GetMetric 获取单个指标
func (c *Collector) GetMetric(name string, labels map[string]string) *Metric {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.metrics[buildKey(name, labels)]
}

// Reset 重置指标
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = make(map[string]*Metric)
}

// buildKey 构建指标键，标签按键名排序
func buildKey(name string, labels map[string]string) string {
	if len(labels) == 0 {
		return name
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(name)
	for _, k := range keys {
		sb.WriteString(":")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(labels[k])
	}
	return sb.String()
}

func copyLabels(labels map[string]string) map[string]string {
	if len(labels) == 0 {
		return nil
	}
	out := make(map[string]string, len(labels))
	for k, v := range labels {
		out[k] = v
	}
	return out
}
