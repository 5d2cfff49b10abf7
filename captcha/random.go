package captcha

import (
	"math/rand/v2"
	"sync"
)

// Source 随机数来源，驱动所有随机决策（字符、颜色、几何抖动、噪点）。
//
// Uniform 返回闭区间 [0, max] 内的均匀整数，max <= 0 时返回 0。
// Normal 返回标准正态分布样本。
// 批量生成会并发调用同一个 Source，实现需要并发安全。
type Source interface {
	Uniform(max int) int
	Normal() float64
}

// processSource 使用 math/rand/v2 的全局生成器，自动播种且并发安全。
type processSource struct{}

func (processSource) Uniform(max int) int {
	if max <= 0 {
		return 0
	}
	return rand.IntN(max + 1)
}

func (processSource) Normal() float64 {
	return rand.NormFloat64()
}

// DefaultSource 返回进程级随机源
func DefaultSource() Source {
	return processSource{}
}

// seededSource 固定种子的随机源，相同种子产生相同图片。
type seededSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource 创建可复现的随机源
func NewSeededSource(seed uint64) Source {
	return &seededSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededSource) Uniform(max int) int {
	if max <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(max + 1)
}

func (s *seededSource) Normal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.NormFloat64()
}

// SequenceSource 按顺序循环回放固定数值，用于确定性测试。
// Uniform 取下一个值对 max+1 取模，Normal 取下一个正态样本（为空时返回 0）。
type SequenceSource struct {
	mu      sync.Mutex
	values  []int
	normals []float64
	next    int
	nextN   int
}

// NewSequenceSource 创建回放 values 的随机源
func NewSequenceSource(values ...int) *SequenceSource {
	return &SequenceSource{values: values}
}

// WithNormals 设置 Normal 回放的样本
func (s *SequenceSource) WithNormals(normals ...float64) *SequenceSource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.normals = normals
	return s
}

func (s *SequenceSource) Uniform(max int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if max <= 0 || len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	if v < 0 {
		v = -v
	}
	return v % (max + 1)
}

func (s *SequenceSource) Normal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.normals) == 0 {
		return 0
	}
	v := s.normals[s.nextN%len(s.normals)]
	s.nextN++
	return v
}

// Between 返回闭区间 [min, max] 内的随机值；max < min 时返回 min。
func Between(src Source, min, max int) float64 {
	if max < min {
		return float64(min)
	}
	return float64(min + src.Uniform(max-min))
}
