package concurrency

import (
	"context"
	"sync"
)

// Semaphore 信号量
type Semaphore struct {
	tickets chan struct{}
}

// NewSemaphore 创建信号量，capacity < 1 时按 1 处理
func NewSemaphore(capacity int) *Semaphore {
	return &Semaphore{
		tickets: make(chan struct{}, max(capacity, 1)),
	}
}

// Acquire 获取信号量，ctx 取消时返回其错误
func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case s.tickets <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release 释放信号量
func (s *Semaphore) Release() {
	<-s.tickets
}

// Capacity 信号量容量
func (s *Semaphore) Capacity() int {
	return cap(s.tickets)
}

// ConcurrencyLimiter 并发限制器
type ConcurrencyLimiter struct {
	semaphore *Semaphore
}

// NewConcurrencyLimiter 创建并发限制器
func NewConcurrencyLimiter(maxConcurrent int) *ConcurrencyLimiter {
	return &ConcurrencyLimiter{
		semaphore: NewSemaphore(maxConcurrent),
	}
}

// MaxConcurrent 最大并发数
func (cl *ConcurrencyLimiter) MaxConcurrent() int {
	return cl.semaphore.Capacity()
}

// Execute 在并发限制下执行
func (cl *ConcurrencyLimiter) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := cl.semaphore.Acquire(ctx); err != nil {
		return err
	}
	defer cl.semaphore.Release()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

// ExecuteBatch 批量执行，返回与 fns 顺序一致的错误列表
func (cl *ConcurrencyLimiter) ExecuteBatch(ctx context.Context, fns []func(ctx context.Context) error) []error {
	results := make([]error, len(fns))
	var wg sync.WaitGroup

	for i, fn := range fns {
		wg.Add(1)
		go func(index int, f func(ctx context.Context) error) {
			defer wg.Done()
			results[index] = cl.Execute(ctx, f)
		}(i, fn)
	}

	wg.Wait()
	return results
}
