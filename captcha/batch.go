package captcha

import (
	"context"

	"github.com/leeforge/rucaptcha/concurrency"
	apperrors "github.com/leeforge/rucaptcha/errors"
)

// GenerateBatch 并发生成 n 个验证码，结果顺序与提交顺序一致。
// 任一构建失败或 ctx 取消时返回第一个错误。
func GenerateBatch(ctx context.Context, b Builder, n, parallel int) ([]*Captcha, error) {
	if n < 0 {
		return nil, apperrors.NewInvalidConfiguration("count", n, "must not be negative")
	}
	if n == 0 {
		return []*Captcha{}, nil
	}
	if b.source == nil {
		b.source = DefaultSource()
	}

	results := make([]*Captcha, n)
	fns := make([]func(ctx context.Context) error, n)
	for i := range fns {
		fns[i] = func(context.Context) error {
			c, err := b.Build()
			if err != nil {
				return err
			}
			results[i] = c
			return nil
		}
	}

	limiter := concurrency.NewConcurrencyLimiter(parallel)
	for _, err := range limiter.ExecuteBatch(ctx, fns) {
		if err == nil {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, apperrors.NewCanceled(ctxErr)
		}
		return nil, err
	}
	return results, nil
}
