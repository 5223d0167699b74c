package service

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"

	"enlistment/backend/config"
	"enlistment/backend/internal/domain"
	pkgerrors "enlistment/backend/pkg/errors"
)

// RetryPolicy 版本冲突重试策略
type RetryPolicy struct {
	MaxAttempts int           // 含首次执行
	Initial     time.Duration // 0 表示立即重试
	Max         time.Duration
}

func newRetryPolicy(cfg *config.EnlistConfig) RetryPolicy {
	p := RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		Initial:     cfg.RetryBackoff,
		Max:         cfg.MaxRetryBackoff,
	}
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 10
	}
	return p
}

func (p RetryPolicy) newBackOff() backoff.BackOff {
	if p.Initial <= 0 {
		return &backoff.ZeroBackOff{}
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.Initial
	b.MaxInterval = max(p.Max, p.Initial)
	b.RandomizationFactor = 0.5
	return b
}

// retryOnConflict 执行 op：仅 ErrOptimisticLock 触发重试（丢弃本次内存状态，由 op 重新加载），
// 其余错误立即返回。次数耗尽返回 *domain.ConcurrencyExhaustedError。
// 返回值 attempts 为实际执行次数。
func retryOnConflict[T any](
	ctx context.Context,
	policy RetryPolicy,
	op func(attempt int) (T, error),
	onConflict func(attempt int, next time.Duration),
) (T, int, error) {
	attempts := 0
	result, err := backoff.Retry(ctx, func() (T, error) {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, backoff.Permanent(err)
		}
		attempts++
		res, err := op(attempts)
		if err != nil && !errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return res, backoff.Permanent(err)
		}
		return res, err
	},
		backoff.WithBackOff(policy.newBackOff()),
		backoff.WithMaxTries(uint(policy.MaxAttempts)),
		backoff.WithNotify(func(_ error, next time.Duration) {
			if onConflict != nil {
				onConflict(attempts, next)
			}
		}),
	)
	if errors.Is(err, pkgerrors.ErrOptimisticLock) {
		var zero T
		return zero, attempts, &domain.ConcurrencyExhaustedError{Attempts: attempts, Err: err}
	}
	return result, attempts, err
}
