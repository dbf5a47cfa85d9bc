package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lecturer-admin-api/pkg/database"
	appErrors "github.com/noah-isme/lecturer-admin-api/pkg/errors"
)

const defaultStoreTimeout = 5 * time.Second

// storeGuard bounds every store call with a timeout, classifies driver failures into
// application error kinds and records timings. Reads retry once on timeout or transient
// failure; writes never retry.
type storeGuard struct {
	timeout time.Duration
	metrics *MetricsService
	logger  *zap.Logger
}

func newStoreGuard(timeout time.Duration, metrics *MetricsService, logger *zap.Logger) storeGuard {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return storeGuard{timeout: timeout, metrics: metrics, logger: logger}
}

func (g storeGuard) read(ctx context.Context, label string, fn func(context.Context) error) error {
	err := g.call(ctx, label, fn)
	if err == nil || !appErrors.IsRetryable(err) || ctx.Err() != nil {
		return err
	}
	g.logger.Warn("retrying store read", zap.String("query", label), zap.Error(err))
	return g.call(ctx, label, fn)
}

func (g storeGuard) write(ctx context.Context, label string, fn func(context.Context) error) error {
	return g.call(ctx, label, fn)
}

func (g storeGuard) call(ctx context.Context, label string, fn func(context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	err := fn(callCtx)
	g.metrics.ObserveDBQuery(label, time.Since(start))
	if err == nil {
		return nil
	}
	classified := database.Classify(err)
	g.metrics.RecordStoreError(label, appErrors.FromError(classified).Code)
	return classified
}

// storeFailure keeps classified error kinds and wraps anything else as an internal failure.
func storeFailure(err error, message string) error {
	if err == nil {
		return nil
	}
	var known *appErrors.Error
	if errors.As(err, &known) {
		return known
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// notFoundOr maps a missing record onto a NotFound error named after the entity.
func notFoundOr(err error, notFoundMessage, failureMessage string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, appErrors.ErrNotFound) {
		return appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, notFoundMessage)
	}
	return storeFailure(err, failureMessage)
}
