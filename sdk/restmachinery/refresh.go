package restmachinery

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/pkg/errors"
	"github.com/todayseafood/seafood/sdk/meta"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const refreshKey = "refresh"

// RefreshAccessToken exchanges the refresh token cookie for a new access
// token without waiting for a request to fail with 401 first. It follows the
// same protocol, and returns the same errors, as the automatic refresh.
func (b *BaseClient) RefreshAccessToken(ctx context.Context) error {
	return b.refreshAccessToken(ctx, nil)
}

// refreshAccessToken exchanges the refresh token cookie for a new access
// token. Concurrent callers share a single in-flight refresh. On success the
// new token is already in the token store when this returns.
//
// The shared refresh runs detached from ctx, bounded by RefreshTimeout, so a
// caller that gives up does not fail the others waiting on it. A caller whose
// own ctx is done stops waiting and gets *meta.ErrRefreshFailed wrapping
// ctx.Err().
//
// If the API server rejects the refresh with 401 or 403, the access token is
// cleared, OnSessionExpired is invoked and *meta.ErrSessionExpired is
// returned. Any other failure is re-attempted with exponential backoff; if
// every attempt fails, *meta.ErrRefreshFailed is returned.
func (b *BaseClient) refreshAccessToken(
	ctx context.Context,
	original *meta.APIError,
) error {
	ch := b.refreshGroup.DoChan(refreshKey, func() (interface{}, error) {
		refreshCtx, cancel := context.WithTimeout(
			context.WithoutCancel(ctx),
			b.RefreshTimeout,
		)
		defer cancel()
		return nil, b.doRefresh(refreshCtx)
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return &meta.ErrRefreshFailed{
			Cause:    ctx.Err(),
			Original: original,
		}
	}
	if res.Err == nil {
		return nil
	}
	var sessionExpired *meta.ErrSessionExpired
	if errors.As(res.Err, &sessionExpired) {
		return sessionExpired
	}
	b.Logger.Debug(
		"access token refresh failed",
		zap.Error(res.Err),
		zap.Bool("shared", res.Shared),
	)
	return &meta.ErrRefreshFailed{
		Cause:    res.Err,
		Original: original,
	}
}

func (b *BaseClient) doRefresh(ctx context.Context) error {
	b.Logger.Info("access token expired; refreshing")

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = b.RefreshInitialInterval
	expBackoff.MaxInterval = 10 * b.RefreshInitialInterval

	refreshReq := NewRequest(http.MethodPost, b.RefreshPath)

	operation := func() (struct{}, error) {
		// The refresh request is itself submitted as a retry so that a 401 in
		// response to it can't trigger another refresh.
		_, err := b.submit(ctx, refreshReq, true)
		if err == nil {
			return struct{}{}, nil
		}
		if apiErr, ok := err.(*meta.APIError); ok {
			switch {
			case apiErr.Status == http.StatusUnauthorized ||
				apiErr.Status == http.StatusForbidden:
				return struct{}{}, backoff.Permanent(
					&meta.ErrSessionExpired{Status: apiErr.Status},
				)
			case apiErr.Status < http.StatusInternalServerError:
				// Other client errors won't go away by trying again.
				return struct{}{}, backoff.Permanent(apiErr)
			}
			return struct{}{}, apiErr
		}
		if ctx.Err() != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}

	_, err := backoff.Retry(
		ctx,
		operation,
		backoff.WithBackOff(expBackoff),
		backoff.WithMaxTries(b.MaxRefreshAttempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			b.Logger.Warn(
				"access token refresh failed; will retry",
				zap.Error(err),
				zap.Duration("next", next),
			)
		}),
	)
	if err == nil {
		b.Logger.Info("access token refreshed")
		return nil
	}

	var sessionExpired *meta.ErrSessionExpired
	if errors.As(err, &sessionExpired) {
		b.Logger.Info(
			"refresh token rejected; session expired",
			zap.Int("status", sessionExpired.Status),
		)
		b.Tokens.Clear()
		if b.OnSessionExpired != nil {
			b.OnSessionExpired()
		}
		return sessionExpired
	}
	b.Logger.Warn("access token could not be refreshed", zap.Error(err))
	return err
}
