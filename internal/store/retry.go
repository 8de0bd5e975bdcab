// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
)

// pgAdminShutdown is raised when the provider terminates an idle backend.
const pgAdminShutdown = "57P01"

const (
	readAttempts  = 3
	retryBaseWait = time.Second
)

// IsTransient reports whether an error is worth retrying: connection drops,
// timeouts and backend shutdowns from the serverless Postgres provider.
// Constraint violations and other query errors are never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgAdminShutdown {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "connection")
}

// linearBackoff waits base, 2*base, 3*base between attempts.
func linearBackoff(base time.Duration) retry.Backoff {
	var attempt int64
	return retry.BackoffFunc(func() (time.Duration, bool) {
		n := atomic.AddInt64(&attempt, 1)
		return time.Duration(n) * base, false
	})
}

// WithRetry runs fn up to three times, backing off linearly, retrying only
// transient errors. Used on read paths; writes run once so they are never
// duplicated.
func WithRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(readAttempts-1, linearBackoff(retryBaseWait))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			if IsTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
}
