package rate_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mernspace/auth-service/internal/rate"
)

func TestMemoryLimiterAllowsUpToMax(t *testing.T) {
	l := rate.NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := l.Allow(ctx, "k")
		require.NoError(t, err)
		require.True(t, res.Allowed, "hit %d should be allowed", i+1)
	}

	res, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	require.False(t, res.Allowed)
	require.Greater(t, res.RetryAfter, time.Duration(0))
}

func TestMemoryLimiterIsolatesKeys(t *testing.T) {
	l := rate.NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	res, _ := l.Allow(ctx, "a")
	require.True(t, res.Allowed)
	res, _ = l.Allow(ctx, "a")
	require.False(t, res.Allowed)

	res, _ = l.Allow(ctx, "b")
	require.True(t, res.Allowed)
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	l := rate.NewMemoryLimiter(1, 10*time.Millisecond)
	ctx := context.Background()

	res, _ := l.Allow(ctx, "k")
	require.True(t, res.Allowed)
	res, _ = l.Allow(ctx, "k")
	require.False(t, res.Allowed)

	time.Sleep(15 * time.Millisecond)
	res, _ = l.Allow(ctx, "k")
	require.True(t, res.Allowed)
}
