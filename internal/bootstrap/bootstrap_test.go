package bootstrap

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_Run(t *testing.T) {
	t.Run("run returns nil", func(t *testing.T) {
		app := New()
		err := app.Run(context.Background(), func(ctx context.Context) error {
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("run error is returned and hooks still run", func(t *testing.T) {
		app := New()
		closed := false
		app.AddShutdownHook("db", func(ctx context.Context) error {
			closed = true
			return nil
		})
		want := errors.New("listen failed")
		err := app.Run(context.Background(), func(ctx context.Context) error {
			return want
		})
		assert.ErrorIs(t, err, want)
		assert.True(t, closed)
	})

	t.Run("hooks run in reverse order on cancel", func(t *testing.T) {
		app := New()
		var mu sync.Mutex
		var order []string
		for _, name := range []string{"db", "cron", "http"} {
			name := name
			app.AddShutdownHook(name, func(ctx context.Context) error {
				mu.Lock()
				defer mu.Unlock()
				order = append(order, name)
				return nil
			})
		}

		ctx, cancel := context.WithCancel(context.Background())
		err := app.Run(ctx, func(ctx context.Context) error {
			cancel()
			<-ctx.Done()
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"http", "cron", "db"}, order)
	})

	t.Run("hook errors are joined with their names", func(t *testing.T) {
		app := New()
		hookErr := errors.New("close failed")
		app.AddShutdownHook("db", func(ctx context.Context) error { return hookErr })
		app.AddShutdownHook("http", func(ctx context.Context) error { return nil })

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := app.Run(ctx, func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		})
		assert.ErrorIs(t, err, hookErr)
		assert.Contains(t, err.Error(), "db: close failed")
	})

	t.Run("hooks share the shutdown deadline", func(t *testing.T) {
		app := New().WithShutdownTimeout(50 * time.Millisecond)
		app.AddShutdownHook("slow", func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := app.Run(ctx, func(ctx context.Context) error { return nil })
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
