package database

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(original) })
	return &buf
}

func TestRetrier_Do(t *testing.T) {
	permanent := errors.New("syntax error")

	tests := []struct {
		name        string
		failures    int
		err         error
		wantCalls   int
		wantErr     error
		wantRetries int
		wantGiveUp  bool
	}{
		{
			name:      "succeeds at once",
			wantCalls: 1,
		},
		{
			name:        "retries a conflict until it succeeds",
			failures:    2,
			err:         ErrConflict,
			wantCalls:   3,
			wantRetries: 2,
		},
		{
			name:        "gives up after the last attempt",
			failures:    5,
			err:         ErrConflict,
			wantCalls:   3,
			wantErr:     ErrConflict,
			wantRetries: 2,
			wantGiveUp:  true,
		},
		{
			name:      "does not retry other errors",
			failures:  5,
			err:       permanent,
			wantCalls: 1,
			wantErr:   permanent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)
			retrier := NewRetrier(3)
			retrier.Delay = 0

			calls := 0
			err := retrier.Do(context.Background(), "record verdict", func() error {
				calls++
				if calls <= tt.failures {
					return fmt.Errorf("attempt %d: %w", calls, tt.err)
				}
				return nil
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantRetries, strings.Count(logs.String(), "retrying transaction"))
			assert.Equal(t, tt.wantGiveUp, strings.Contains(logs.String(), "giving up transaction"))
		})
	}
}
