package main_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	main "github.com/fwojciec/overviewer/cmd/overviewer"
	"github.com/fwojciec/overviewer/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		var logs bytes.Buffer
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		deps := &main.Dependencies{
			Ctx:      ctx,
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Logger:   slog.New(slog.NewTextHandler(&logs, nil)),
			Resolver: &mock.Resolver{},
		}

		cmd := &main.ServeCmd{Addr: "127.0.0.1:0", RequestTimeout: time.Second}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, logs.String(), "listening")
	})

	t.Run("fails for an invalid address", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Logger:   slog.New(slog.DiscardHandler),
			Resolver: &mock.Resolver{},
		}

		err := (&main.ServeCmd{Addr: "not-an-address"}).Run(deps)

		require.Error(t, err)
	})
}
