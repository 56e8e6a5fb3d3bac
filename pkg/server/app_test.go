package server

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func TestRun_JobFinishes(t *testing.T) {
	c := make(chan os.Signal, 1)
	eg, ctx := errgroup.WithContext(context.Background())

	var ran bool
	err := run(c, eg, ctx, func(context.Context) error {
		ran = true
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, ran)
}

func TestRun_JobError(t *testing.T) {
	c := make(chan os.Signal, 1)
	eg, ctx := errgroup.WithContext(context.Background())
	boom := errors.New("boom")

	err := run(c, eg, ctx, func(context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
}

func TestRun_SignalCancelsJob(t *testing.T) {
	c := make(chan os.Signal, 1)
	c <- syscall.SIGTERM
	eg, ctx := errgroup.WithContext(context.Background())

	err := run(c, eg, ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.ErrorIs(t, err, context.Canceled)
}
