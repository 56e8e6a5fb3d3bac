package server

import (
	"Favour/config"
	"Favour/dao"
	"Favour/pkg/log"
	"Favour/service"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// AppProvider holds everything a favour command needs.
type AppProvider struct {
	Config     *config.Config
	DB         *gorm.DB
	StatusDAO  *dao.StatusDAO
	Favourites service.IFavouriteService
	Statuses   service.IStatusService
}

// Job is one command body. It must return once ctx is cancelled.
type Job func(ctx context.Context) error

// Run executes job until it returns or the process is told to stop, in which
// case the job's context is cancelled and its error is returned.
func Run(ctx *cli.Context, job Job) error {
	eg, groupCtx := errgroup.WithContext(ctx.Context)
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT)
	defer signal.Stop(c)

	return run(c, eg, groupCtx, job)
}

func run(c <-chan os.Signal, eg *errgroup.Group, ctx context.Context, job Job) error {
	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	eg.Go(func() error {
		defer close(done)
		return job(jobCtx)
	})

	eg.Go(func() error {
		select {
		case <-done:
		case sig := <-c:
			log.L.Info("job stopping", zap.String("signal", sig.String()))
			cancel()
		}
		return nil
	})

	return eg.Wait()
}
