package main

import (
	"Favour/config"
	"Favour/dao"
	"Favour/models"
	"Favour/pkg/database"
	"Favour/pkg/errorx"
	"Favour/pkg/log"
	"Favour/pkg/metrics"
	"Favour/pkg/server"
	"Favour/pkg/snowflake"
	"Favour/service"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	countConcurrency = 8
	pushTimeout      = 5 * time.Second
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	path := fmt.Sprintf("configs/config.%s.yaml", env)
	cfg := config.New(path)
	log.SetDebug(cfg.Debug())
	if err := snowflake.Init(cfg.App.NodeID); err != nil {
		log.L.Fatal("init snowflake", zap.Int64("node_id", cfg.App.NodeID), zap.Error(err))
	}

	app, cleanup, err := InitApp(cfg)
	if err != nil {
		log.L.Fatal("failed to init app", zap.Error(err))
	}
	defer cleanup()

	cliApp := &cli.App{
		Name:     "favour",
		Usage:    "manage favourites and their counters",
		Commands: commands(app),
		After: func(ctx *cli.Context) error {
			pushMetrics(ctx.Context, cfg.Metrics)
			return nil
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Error("command failed", zap.Int("code", errorx.CodeOf(err)), zap.Error(err))
		cleanup()
		os.Exit(1)
	}
}

var (
	accountFlag  = &cli.Uint64Flag{Name: "account", Aliases: []string{"a"}, Usage: "account id", Required: true}
	statusFlag   = &cli.Uint64Flag{Name: "status", Aliases: []string{"s"}, Usage: "status id", Required: true}
	statusesFlag = &cli.Uint64SliceFlag{Name: "status", Aliases: []string{"s"}, Usage: "status ids", Required: true}
)

func commands(app *server.AppProvider) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "migrate",
			Usage: "create or update the tables",
			Action: func(ctx *cli.Context) error {
				return database.Migrate(app.DB.WithContext(ctx.Context))
			},
		},
		{
			Name:  "favourite",
			Usage: "favourite a status as an account",
			Flags: []cli.Flag{accountFlag, statusFlag},
			Action: func(ctx *cli.Context) error {
				fav, err := app.Favourites.FavouriteByID(ctx.Context, ctx.Uint64("account"), ctx.Uint64("status"))
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(ctx.App.Writer, "favourite %d: account %d -> status %d\n", fav.ID, fav.AccountID, fav.StatusID)
				return err
			},
		},
		{
			Name:  "unfavourite",
			Usage: "remove an account's favourite of a status",
			Flags: []cli.Flag{accountFlag, statusFlag},
			Action: func(ctx *cli.Context) error {
				return app.Favourites.Unfavourite(ctx.Context, ctx.Uint64("account"), ctx.Uint64("status"))
			},
		},
		{
			Name:  "count",
			Usage: "print favourites_count of statuses",
			Flags: []cli.Flag{
				statusesFlag,
				&cli.BoolFlag{Name: "verify", Usage: "also count favourite rows and fail on drift"},
			},
			Action: func(ctx *cli.Context) error {
				return count(ctx, app)
			},
		},
		{
			Name:  "list",
			Usage: "list an account's favourites, newest first",
			Flags: []cli.Flag{
				accountFlag,
				&cli.IntFlag{Name: "limit", Value: dao.DefaultPageLimit},
				&cli.Uint64Flag{Name: "max-id"},
				&cli.Uint64Flag{Name: "since-id"},
				&cli.Uint64Flag{Name: "min-id"},
			},
			Action: func(ctx *cli.Context) error {
				favs, err := app.Favourites.ListByAccount(ctx.Context, ctx.Uint64("account"), dao.Page{
					Limit:   ctx.Int("limit"),
					MaxID:   ctx.Uint64("max-id"),
					SinceID: ctx.Uint64("since-id"),
					MinID:   ctx.Uint64("min-id"),
				})
				if err != nil {
					return err
				}
				for _, fav := range favs {
					fmt.Fprintf(ctx.App.Writer, "%d\t%d\t%s\n", fav.ID, fav.StatusID, fav.CreatedAt.Format("2006-01-02 15:04:05"))
				}
				return nil
			},
		},
		{
			Name:  "purge-account",
			Usage: "remove every favourite of an account",
			Flags: []cli.Flag{accountFlag},
			Action: func(ctx *cli.Context) error {
				return server.Run(ctx, func(c context.Context) error {
					removed, err := app.Favourites.DestroyAllByAccount(c, ctx.Uint64("account"))
					fmt.Fprintf(ctx.App.Writer, "removed %d favourites\n", removed)
					return err
				})
			},
		},
		{
			Name:  "remove-status",
			Usage: "delete statuses together with their favourites",
			Flags: []cli.Flag{statusesFlag},
			Action: func(ctx *cli.Context) error {
				return removeStatuses(ctx, app)
			},
		},
	}
}

func count(ctx *cli.Context, app *server.AppProvider) error {
	ids := ctx.Uint64Slice("status")
	verify := ctx.Bool("verify")
	checks := make([]*service.CounterCheck, len(ids))

	eg, egCtx := errgroup.WithContext(ctx.Context)
	eg.SetLimit(countConcurrency)
	for i, id := range ids {
		i, id := i, id
		eg.Go(func() error {
			if verify {
				check, err := app.Favourites.CheckFavouritesCount(egCtx, id)
				if err != nil {
					return fmt.Errorf("status %d: %w", id, err)
				}
				checks[i] = check
				return nil
			}
			n, err := app.Favourites.GetFavouritesCount(egCtx, id)
			if err != nil {
				return fmt.Errorf("status %d: %w", id, err)
			}
			checks[i] = &service.CounterCheck{StatusID: id, Stored: n}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	var drifted int
	for _, check := range checks {
		if !verify {
			fmt.Fprintf(ctx.App.Writer, "%d\t%d\n", check.StatusID, check.Stored)
			continue
		}
		fmt.Fprintf(ctx.App.Writer, "%d\t%d\t%d\n", check.StatusID, check.Stored, check.Rows)
		if check.Drifted() {
			drifted++
		}
	}
	if drifted > 0 {
		return fmt.Errorf("%d of %d statuses drifted", drifted, len(checks))
	}
	return nil
}

// pushMetrics is best effort; a missing gateway only costs the numbers.
func pushMetrics(ctx context.Context, conf *config.Metrics) {
	if !conf.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pushTimeout)
	defer cancel()
	if err := metrics.Push(ctx, conf.PushGateway, conf.Job); err != nil {
		log.L.Warn("push metrics", zap.String("gateway", conf.PushGateway), zap.Error(err))
	}
}

func removeStatuses(ctx *cli.Context, app *server.AppProvider) error {
	ids := ctx.Uint64Slice("status")

	statuses := make([]*models.Status, len(ids))
	eg, egCtx := errgroup.WithContext(ctx.Context)
	eg.SetLimit(countConcurrency)
	for i, id := range ids {
		i, id := i, id
		eg.Go(func() error {
			st, err := app.StatusDAO.GetResident(egCtx, id)
			if err != nil {
				return fmt.Errorf("load status %d: %w", id, err)
			}
			statuses[i] = st
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if len(statuses) == 1 {
		return app.Statuses.Remove(ctx.Context, statuses[0])
	}
	return app.Statuses.RemoveMany(ctx.Context, statuses)
}
