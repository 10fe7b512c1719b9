package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/cardguard/cmd/app/commands"
	"github.com/allisson/cardguard/internal/app"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations for the configured SQL storage driver",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					driver := container.Config().StorageDriver
					if !container.Config().UsesDatabase() {
						return commands.RunMigrations(container.Logger(), driver, nil)
					}

					db, err := container.DB()
					if err != nil {
						return err
					}
					return commands.RunMigrations(container.Logger(), driver, db)
				})
			},
		},
		{
			Name:  "usage",
			Usage: "Show launch statistics",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "reset",
					Value: false,
					Usage: "Discard the statistics before showing them",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					counter, err := container.UsageCounter()
					if err != nil {
						return err
					}

					return commands.RunUsage(
						ctx,
						counter,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.Bool("reset"),
						cmd.String("format"),
					)
				})
			},
		},
	}
}
