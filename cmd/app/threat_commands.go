package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/cardguard/cmd/app/commands"
	"github.com/allisson/cardguard/internal/app"
)

func cardDataFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "card",
		Aliases:  []string{"c"},
		Required: true,
		Usage:    "Raw card data",
	}
}

func getThreatCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "blacklist-add",
			Usage: "Block a card by its fingerprint",
			Flags: []cli.Flag{
				cardDataFlag(),
				&cli.StringFlag{
					Name:    "reason",
					Aliases: []string{"r"},
					Usage:   "Why the card is blocked (defaults to 'Manual block')",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					detector, err := container.ThreatDetector()
					if err != nil {
						return err
					}

					return commands.RunBlacklistAdd(
						ctx,
						detector,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("card"),
						cmd.String("reason"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "blacklist-remove",
			Usage: "Unblock a card",
			Flags: []cli.Flag{cardDataFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					detector, err := container.ThreatDetector()
					if err != nil {
						return err
					}

					return commands.RunBlacklistRemove(
						ctx,
						detector,
						commands.DefaultIO().Writer,
						cmd.String("card"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "blacklist-list",
			Usage: "List blocked fingerprints and suspicious patterns",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					detector, err := container.ThreatDetector()
					if err != nil {
						return err
					}

					return commands.RunBlacklistList(ctx, detector, commands.DefaultIO().Writer, cmd.String("format"))
				})
			},
		},
		{
			Name:  "blacklist-clear",
			Usage: "Remove every blocked fingerprint and suspicious pattern",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					detector, err := container.ThreatDetector()
					if err != nil {
						return err
					}

					return commands.RunBlacklistClear(
						ctx,
						detector,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "add-pattern",
			Usage: "Add a suspicious pattern matched case-insensitively against card data",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "pattern",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Substring to reject",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					detector, err := container.ThreatDetector()
					if err != nil {
						return err
					}

					return commands.RunAddPattern(
						ctx,
						detector,
						commands.DefaultIO().Writer,
						cmd.String("pattern"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "check-card",
			Usage: "Classify card data without changing any state",
			Flags: []cli.Flag{cardDataFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					detector, err := container.ThreatDetector()
					if err != nil {
						return err
					}

					return commands.RunCheckCard(
						ctx,
						detector,
						commands.DefaultIO().Writer,
						cmd.String("card"),
						cmd.String("format"),
					)
				})
			},
		},
	}
}
