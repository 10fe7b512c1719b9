package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/cardguard/cmd/app/commands"
	"github.com/allisson/cardguard/internal/app"
)

func getAccessCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "lock-apps",
			Usage: "Lock resources by name",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Resource name (repeatable)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					controller, err := container.AccessController()
					if err != nil {
						return err
					}

					return commands.RunLockApps(
						ctx,
						controller,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.StringSlice("name"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "list-locked",
			Usage: "Show the lock state and the locked resources",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					registry, err := container.Registry()
					if err != nil {
						return err
					}

					return commands.RunListLocked(ctx, registry, commands.DefaultIO().Writer, cmd.String("format"))
				})
			},
		},
		{
			Name:  "unlock",
			Usage: "Present a card (and PIN) to unlock resources",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "card",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Card identifier as read from the card",
				},
				&cli.StringFlag{
					Name:    "pin",
					Aliases: []string{"p"},
					Usage:   "PIN, when PIN protection is enabled",
				},
				&cli.StringFlag{
					Name:    "resource",
					Aliases: []string{"r"},
					Usage:   "Unlock only this resource",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				var pin *string
				if cmd.IsSet("pin") {
					value := cmd.String("pin")
					pin = &value
				}

				return withContainer(ctx, func(container *app.Container) error {
					controller, err := container.AccessController()
					if err != nil {
						return err
					}

					return commands.RunUnlock(
						ctx,
						controller,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("card"),
						pin,
						cmd.String("resource"),
						cmd.String("format"),
					)
				})
			},
		},
	}
}
