package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/cardguard/cmd/app/commands"
	"github.com/allisson/cardguard/internal/app"
)

func getCardCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "register-card",
			Usage: "Register a card that may unlock protected resources",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Card identifier as read from the card",
				},
				&cli.StringFlag{
					Name:    "name",
					Aliases: []string{"n"},
					Usage:   "Display name (defaults to 'Card N')",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					store, err := container.CredentialStore()
					if err != nil {
						return err
					}

					return commands.RunRegisterCard(
						ctx,
						store,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("id"),
						cmd.String("name"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "unregister-card",
			Usage: "Remove a registered card",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Card identifier",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					store, err := container.CredentialStore()
					if err != nil {
						return err
					}

					return commands.RunUnregisterCard(
						ctx,
						store,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("id"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "list-cards",
			Usage: "List registered cards in registration order",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					store, err := container.CredentialStore()
					if err != nil {
						return err
					}

					return commands.RunListCards(ctx, store, commands.DefaultIO().Writer, cmd.String("format"))
				})
			},
		},
		{
			Name:  "set-pin",
			Usage: "Enable PIN protection (prompts for the PIN when --pin is omitted)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "pin",
					Aliases: []string{"p"},
					Usage:   "New PIN",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					store, err := container.CredentialStore()
					if err != nil {
						return err
					}

					return commands.RunSetPin(
						ctx,
						store,
						container.Logger(),
						cmd.String("pin"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:  "disable-pin",
			Usage: "Disable PIN protection",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					store, err := container.CredentialStore()
					if err != nil {
						return err
					}

					return commands.RunDisablePin(
						ctx,
						store,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "pin-status",
			Usage: "Show whether PIN protection is enabled",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					store, err := container.CredentialStore()
					if err != nil {
						return err
					}

					return commands.RunPinStatus(ctx, store, commands.DefaultIO().Writer, cmd.String("format"))
				})
			},
		},
	}
}
