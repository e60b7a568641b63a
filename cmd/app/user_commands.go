package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/authkit/cmd/app/commands"
	"github.com/allisson/authkit/internal/app"
	"github.com/allisson/authkit/internal/config"
)

var formatFlag = &cli.StringFlag{
	Name:    "format",
	Aliases: []string{"f"},
	Value:   "text",
	Usage:   "Output format: 'text' or 'json'",
}

var usernameFlag = &cli.StringFlag{
	Name:     "username",
	Aliases:  []string{"u"},
	Required: true,
	Usage:    "Account username",
}

func getUserCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-user",
			Usage: "Create a user account",
			Flags: []cli.Flag{
				usernameFlag,
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Account password (omit to be prompted)",
				},
				&cli.StringFlag{
					Name:  "full-name",
					Usage: "Display name",
				},
				&cli.StringFlag{
					Name:  "email",
					Usage: "Contact email",
				},
				&cli.BoolFlag{
					Name:  "disabled",
					Usage: "Create the account disabled",
				},
				formatFlag,
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateUser(
					ctx,
					userUseCase,
					container.Logger(),
					commands.CreateUserParams{
						Username: cmd.String("username"),
						Password: cmd.String("password"),
						FullName: cmd.String("full-name"),
						Email:    cmd.String("email"),
						Disabled: cmd.Bool("disabled"),
						Format:   cmd.String("format"),
					},
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "update-user-status",
			Usage: "Enable or disable a user account",
			Flags: []cli.Flag{
				usernameFlag,
				&cli.BoolFlag{
					Name:  "disabled",
					Usage: "Disable the account (pass --disabled=false to enable it)",
				},
				formatFlag,
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunUpdateUserStatus(
					ctx,
					userUseCase,
					container.Logger(),
					cmd.String("username"),
					cmd.Bool("disabled"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
		{
			Name:  "delete-user",
			Usage: "Delete a user account",
			Flags: []cli.Flag{usernameFlag},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunDeleteUser(
					ctx,
					userUseCase,
					container.Logger(),
					cmd.String("username"),
					commands.DefaultIO(),
				)
			},
		},
	}
}
