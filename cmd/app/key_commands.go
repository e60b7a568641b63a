package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/authkit/cmd/app/commands"
	"github.com/allisson/authkit/internal/app"
	"github.com/allisson/authkit/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-signing-key",
			Usage: "Generate a new token signing key, optionally sealed with KMS",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "id",
					Aliases: []string{"i"},
					Usage:   "Signing key ID written to the kid header (e.g., signing-key-2026)",
				},
				&cli.StringFlag{
					Name:  "kms-provider",
					Usage: "KMS provider (localsecrets, gcpkms, awskms, azurekeyvault, hashivault)",
				},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Usage: "KMS key URI used to encrypt the signing key",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateSigningKey(
					ctx,
					container.SigningKeyLoader(),
					commands.CreateSigningKeyParams{
						KeyID:       cmd.String("id"),
						KMSProvider: cmd.String("kms-provider"),
						KMSKeyURI:   cmd.String("kms-key-uri"),
					},
					commands.DefaultIO(),
				)
			},
		},
	}
}
