package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Rakhulsr/vendoz/app/configs"
	"github.com/Rakhulsr/vendoz/app/db/seeders"
	"github.com/Rakhulsr/vendoz/app/models/migrations"
	"github.com/Rakhulsr/vendoz/app/server"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// withDB opens the configured database for the duration of fn.
func withDB(env configs.ENV, fn func(db *gorm.DB) error) error {
	db, err := configs.OpenConnection(env)
	if err != nil {
		return err
	}
	defer func() {
		if err := configs.CloseConnection(db); err != nil {
			zap.S().Warnf("closing database: %v", err)
		}
	}()
	return fn(db)
}

func RunCli(ctx context.Context, env configs.ENV, logger *zap.Logger, args []string) error {
	cmd := &cli.Command{
		Name:           "vendoz",
		Usage:          "Vendoz storefront API",
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP API",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDB(env, func(db *gorm.DB) error {
						app, err := server.New(env, db, logger, server.Overrides{})
						if err != nil {
							return err
						}
						return app.Run(ctx)
					})
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDB(env, func(db *gorm.DB) error {
						if err := migrations.AutoMigrate(db); err != nil {
							return err
						}
						zap.S().Info("Migration complete")
						return nil
					})
				},
			},
			{
				Name:  "seed",
				Usage: "Insert fake products and testimonials",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "products", Value: 20, Usage: "number of products to create"},
					&cli.IntFlag{Name: "testimonials", Value: seeders.DefaultTestimonials, Usage: "number of testimonials to create"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					products, testimonials := int(c.Int("products")), int(c.Int("testimonials"))
					if products < 0 || testimonials < 0 {
						return fmt.Errorf("counts must not be negative")
					}
					return withDB(env, func(db *gorm.DB) error {
						return seeders.DBSeed(ctx, db, products, testimonials)
					})
				},
			},
			{
				Name:  "create-admin",
				Usage: "Create an admin account or promote an existing user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Usage: "required when the account does not exist yet"},
					&cli.StringFlag{Name: "name", Value: "Administrator"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDB(env, func(db *gorm.DB) error {
						app, err := server.New(env, db, logger, server.Overrides{})
						if err != nil {
							return err
						}
						user, created, err := app.Users().EnsureAdmin(ctx, c.String("name"), c.String("email"), c.String("password"))
						if err != nil {
							return err
						}
						if created {
							zap.S().Infof("Admin %s created", user.Email)
						} else {
							zap.S().Infof("User %s promoted to admin", user.Email)
						}
						return nil
					})
				},
			},
			{
				Name:  "generate-secret",
				Usage: "Generate a random JWT_SECRET for .env",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "also write the line to this file"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return configs.GenerateAndPrintSecret(os.Stdout, c.String("out"))
				},
			},
		},
	}

	return cmd.Run(ctx, args)
}
