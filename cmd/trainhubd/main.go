package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yigit/trainhub/internal/config"
	"github.com/yigit/trainhub/internal/pkg/logger"
	"github.com/yigit/trainhub/internal/server"
)

func main() {
	app := &cli.App{
		Name:  "trainhubd",
		Usage: "reference API server for the training center",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"TRAINHUB_CONFIG"},
			},
		},
		Action: func(c *cli.Context) error {
			srv, err := server.NewServer(c.Context, c.String("config"))
			if err != nil {
				return err
			}
			return srv.Run(c.Context)
		},
	}

	if err := app.RunContext(context.Background(), os.Args); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}
	logger.Info().Msg("Application finished gracefully.")
}
