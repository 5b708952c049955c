package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "goldenhours"
	s.app.Usage = "Golden Hours rewards engine"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path of the toml configuration file",
			EnvVars: []string{"CONFIG_FILE"},
		},
	}
	s.app.Before = s.setup
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, it serves the rewards apis and the realtime websocket.`,
		},
		{
			Action: s.startMigrate,
			Name:   "migrate",
			Usage:  "Migrate the database",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "version",
					Value: "",
					Usage: "run only this migrator, e.g. 0001 or auto",
				},
			},
			Category: "Database",
		},
		{
			Action:      s.startAdDecisionRPC,
			Name:        "addecision",
			Usage:       "Start the ad decision and customer care rpc server",
			Category:    "Worker",
			Description: `Used to serve the ad decision rules and the customer care agent to api instances over json-rpc.`,
		},
		{
			Action:      s.startEvents,
			Name:        "events",
			Usage:       "Start the reward events consumer",
			Category:    "Worker",
			Description: `Used to subscribe to the reward topics of the message queue and log them.`,
		},
	}
}
