package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"frc-robot-core/autonomous"
	"frc-robot-core/utils"
)

func main() {
	app := cli.NewApp()
	app.Name = "robot_loop"
	app.Usage = "drive the robot actuators over CAN from the operator console or an autonomous program"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "iface",
			Value: "vcan0",
			Usage: "SocketCAN interface name",
		},
		cli.StringFlag{
			Name:  "map",
			Value: "config/can/can_map.csv",
			Usage: "path to can_map.csv",
		},
		cli.StringFlag{
			Name:  "config",
			Value: "config/robot.json",
			Usage: "robot configuration JSON",
		},
		cli.StringFlag{
			Name:  "telemetry",
			Usage: "dashboard values JSON (custom autonomous windows)",
		},
		cli.StringFlag{
			Name:  "mode",
			Usage: "teleop|autonomous|match (overrides the config file)",
		},
		cli.StringFlag{
			Name:  "program",
			Usage: "autonomous program label (overrides the config file)",
		},
		cli.StringFlag{
			Name:  "log",
			Value: "info",
			Usage: "trace|debug|info|warn|error|critical",
		},
		cli.StringFlag{
			Name:  "log-file",
			Value: "robot_loop.log",
			Usage: "log file path",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "programs",
			Usage: "list the autonomous programs",
			Action: func(c *cli.Context) error {
				for _, p := range autonomous.Programs() {
					_, _ = os.Stdout.WriteString(p.String() + "\n")
				}
				return nil
			},
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		_, _ = os.Stderr.WriteString("ERROR: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log, err := utils.NewFileLogger(c.String("log-file"), utils.ParseLevel(c.String("log")), true)
	if err != nil {
		return cli.NewExitError("cannot open "+c.String("log-file")+": "+err.Error(), 1)
	}
	defer log.Close()

	cfg := RunnerConfig{
		Interface:     c.String("iface"),
		MapPath:       c.String("map"),
		ConfigPath:    c.String("config"),
		TelemetryPath: c.String("telemetry"),
		Mode:          c.String("mode"),
		Program:       c.String("program"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := NewRunner(ctx, cfg, log)
	if err != nil {
		log.Critical("Startup failed: %v", err)
		return cli.NewExitError(err.Error(), 1)
	}
	defer runner.Close()

	if err := runner.Run(ctx); err != nil && err != context.Canceled {
		log.Critical("Run failed: %v", err)
		return cli.NewExitError(err.Error(), 1)
	}
	return nil
}
