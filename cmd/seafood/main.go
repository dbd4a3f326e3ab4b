package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/todayseafood/seafood/pkg/version"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "seafood"
	app.Usage = "Browse and post to 오늘의 수산 from the command line"
	app.Version = version.String()
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    flagServer,
			Aliases: []string{"s"},
			Usage: "Use the API server at the specified address instead of the " +
				"one last logged into",
			EnvVars: []string{"SEAFOOD_SERVER"},
		},
		&cli.BoolFlag{
			Name:    flagInsecure,
			Aliases: []string{"k"},
			Usage:   "Allow insecure API server connections when using TLS",
			EnvVars: []string{"SEAFOOD_INSECURE"},
		},
		&cli.BoolFlag{
			Name:    flagDebug,
			Usage:   "Log every request and response to stderr",
			EnvVars: []string{"SEAFOOD_DEBUG"},
		},
	}
	app.Before = func(*cli.Context) error {
		// A .env file in the working directory is optional
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	app.Commands = []*cli.Command{
		commentCommand,
		loginCommand,
		logoutCommand,
		pingCommand,
		postCommand,
		signupCommand,
		userCommand,
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	fmt.Println()
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Printf("\n%s\n\n", err)
		cancel()
		os.Exit(1)
	}
	fmt.Println()
}
