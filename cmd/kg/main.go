package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"kg/internal/commands"
	"kg/internal/util"
	"kg/pkg/logger"
	"kg/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.NewRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
