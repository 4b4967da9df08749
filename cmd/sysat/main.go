package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  = "dev"
)

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupLogging(slog.LevelInfo)
	setupSignalHandlers(cancel)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("Command failed.",
			"err", err,
		)
		ExitCode = 1
	}
}
