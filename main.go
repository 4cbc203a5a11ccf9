package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/props/cli"
	"github.com/ardnew/props/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		// Errors implement slog.LogValuer.
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
