package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kevingerman/pianoman/internal/app"
	"github.com/kevingerman/pianoman/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	settings, err := app.ParseSettings(os.Environ())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := settings.Logger()
	build := models.NewBuildInfo(buildVersion, buildDate, buildCommit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.New(settings, build, log).Run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Error().Err(err).Msg("pianoman failed")
		fmt.Fprintf(os.Stderr, "%s: %v\n", app.Name, err)
		stop()
		os.Exit(1)
	}
}
