package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/doclife/internal/server"
	"github.com/dmitrijs2005/doclife/internal/server/config"
	"go.uber.org/multierr"
)

const closeTimeout = 30 * time.Second

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	runErr := app.Run(ctx)

	closeCtx, cancel := context.WithTimeout(ctx, closeTimeout)
	defer cancel()

	if err := multierr.Append(runErr, app.Close(closeCtx)); err != nil {
		log.Printf("%v", err)
		cancel()
		os.Exit(1)
	}

}
