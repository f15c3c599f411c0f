package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/vetdesk/vetdesk/internal/client/cli"
	"github.com/vetdesk/vetdesk/internal/client/config"
	"github.com/vetdesk/vetdesk/internal/logging"
)

func main() {

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(context.Background())
}
