package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/maestro-studio/maestro-cli/internal/auth"
	"github.com/maestro-studio/maestro-cli/internal/services"
	"github.com/maestro-studio/maestro-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	session, err := auth.NewFileSessionStore(expandPath(config.API.SessionPath))
	if err != nil {
		logger.Fatalf("failed to open session store: %v", err)
	}

	coordinator := auth.NewCoordinator(session, logger, auth.WithNotifier(&logNotifier{logger}))
	httpClient := &http.Client{
		Transport: auth.NewTransport(nil, session, coordinator, logger),
		Timeout:   time.Duration(config.API.TimeoutSeconds) * time.Second,
	}

	client := services.NewClient(config.API.BaseURL, httpClient, logger)
	account := services.NewAccountService(client, session)
	coordinator.SetValidateFunc(account.ValidateToken)

	runner := NewRunner(RunnerOpts{
		Config:      config,
		Logger:      logger,
		HTTPClient:  httpClient,
		Session:     session,
		Coordinator: coordinator,
		Client:      client,
		Account:     account,
	})

	app := &cli.Command{
		Name:     "maestro",
		Usage:    "Work with your Maestro studio library from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
