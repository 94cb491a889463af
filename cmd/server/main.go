package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Tyrowin/cursorparty/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// loadDotEnv loads path into the environment. A missing file is normal
// outside development and is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func run() error {
	dotenvErr := loadDotEnv(".env")

	config, err := server.LoadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	logger := server.NewLogger(os.Stdout, config.LogLevel, config.LogFormat)
	if dotenvErr != nil {
		logger.Warn("Ignoring unreadable .env file", "error", dotenvErr)
	}

	hub := server.NewHub(logger)
	go hub.Run()

	mux := server.SetupRoutes(hub, *config, logger)
	httpServer := server.CreateServer(config.Addr(), mux)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.StartServer(httpServer, logger)
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = hub.Shutdown(config.ShutdownTimeout)
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Termination signal received")
	}

	shutdownErr := server.ShutdownServer(httpServer, config.ShutdownTimeout, logger)
	if err := hub.Shutdown(config.ShutdownTimeout); err != nil {
		return fmt.Errorf("hub shutdown: %w", err)
	}
	return shutdownErr
}
