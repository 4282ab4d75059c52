package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"line-edit-server/internal/config"
	"line-edit-server/internal/filesystem"
	"line-edit-server/internal/lock"
	"line-edit-server/internal/logging"
	"line-edit-server/internal/mcp"
	"line-edit-server/internal/sandbox"
	"line-edit-server/internal/service"
	"line-edit-server/internal/transport"
)

const shutdownTimeout = 10 * time.Second

// runServer wires the service stack together and blocks on the selected
// transport until it finishes or a termination signal arrives.
func runServer(cfg *config.Config, logger *log.Logger) error {
	box, err := sandbox.New(cfg.Roots)
	if err != nil {
		return err
	}

	svc, err := service.New(filesystem.NewOSAdapter(), lock.NewFlockManager(), box, cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("server starting",
		logging.FieldTransport, cfg.Transport,
		logging.FieldRoot, cfg.Roots[0])

	switch cfg.Transport {
	case "http":
		return runHTTP(svc, cfg.Port, logger)
	default:
		handler := transport.NewStdioHandler(svc, mcp.NewProcessor(svc), logger)
		return handler.Start(os.Stdin, os.Stdout)
	}
}

func runHTTP(svc service.FileService, port int, logger *log.Logger) error {
	handler := transport.NewHTTPHandler(svc, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- handler.StartServer(port)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := handler.Server.Shutdown(ctx); err != nil {
			return err
		}
		return <-errCh
	}
}
