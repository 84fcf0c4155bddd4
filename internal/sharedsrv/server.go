package sharedsrv

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/shelfsync/shelfsync/internal/config"
	"github.com/shelfsync/shelfsync/internal/logger"
)

// Server runs the shared-store daemon until a stop signal arrives.
type Server interface {
	RunServer()
	Shutdown()
}

type server struct {
	httpServer *http.Server
	logger     *logger.Logger
}

func NewServer(handler *Handler, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating shared-store server...")

	if cfg.HTTPAddress == "" {
		return nil, errNoServerAddress
	}

	return &server{
		httpServer: &http.Server{
			Addr:    cfg.HTTPAddress,
			Handler: handler.Init(),
		},
		logger: logger,
	}, nil
}

func (s *server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Info().Msgf("Error running server: %v \n", err)
	}
}

func (s *server) Shutdown() {
	if err := s.httpServer.Shutdown(context.Background()); err != nil {
		s.logger.Err(err).Msg("HTTP server Shutdown")
	}
}

func (s *server) run() error {
	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()

		s.Shutdown()

		close(idleConnectionsClosed)
	}()

	s.logger.Info().Str("address", s.httpServer.Addr).Msg("Launching HTTP server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-idleConnectionsClosed
	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}
