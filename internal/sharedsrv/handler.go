package sharedsrv

import (
	"time"

	"github.com/shelfsync/shelfsync/internal/logger"
	"github.com/shelfsync/shelfsync/internal/sharedstore"
)

// defaultPollTimeout bounds how long GET /api/changes holds a connection
// open waiting for a committed write.
const defaultPollTimeout = 25 * time.Second

type Handler struct {
	repo sharedstore.SharedRepository

	pollTimeout time.Duration
	logger      *logger.Logger
}

func NewHandler(repo sharedstore.SharedRepository, logger *logger.Logger) *Handler {
	logger.Info().Msg("shared-store http handler created")
	return &Handler{
		repo:        repo,
		pollTimeout: defaultPollTimeout,
		logger:      logger,
	}
}
