package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/wordbook/internal/infrastructure/config"
	"github.com/eslsoft/wordbook/internal/infrastructure/database"
	"github.com/eslsoft/wordbook/internal/infrastructure/server"
)

// Container aggregates the application dependencies.
type Container struct {
	Logger *logrus.Logger
	Server *server.Server
}

// Initialize builds the application container. The cleanup function closes
// the database pool.
func Initialize() (*Container, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := server.NewLogger(cfg)

	pool, cleanup, err := database.NewConnection(cfg)
	if err != nil {
		if cleanup != nil {
			cleanup()
		}
		return nil, nil, err
	}

	srv := server.NewServer(cfg, logger, pool)
	return &Container{Logger: logger, Server: srv}, cleanup, nil
}
