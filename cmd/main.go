package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "learning_platform/docs"
	"learning_platform/internal/config"
	"learning_platform/internal/handlers"
	"learning_platform/internal/logger"
	"learning_platform/internal/repository"
	"learning_platform/internal/repository/db"
	"learning_platform/internal/server"
	"learning_platform/internal/service"
)

const shutdownTimeout = 10 * time.Second

//go:generate swag init -g cmd/main.go -o docs

// @title                       Learning Platform API
// @version                     1.0
// @description                 Accounts, learning modules and their exercises behind JWT bearer auth.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.InfoLevel, logger.FormatConsole).Fatalw("error loading config", "err", err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	repos, closeStore, err := openStore(cfg, log)
	if err != nil {
		log.Fatalw("failed to open store", "driver", cfg.DB.Driver, "err", err)
	}
	defer closeStore()

	services := service.NewService(repos, cfg.JWT, log)
	apiHandler := handlers.NewHandler(services, cfg.CORS, log)

	srv := server.New(cfg.Port, apiHandler.InitRoutes())
	go func() {
		log.Infow("http server listening", "addr", srv.Addr(), "driver", cfg.DB.Driver)
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()

	waitForShutdown(srv, log)
}

// openStore connects the configured backend and returns the repositories
// together with a close function.
func openStore(cfg *config.Config, log *logger.Logger) (*repository.Repository, func(), error) {
	if cfg.DB.Driver == config.DriverSQLite {
		conn, err := db.InitSQLite(cfg.DB.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if cerr := conn.Close(); cerr != nil {
				log.Errorw("failed to close sqlite", "err", cerr)
			}
		}
		return repository.NewSQLiteRepository(conn), closeFn, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DB.Mongo.Timeout)
	defer cancel()

	client, err := db.ConnectMongo(ctx, cfg.DB.Mongo.URI, cfg.DB.Mongo.Timeout)
	if err != nil {
		return nil, nil, err
	}
	database := client.Database(cfg.DB.Mongo.Database)
	if err := repository.EnsureMongoIndexes(ctx, database); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.DB.Mongo.Timeout)
		defer cancel()
		if cerr := client.Disconnect(ctx); cerr != nil {
			log.Errorw("failed to disconnect mongo", "err", cerr)
		}
	}
	return repository.NewMongoRepository(database), closeFn, nil
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
