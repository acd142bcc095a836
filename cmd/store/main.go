package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Slassh006/FF1/internal/pkg/database"
	"github.com/Slassh006/FF1/internal/pkg/env"
	"github.com/Slassh006/FF1/internal/pkg/logging"
	"github.com/Slassh006/FF1/internal/store/bootstrap"
	"golang.org/x/sync/errgroup"
)

func main() {
	mainCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.StdoutLogger

	cfg := bootstrap.StoreConfig{
		DbSettings: database.PostgresSettings{
			User:       "admin",
			Password:   "password",
			Host:       "localhost",
			Port:       "5432",
			DBName:     "coin_store_db",
			SSlEnabled: false,
		},
		JwtSecret: "dev-secret",
		HttpPort:  ":8080",
	}

	env.TrySetFromEnv(env.EnvDatabaseUser, &cfg.DbSettings.User)
	env.TrySetFromEnv(env.EnvDatabasePassword, &cfg.DbSettings.Password)
	env.TrySetFromEnv(env.EnvDatabaseHost, &cfg.DbSettings.Host)
	env.TrySetFromEnv(env.EnvDatabasePort, &cfg.DbSettings.Port)
	env.TrySetFromEnv(env.EnvDatabaseName, &cfg.DbSettings.DBName)
	env.TrySetFromEnv(env.EnvJwtSecret, &cfg.JwtSecret)
	env.TrySetFromEnv(env.EnvHttpPort, &cfg.HttpPort)
	env.TrySetFromEnv(env.EnvRedisAddr, &cfg.RedisAddr)

	app := bootstrap.NewStoreApp(cfg, logger)

	group, groupCtx := errgroup.WithContext(mainCtx)
	group.Go(func() error {
		return app.Run(groupCtx)
	})
	group.Go(func() error {
		<-groupCtx.Done()
		app.Shutdown()
		return nil
	})

	if err := group.Wait(); err != nil {
		logger.Error("store service stopped with error", "error", err.Error())
		os.Exit(1)
	}
}
