package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Slassh006/FF1/internal/pkg/database"
	"github.com/Slassh006/FF1/internal/pkg/jwt"
	"github.com/Slassh006/FF1/internal/pkg/logging"
	"github.com/Slassh006/FF1/internal/store/application"
	"github.com/Slassh006/FF1/internal/store/domain"
	storehttp "github.com/Slassh006/FF1/internal/store/http"
	"github.com/Slassh006/FF1/internal/store/infrastructure/postgres"
	redisinfra "github.com/Slassh006/FF1/internal/store/infrastructure/redis"
	"github.com/Slassh006/FF1/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	idempotencyKeyTTL = 24 * time.Hour
	shutdownTimeout   = 10 * time.Second

	migrationsDir    = "."
	migrationsDriver = "pgx"
	migrationsSQL    = "postgres"
)

type StoreApp struct {
	cfg    StoreConfig
	logger logging.Logger

	// mu guards the fields below: Shutdown runs from another goroutine and
	// may race with Run still wiring them up.
	mu      sync.Mutex
	stopped bool
	server  *http.Server
	dbpool  *pgxpool.Pool
	rdb     *redis.Client
}

func NewStoreApp(cfg StoreConfig, logger logging.Logger) *StoreApp {
	return &StoreApp{
		cfg:    cfg,
		logger: logger,
	}
}

func (a *StoreApp) Run(ctx context.Context) error {
	logger := a.logger
	dbURL := a.cfg.DbSettings.GetUrl()

	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return nil
	}
	a.mu.Unlock()

	if err := database.MigrateDatabase(dbURL, migrations.FS, migrationsDir, migrationsDriver, migrationsSQL); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	dbpool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		dbpool.Close()
		return nil
	}
	a.dbpool = dbpool

	var idempotency domain.IdempotencyGuard
	if a.cfg.RedisAddr != "" {
		a.rdb = redis.NewClient(&redis.Options{Addr: a.cfg.RedisAddr})
		idempotency = redisinfra.NewIdempotencyGuard(a.rdb, idempotencyKeyTTL)
	}

	txManager := database.NewDelegateTxManager(dbpool, logger)
	purchaseHandler := postgres.NewPurchaseHandler(txManager)
	purchaseCase := application.NewPurchaseCase(purchaseHandler, idempotency, logger)
	catalogCase := application.NewCatalogCase(postgres.NewItemsRepository(dbpool))
	statsCase := application.NewOrderStatsCase(postgres.NewUsersRepository(dbpool), postgres.NewOrdersRepository(dbpool))

	handler := storehttp.NewStoreHandler(purchaseCase, catalogCase, statsCase, logger)
	authMiddleware := storehttp.NewAuthMiddleware(a.cfg.JwtSecret, jwt.NewJWTTokenParser())

	server := &http.Server{
		Addr:    a.cfg.HttpPort,
		Handler: storehttp.SetupRouter(handler, authMiddleware),
	}
	a.server = server
	a.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", a.cfg.HttpPort)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("failed to serve HTTP: %w", err)
			return
		}

		errChan <- nil
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errChan:
		return err
	}
}

func (a *StoreApp) Shutdown() {
	a.logger.Info("shutting down HTTP server")

	a.mu.Lock()
	a.stopped = true
	server, rdb, dbpool := a.server, a.rdb, a.dbpool
	a.mu.Unlock()

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("failed to shutdown HTTP server", "error", err)
		}
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			a.logger.Error("failed to close redis client", "error", err)
		}
	}

	if dbpool != nil {
		dbpool.Close()
	}

	a.logger.Info("HTTP server stopped")
}
