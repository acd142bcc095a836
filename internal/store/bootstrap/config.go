package bootstrap

import "github.com/Slassh006/FF1/internal/pkg/database"

type StoreConfig struct {
	DbSettings database.PostgresSettings
	JwtSecret  string
	HttpPort   string

	// RedisAddr enables the purchase idempotency guard when set.
	RedisAddr string
}
