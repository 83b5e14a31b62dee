// Package repositories provides the data access layer for the wallet
// ledger: wallet rows, the append-only transaction log, and transfers.
package repositories

import (
	"fmt"
	"log"
	"os"
	"time"

	"lirapay/internal/config"
	"lirapay/internal/models"
	"lirapay/internal/repositories/cache"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DBConfig holds database connection pool configuration
type DBConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// InitDB opens the PostgreSQL connection, runs migrations and returns the
// database handle plus the redis-backed cache service. Callers own both and
// pass them explicitly to the services that need them.
func InitDB() (*gorm.DB, *cache.CacheService, error) {
	db, err := initPostgres()
	if err != nil {
		return nil, nil, err
	}

	redisCfg := &cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	}
	redisClient := cache.NewRedisClient(redisCfg)
	cacheService := cache.NewCacheService(redisClient, 24*time.Hour)

	if err := db.AutoMigrate(
		&models.Wallet{},
		&models.Transaction{},
		&models.Transfer{},
	); err != nil {
		return nil, nil, fmt.Errorf("migration failed: %w", err)
	}

	// Balances must stay non-negative even if a bug slips past the policy
	// layer. Errors are ignored when the constraints already exist.
	db.Exec("ALTER TABLE wallets ADD CONSTRAINT chk_wallets_balance_usd CHECK (balance_usd >= 0)")
	db.Exec("ALTER TABLE wallets ADD CONSTRAINT chk_wallets_balance_lbp CHECK (balance_lbp >= 0)")
	db.Exec("ALTER TABLE wallets ADD CONSTRAINT chk_wallets_balance_eur CHECK (balance_eur >= 0)")
	db.Exec("ALTER TABLE wallet_transactions ADD CONSTRAINT chk_wallet_transactions_amount CHECK (amount > 0)")

	log.Println("PostgreSQL connected & migrations applied")
	return db, cacheService, nil
}

func initPostgres() (*gorm.DB, error) {
	dsn := "host=" + config.GetEnv("DB_HOST", "localhost") +
		" user=" + config.GetEnv("DB_USER", "postgres") +
		" password=" + config.GetEnv("DB_PASSWORD", "postgres") +
		" dbname=" + config.GetEnv("DB_NAME", "lirapay") +
		" port=" + config.GetEnv("DB_PORT", "5432") +
		" sslmode=" + config.GetEnv("DB_SSLMODE", "disable")

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  !config.IsProduction(),
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	poolCfg := DBConfig{
		MaxIdleConns:    config.GetIntEnv("DB_MAX_IDLE_CONNS", 10),
		MaxOpenConns:    config.GetIntEnv("DB_MAX_OPEN_CONNS", 100),
		ConnMaxLifetime: config.GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		ConnMaxIdleTime: config.GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
	}
	sqlDB.SetMaxIdleConns(poolCfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(poolCfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(poolCfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(poolCfg.ConnMaxIdleTime)

	return db, nil
}
