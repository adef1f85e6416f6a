package configs

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds the connection string for the configured driver. DATABASE_URL wins when set.
func (e ENV) DSN() string {
	if e.DatabaseURL != "" {
		return e.DatabaseURL
	}

	switch e.DBDriver {
	case "postgres":
		return fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			e.DBHost, e.DBUser, e.DBPassword, e.DBName, e.DBPort,
		)
	case "sqlite":
		return e.DBName + ".db"
	default:
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			e.DBUser, e.DBPassword, e.DBHost, e.DBPort, e.DBName,
		)
	}
}

func dialector(env ENV) (gorm.Dialector, error) {
	switch env.DBDriver {
	case "mysql", "":
		return mysql.Open(env.DSN()), nil
	case "postgres":
		return postgres.Open(env.DSN()), nil
	case "sqlite":
		return sqlite.Open(env.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
	}
}

func OpenConnection(env ENV) (*gorm.DB, error) {
	dial, err := dialector(env)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
	}
	if env.IsDevelopment() {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	maxRetries := env.DBMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		zap.S().Infof("Attempting to connect to %s database (attempt %d/%d)", env.DBDriver, i+1, maxRetries)

		db, err := gorm.Open(dial, gormCfg)
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					zap.S().Info("Database connection successful")
					return db, nil
				}
			}
			lastErr = pingErr
			zap.S().Warnf("Failed to ping database: %v. Retrying in %v", pingErr, env.DBRetryDelay)
		} else {
			lastErr = err
			zap.S().Warnf("Failed to open gorm connection: %v. Retrying in %v", err, env.DBRetryDelay)
		}

		if i < maxRetries-1 {
			time.Sleep(env.DBRetryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries: %w", maxRetries, lastErr)
}

// CloseConnection releases the pool behind db.
func CloseConnection(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
