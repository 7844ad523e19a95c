package database

import (
	"context"
	"fmt"
	"time"

	"products-api/internal/config"
	"products-api/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Log messages for the startup connection check.
const (
	MsgConnectionFailed    = "Error al conectarse a la base de datos"
	MsgConnectionSucceeded = "Conexión exitosa a la BD"
)

// Open prepares a GORM handle for the configured driver. It does not touch
// the network; call Connect to check that the database answers.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	logLevel := gormlogger.Warn
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DatabaseDriver, err)
	}
	return db, nil
}

// Connect pings the database and migrates the schema when autoMigrate is set.
// Failures are logged and returned; callers keep running without storage.
func Connect(ctx context.Context, db *gorm.DB, autoMigrate bool, log *zap.Logger) error {
	if err := connect(ctx, db, autoMigrate); err != nil {
		log.Error(MsgConnectionFailed, zap.Error(err))
		return err
	}
	log.Info(MsgConnectionSucceeded)
	return nil
}

func connect(ctx context.Context, db *gorm.DB, autoMigrate bool) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if autoMigrate {
		if err := Migrate(db.WithContext(ctx)); err != nil {
			return err
		}
	}
	return nil
}

// Migrate creates or updates the schema of every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}
