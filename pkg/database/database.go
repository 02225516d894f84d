package database

import (
	"context"
	"fmt"

	"github.com/BlackWidow29/Entrevista-Docket/internal/model"
	"github.com/BlackWidow29/Entrevista-Docket/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SequenceName is the sequence every entity identifier is drawn from
const SequenceName = "sequence_generator"

// InitDB opens the PostgreSQL connection and applies the pool settings
func InitDB(dbConfig *config.DBConfig) (*gorm.DB, error) {
	pgConfig := postgres.Config{
		DSN:                  dbConfig.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(dbConfig.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	if dbConfig.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	}
	if dbConfig.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	}
	if dbConfig.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)
	}

	return db, nil
}

// EnsureSequence creates the identifier sequence if it does not exist yet
func EnsureSequence(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).
		Exec("CREATE SEQUENCE IF NOT EXISTS " + SequenceName + " START WITH 1000 INCREMENT BY 1").Error
	if err != nil {
		return fmt.Errorf("failed to create identifier sequence: %w", err)
	}
	return nil
}

// Migrate creates the identifier sequence and the registry and certificate tables
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := EnsureSequence(ctx, db); err != nil {
		return err
	}

	if err := db.WithContext(ctx).AutoMigrate(&model.Registry{}, &model.Certificate{}); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	return nil
}

// Ping checks that the database answers
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
