// connection.go
//
// Audit store connection handling. The audit database is deployment
// configuration: embedded sqlite by default, or a shared mysql/postgres/
// sqlserver instance when several intake processes report to one trail.

package database

import (
	"fmt"

	"github.com/mindfulway/intake-backend/internal/config"
	"github.com/mindfulway/intake-backend/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect establishes the audit database connection based on AUDIT_DB_TYPE
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.AuditDBType {
	case "mysql", "mariadb":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.AuditDBUser,
			cfg.AuditDBPassword,
			cfg.AuditDBHost,
			cfg.AuditDBPort,
			cfg.AuditDBDatabase,
		)
		dialector = mysql.Open(dsn)

	case "postgres", "postgresql":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.AuditDBHost,
			cfg.AuditDBUser,
			cfg.AuditDBPassword,
			cfg.AuditDBDatabase,
			cfg.AuditDBPort,
		)
		dialector = postgres.Open(dsn)

	case "sqlite":
		// For SQLite, AuditDBDatabase is the file path
		dialector = sqlite.Open(cfg.AuditDBDatabase)

	case "sqlserver", "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			cfg.AuditDBUser,
			cfg.AuditDBPassword,
			cfg.AuditDBHost,
			cfg.AuditDBPort,
			cfg.AuditDBDatabase,
		)
		dialector = sqlserver.Open(dsn)

	default:
		return nil, fmt.Errorf("unsupported audit database type: %s", cfg.AuditDBType)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to audit database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.AuditDBConnectionLimit)
	sqlDB.SetMaxIdleConns(cfg.AuditDBConnectionLimit / 2)

	return db, nil
}

// AutoMigrate runs automatic migrations for the audit models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.AuditEvent{})
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
