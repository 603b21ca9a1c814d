package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config holds database connection configuration.
type Config struct {
	Driver       string // "mysql" or "sqlite"
	Host         string
	Port         int
	User         string
	Password     string
	Database     string // sqlite: file path or ":memory:"
	MaxOpenConns int
	MaxIdleConns int
}

// DSN builds the driver specific data source name.
func (c Config) DSN() string {
	if c.driver() == "sqlite" {
		return c.Database
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&multiStatements=true",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

func (c Config) driver() string {
	d := strings.ToLower(c.Driver)
	if d == "" {
		return "mysql"
	}
	return d
}

// Connect opens a GORM connection and applies pool limits.
func Connect(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.driver() {
	case "mysql":
		dialector = mysql.Open(cfg.DSN())
	case "sqlite":
		if cfg.Database == "" {
			return nil, fmt.Errorf("sqlite database path cannot be empty")
		}
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
