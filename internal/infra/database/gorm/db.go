package gorm

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"surfcast-api/pkg/resource"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config selects the database driver. Dsn wins over the discrete postgres fields when set.
type Config struct {
	Driver   string
	Dsn      string
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Schema   string
	MaxOpen  int
	MaxIdle  int
	LogLevel string
}

// ConfigFromProperties reads app.db.* from the application properties
func ConfigFromProperties() Config {
	return Config{
		Driver:   resource.GetString("app.db.driver"),
		Dsn:      resource.GetString("app.db.dsn"),
		Host:     resource.GetString("app.db.host"),
		Port:     resource.GetString("app.db.port"),
		Username: resource.GetString("app.db.username"),
		Password: resource.GetString("app.db.password"),
		Database: resource.GetString("app.db.database"),
		Schema:   resource.GetString("app.db.schema"),
		MaxOpen:  resource.GetInt("app.db.max-open-conns"),
		MaxIdle:  resource.GetInt("app.db.max-idle-conns"),
		LogLevel: resource.GetString("app.db.log-level"),
	}
}

func (c Config) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case DriverSQLite:
		dsn := c.Dsn
		if dsn == "" {
			dsn = "surfcast.db"
		}
		return sqlite.Open(dsn), nil
	case DriverPostgres, "":
		dsn := c.Dsn
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable search_path=%s",
				c.Host, c.Username, c.Password, c.Database, c.Port, c.Schema)
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// Open connects with the configured driver and sizes the connection pool
func Open(c Config) (*gorm.DB, error) {
	dialector, err := c.dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(logLevel(c.LogLevel))})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if c.Driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		if c.MaxOpen > 0 {
			sqlDB.SetMaxOpenConns(c.MaxOpen)
		}
		if c.MaxIdle > 0 {
			sqlDB.SetMaxIdleConns(c.MaxIdle)
		}
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

func logLevel(level string) gormlogger.LogLevel {
	switch level {
	case "info":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Silent
	}
}
