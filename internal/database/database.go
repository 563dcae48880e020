// Package database opens the gorm connection and migrates the schema.
package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"socialfeed/internal/config"
	"socialfeed/internal/models"
)

// Open connects to PostgreSQL when cfg.Host is set and to SQLite otherwise.
// Duplicate-key errors are translated to gorm.ErrDuplicatedKey for both.
func Open(cfg config.DatabaseConfig, logger logrus.FieldLogger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         newGormLogger(logger),
	}

	var (
		db  *gorm.DB
		err error
	)
	if cfg.UsePostgres() {
		logger.WithField("host", cfg.Host).Info("Connecting to PostgreSQL database")
		db, err = gorm.Open(postgres.Open(cfg.PostgresDSN()), gormCfg)
	} else {
		logger.WithField("path", cfg.Path).Info("Connecting to SQLite database")
		db, err = gorm.Open(sqlite.Open(sqliteDSN(cfg.Path)), gormCfg)
	}
	if err != nil {
		logger.WithError(err).Error("Failed to connect to the database")
		return nil, fmt.Errorf("open database: %w", err)
	}

	if !cfg.UsePostgres() {
		// SQLite allows a single writer; one connection avoids SQLITE_BUSY.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	logger.Info("Database connection successful")
	return db, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Follower{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func newGormLogger(logger logrus.FieldLogger) gormlogger.Interface {
	return gormlogger.New(printfLogger{logger}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

type printfLogger struct {
	logger logrus.FieldLogger
}

func (p printfLogger) Printf(format string, args ...interface{}) {
	p.logger.WithField("component", "gorm").Warnf(format, args...)
}
