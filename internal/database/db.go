package database

import (
	"sync"
	"time"

	"ai-study-buddy/config"
	"ai-study-buddy/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var (
	db *gorm.DB
	mu sync.Mutex
)

// connect opens the DB and applies pool configuration
func connect() (*gorm.DB, error) {
	conn, err := gorm.Open(mysql.Open(config.Cfg.Dns), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(config.Cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.Cfg.Database.MaxOpenConns)
	lifetime := time.Duration(config.Cfg.Database.MaxLifetime) * time.Minute
	sqlDB.SetConnMaxIdleTime(lifetime)
	sqlDB.SetConnMaxLifetime(lifetime)

	return conn, nil
}

// ensureConnection verifies DB connectivity and reconnects if needed
func ensureConnection() error {
	if db == nil {
		conn, err := connect()
		if err != nil {
			return err
		}
		db = conn
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Ping(); err != nil {
		conn, err := connect()
		if err != nil {
			return err
		}
		db = conn
	}
	return nil
}

// GetDB returns a healthy *gorm.DB, attempting reconnect if necessary
func GetDB() (*gorm.DB, error) {
	mu.Lock()
	defer mu.Unlock()
	if err := ensureConnection(); err != nil {
		logger.Error(err, "%v: failed to get database connection", config.ModuleDatabase)
		return nil, err
	}
	return db, nil
}
