package db

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"alumnihub/portal/internal/logging"
)

// Process-wide GORM handle. Initialized lazily on first use, reused by
// every subsequent operation, and re-initialized only after a detected
// failure (Reset).
var (
	ormMu  sync.Mutex
	ormDB  *gorm.DB
	ormDSN string
)

// Configure records the DSN used for lazy initialization. Call once at
// startup before any Get.
func Configure(dsn string) {
	ormMu.Lock()
	defer ormMu.Unlock()
	ormDSN = dsn
}

// Get returns the shared GORM handle, connecting on first use. Safe for
// concurrent callers.
func Get() (*gorm.DB, error) {
	ormMu.Lock()
	defer ormMu.Unlock()

	if ormDB != nil {
		return ormDB, nil
	}
	if ormDSN == "" {
		return nil, fmt.Errorf("db: Configure was not called")
	}

	var err error
	for i := 0; i < 10; i++ {
		var conn *gorm.DB
		// TranslateError maps driver duplicate-key failures onto
		// gorm.ErrDuplicatedKey so repositories can detect races on
		// unique columns portably.
		conn, err = gorm.Open(postgres.Open(ormDSN), &gorm.Config{TranslateError: true})
		if err == nil {
			ormDB = conn
			logging.Info("Connected to Postgres via GORM")
			return ormDB, nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return nil, fmt.Errorf("failed to connect to postgres: %w", err)
}

// Reset discards the shared handle after a detected failure; the next Get
// reconnects.
func Reset() {
	ormMu.Lock()
	defer ormMu.Unlock()
	if ormDB != nil {
		if sqlDB, err := ormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
		ormDB = nil
		logging.Warn("Postgres connection reset; will reconnect on next use")
	}
}

// Close tears down the shared handle at shutdown.
func Close() error {
	ormMu.Lock()
	defer ormMu.Unlock()
	if ormDB == nil {
		return nil
	}
	sqlDB, err := ormDB.DB()
	if err != nil {
		return err
	}
	ormDB = nil
	return sqlDB.Close()
}
