package database

import (
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens (or creates) the local sqlite database and migrates the
// given models. The backend is single-user and local, so sqlite with a
// single writer connection is all it needs.
func InitDB(path string, models ...interface{}) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to open database %s: %v", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to access underlying sql.DB: %v", err)
	}
	// sqlite: one writer avoids SQLITE_BUSY under concurrent handlers.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			log.Fatalf("auto migration failed: %v", err)
		}
	}

	log.Printf("[Database] connected (%s)", path)
	return db
}
