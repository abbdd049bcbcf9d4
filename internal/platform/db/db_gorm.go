// Package db opens the process-wide database handle.
package db

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"auth_backend/internal/feature/auth/domain/entity"
)

var (
	once     sync.Once
	instance *gorm.DB
)

// Open returns the shared gorm handle, initializing it on first use.
// The connection pool is a process-wide singleton with no teardown beyond
// process exit; sync.Once guards initialization across goroutines.
func Open() *gorm.DB {
	once.Do(func() {
		instance = open()
	})
	return instance
}

func open() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		host := os.Getenv("DB_HOST")
		port := os.Getenv("DB_PORT")
		user := os.Getenv("DB_USER")
		pass := os.Getenv("DB_PASSWORD")
		name := os.Getenv("DB_NAME")
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, pass, name)
	}

	var (
		db  *gorm.DB
		err error
	)

	// TranslateErrorでユニーク制約違反をgorm.ErrDuplicatedKeyに変換
	cfg := &gorm.Config{TranslateError: true}

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(&entity.User{}); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
