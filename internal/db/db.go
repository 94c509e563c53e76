package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/portfolio-labs/advisory-scheduler/internal/config"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Availability{},
		&models.Advisory{},
		&models.RefreshToken{},
		&models.NotificationLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Hard conflict invariant: at most one live booking per
	// (programmer, slot). The engine also checks inside its create
	// transaction; the index is the backstop across instances.
	if err := db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_advisories_live_slot
        ON advisories (programmer_id, scheduled_at)
        WHERE status IN ('PENDING', 'APPROVED')
    `).Error; err != nil {
		log.Fatalf("failed to create live slot index: %v", err)
	}

	return db
}
