package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/glowupapps/salon-scheduler/internal/config"
	"github.com/glowupapps/salon-scheduler/internal/models"
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
		&models.Salon{},
		&models.Service{},
		&models.Stylist{},
		&models.Appointment{},
		&models.Rating{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Rede extra no banco contra double-booking: constraint de exclusão
	// sobre o intervalo [start_time, end_time) por estilista enquanto o
	// agendamento estiver ativo. A transação serializável já garante a
	// correção; isto mantém o invariante mesmo para escritas manuais.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            stylist_id WITH =,
            tsrange(start_time, end_time, '[)') WITH &&
        )
        WHERE (status IN ('pending', 'confirmed'))
    `)

	return db
}
