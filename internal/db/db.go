package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/config"
	"github.com/semprecheioapp/semprecheioapp-sub001/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Client{},
		&models.User{},
		&models.Specialty{},
		&models.Professional{},
		&models.Service{},
		&models.Customer{},
		&models.Availability{},
		&models.Appointment{},
		&models.Subscription{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	// No máximo uma reserva viva por janela: o índice parcial é a garantia
	// final contra reserva dupla quando duas requisições disputam o slot.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uniq_live_appointment_slot
        ON appointments (availability_id)
        WHERE status <> 'cancelled'
    `)

	// Nunca duas janelas concretas idênticas para o mesmo profissional.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uniq_concrete_availability
        ON professional_availability (professional_id, date, start_time, end_time)
        WHERE date IS NOT NULL
    `)

	db.Exec(`
        UPDATE clients
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
