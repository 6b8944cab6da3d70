package infra

import (
	"fmt"

	"automotora/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// for the whole schema. TranslateError is required so unique and foreign key
// violations surface as gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated and
// the service layer can map them onto the domain taxonomy.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return db, nil
}

// RunMigrations creates or updates all tables. Usuario.ID defaults to
// gen_random_uuid(), so pgcrypto must be available first (built in since
// PostgreSQL 13).
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Cliente{},
		&model.Usuario{},
		&model.Vehiculo{},
		&model.Pago{},
		&model.NotaVenta{},
		&model.HistorialVehiculo{},
	)
}
