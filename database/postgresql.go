package database

import (
	"DentalClinic/models"
	"DentalClinic/utils"
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance.
var DB *gorm.DB

// InitDB opens the database, checks it and brings the schema up to date.
func InitDB(ctx context.Context, dsn string, env string) (*gorm.DB, error) {
	if err := Open(ctx, dsn, env); err != nil {
		return nil, err
	}

	if err := Migrate(DB); err != nil {
		return nil, err
	}

	utils.Logger.Info().Msg("database initialized successfully")
	return DB, nil
}

// Open connects to postgres and configures the pool without migrating.
func Open(ctx context.Context, dsn string, env string) error {
	var err error

	logMode := logger.Silent
	if env == "development" {
		logMode = logger.Info
	}

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: false,
		PrepareStmt:                              true,
		Logger:                                   logger.Default.LogMode(logMode),
	})
	if err != nil {
		return errors.Wrap(err, "failed to open database connection")
	}

	if err := configureConnectionPool(); err != nil {
		return err
	}
	return testDatabaseConnection(ctx)
}

// Migrate creates or updates every table and seeds the roles.
func Migrate(db *gorm.DB) error {
	if err := runMigrations(db); err != nil {
		return errors.Wrap(err, "failed to run migrations")
	}
	if err := models.SeedRoles(db); err != nil {
		return errors.Wrap(err, "failed to seed roles")
	}
	return nil
}

func configureConnectionPool() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	sqlDB.SetMaxOpenConns(40)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

func testDatabaseConnection(ctx context.Context) error {
	sqlDB, err := DB.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping database")
	}
	return nil
}

func runMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Patient{},
		&models.Order{},
		&models.Appointment{},
		&models.MedicalFinding{},
		&models.HealthInfo{},
		&models.Image{},
		&models.Service{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.PaymentHistory{},
		&models.Card{},
		&models.Expense{},
	)
}

// Close releases the pool.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	return sqlDB.Close()
}
