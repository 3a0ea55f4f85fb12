package database

import (
	"fmt"
	"lms/config"
	"lms/models"
	"lms/models/course"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDb opens the PostgreSQL connection described by cfg and tunes the pool.
// The handle is returned to the caller; nothing is stored globally.
func ConnectDb(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
	)

	logLevel := gormlogger.Info
	if cfg.IsProduction() {
		logLevel = gormlogger.Warn
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect to postgres")
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get database instance")
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(0)

	return db, nil
}

// Migrate creates or updates every table together with the unique indexes
// and cascading foreign keys declared on the models. Call it once at startup.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.LoginTracking{},
		&course.Class{},
		&course.Student{},
		&course.Module{},
		&course.SubModule{},
		&course.QuestionGroup{},
		&course.Question{},
		&course.Score{},
		&course.AnswerDetail{},
		&course.Progress{},
	)
	if err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return nil
}
