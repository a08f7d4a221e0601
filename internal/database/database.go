package database

import (
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"photoshare/backend/internal/models"
	applog "photoshare/backend/pkg/logger"
)

var DB *gorm.DB

// Connect initializes the database connection and runs migrations.
// TranslateError is on so a duplicate-key violation surfaces as
// gorm.ErrDuplicatedKey; the like upsert depends on that.
func Connect(dsn string) {
	var err error

	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         customLogger,
		TranslateError: true,
	})
	if err != nil {
		applog.L.Fatal("failed to connect to database", zap.Error(err))
	}

	applog.L.Info("database connection established")

	if err := Migrate(DB); err != nil {
		applog.L.Fatal("failed to migrate database", zap.Error(err))
	}
}

// Migrate runs the schema migrations for every model. Users go first so
// the follow join table and the restrict/cascade constraints on posts,
// comments and likes can reference them.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}, &models.Like{})
}
