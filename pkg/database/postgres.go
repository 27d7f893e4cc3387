package database

import (
	"fmt"
	"log"
	"time"

	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/codebrain-api/internal/domain/entity"
)

// NewPostgresDB создает новое подключение к PostgreSQL
func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Транслируем ошибки драйвера в gorm.ErrDuplicatedKey и т.п.,
		// репозитории опираются на это при обработке уникальных индексов
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Настройка пула соединений
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Ограниченный пул: всплеск запросов деградирует в ожидание,
	// а не в исчерпание соединений
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// ProvisionSchema идемпотентно создаёт схему при старте.
// AutoMigrate создаёт отсутствующие таблицы, индексы и внешние ключи
// (включая каскадные удаления) и безопасен при каждом запуске.
func ProvisionSchema(db *gorm.DB) error {
	log.Println("Проверка и создание схемы базы данных...")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.Question{},
		&entity.Game{},
		&entity.Score{},
	)
	if err != nil {
		return fmt.Errorf("failed to provision schema: %w", err)
	}

	log.Println("Схема базы данных готова.")
	return nil
}
