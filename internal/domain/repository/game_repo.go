package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/codebrain-api/internal/domain/entity"
)

// GameRepository определяет методы для работы с играми
type GameRepository interface {
	// Create вставляет запись игры внутри транзакции tx.
	Create(tx *gorm.DB, game *entity.Game) error
	// GetByUser возвращает игры пользователя, новые первыми.
	GetByUser(userID string) ([]entity.Game, error)
}
