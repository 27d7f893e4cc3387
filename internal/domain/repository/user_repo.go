package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/codebrain-api/internal/domain/entity"
)

// UserStats содержит агрегатные счётчики пользователя после атомарного обновления
type UserStats struct {
	TotalScore  int64 `json:"total_score"`
	GamesPlayed int64 `json:"games_played"`
	BestScore   int64 `json:"best_score"`
}

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByFirebaseUID(firebaseUID string) (*entity.User, error)
	// GetByFirebaseUIDForUpdate читает пользователя с блокировкой строки (FOR UPDATE).
	// Обязан вызываться внутри транзакции tx.
	GetByFirebaseUIDForUpdate(tx *gorm.DB, firebaseUID string) (*entity.User, error)
	UpdateProfile(firebaseUID string, updates map[string]interface{}) error
	// ApplyScore атомарно добавляет score к total_score, увеличивает games_played
	// и поднимает best_score до max(best_score, score) одним выражением.
	ApplyScore(firebaseUID string, score int64) (*UserStats, error)
	// UpdateAggregates сохраняет пересчитанные счётчики внутри транзакции tx.
	UpdateAggregates(tx *gorm.DB, user *entity.User) error
	Delete(firebaseUID string) error
	// GetRanking возвращает пользователей, отсортированных по total_score DESC.
	GetRanking(limit int) ([]entity.User, error)
}
