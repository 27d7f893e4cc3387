package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/codebrain-api/internal/domain/entity"
)

// GameRepo реализует repository.GameRepository
type GameRepo struct {
	db *gorm.DB
}

// NewGameRepo создает новый репозиторий игр
func NewGameRepo(db *gorm.DB) *GameRepo {
	return &GameRepo{db: db}
}

// Create вставляет запись игры в переданной транзакции
func (r *GameRepo) Create(tx *gorm.DB, game *entity.Game) error {
	return tx.Create(game).Error
}

// GetByUser возвращает игры пользователя, новые первыми
func (r *GameRepo) GetByUser(userID string) ([]entity.Game, error) {
	var games []entity.Game
	err := r.db.Where("user_id = ?", userID).
		Order("completed_at DESC, id DESC").
		Find(&games).Error
	// Пустой слайс — валидный результат, ErrRecordNotFound здесь не бывает
	return games, err
}
