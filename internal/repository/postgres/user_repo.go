package postgres

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/codebrain-api/internal/domain/entity"
	"github.com/yourusername/codebrain-api/internal/domain/repository"
	apperrors "github.com/yourusername/codebrain-api/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create создает нового пользователя
func (r *UserRepo) Create(user *entity.User) error {
	err := r.db.Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict
		}
		return err
	}
	return nil
}

// GetByFirebaseUID возвращает пользователя по внешнему идентификатору
func (r *UserRepo) GetByFirebaseUID(firebaseUID string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByFirebaseUIDForUpdate читает пользователя с блокировкой строки (SELECT ... FOR UPDATE).
// Конкурентные FinishGame для одного пользователя сериализуются на этой блокировке.
func (r *UserRepo) GetByFirebaseUIDForUpdate(tx *gorm.DB, firebaseUID string) (*entity.User, error) {
	var user entity.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("firebase_uid = ?", firebaseUID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile обновляет профиль пользователя.
// Обновляются только поля из updates: параметризованный запрос собирает GORM,
// конфликт уникального email транслируется в ErrConflict.
func (r *UserRepo) UpdateProfile(firebaseUID string, updates map[string]interface{}) error {
	// Агрегатные счётчики через этот метод не трогаем
	delete(updates, "total_score")
	delete(updates, "games_played")
	delete(updates, "best_score")
	delete(updates, "current_streak")

	updates["updated_at"] = time.Now()

	result := r.db.Model(&entity.User{}).
		Where("firebase_uid = ?", firebaseUID).
		Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ApplyScore атомарно сворачивает очки в счётчики одним выражением.
// best_score всегда считается на стороне БД через GREATEST: клиентскому
// флагу "это рекорд" система не доверяет.
func (r *UserRepo) ApplyScore(firebaseUID string, score int64) (*repository.UserStats, error) {
	var stats repository.UserStats
	result := r.db.Raw(`
		UPDATE users
		SET total_score  = total_score + ?,
		    games_played = games_played + 1,
		    best_score   = GREATEST(best_score, ?),
		    updated_at   = NOW()
		WHERE firebase_uid = ?
		RETURNING total_score, games_played, best_score`,
		score, score, firebaseUID,
	).Scan(&stats)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &stats, nil
}

// UpdateAggregates сохраняет пересчитанные счётчики пользователя внутри транзакции tx.
// Строка пользователя должна быть уже взята под блокировку GetByFirebaseUIDForUpdate.
func (r *UserRepo) UpdateAggregates(tx *gorm.DB, user *entity.User) error {
	return tx.Model(&entity.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"total_score":  user.TotalScore,
			"games_played": user.GamesPlayed,
			"best_score":   user.BestScore,
			"updated_at":   time.Now(),
		}).Error
}

// Delete удаляет пользователя; игры и их scores каскадно удаляет БД
func (r *UserRepo) Delete(firebaseUID string) error {
	result := r.db.Where("firebase_uid = ?", firebaseUID).Delete(&entity.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	log.Printf("[UserRepo] Пользователь %s удалён вместе с играми", firebaseUID)
	return nil
}

// GetRanking возвращает пользователей, отсортированных по total_score DESC.
// Вторичный ключ id ASC фиксирует порядок при равных очках.
func (r *UserRepo) GetRanking(limit int) ([]entity.User, error) {
	var users []entity.User
	err := r.db.Model(&entity.User{}).
		Select("id", "firebase_uid", "first_name", "last_name", "total_score", "games_played", "best_score").
		Order("total_score DESC, id ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
