package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/codebrain-api/internal/domain/entity"
	"github.com/yourusername/codebrain-api/internal/domain/repository"
	"github.com/yourusername/codebrain-api/internal/handler/dto"
	apperrors "github.com/yourusername/codebrain-api/internal/pkg/errors"
)

// UserService предоставляет методы для работы с пользователями
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// SyncUser идемпотентно синхронизирует пользователя от identity-провайдера.
// Повторный вызов с тем же firebase_uid возвращает существующую строку без
// обновления полей. Второй возвращаемый флаг — true, если пользователь создан.
func (s *UserService) SyncUser(firebaseUID, firstName, lastName, email, birthDate string) (*entity.User, bool, error) {
	if firebaseUID == "" || firstName == "" || lastName == "" || email == "" || birthDate == "" {
		return nil, false, fmt.Errorf("all fields are required: %w", apperrors.ErrValidation)
	}

	parsedBirthDate, err := normalizeBirthDate(birthDate)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.userRepo.GetByFirebaseUID(firebaseUID)
	if err == nil {
		// Пользователь уже есть: повторная синхронизация ничего не обновляет
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}

	user := &entity.User{
		ID:          uuid.NewString(),
		FirebaseUID: firebaseUID,
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		BirthDate:   parsedBirthDate,
		AvatarURL:   entity.DefaultAvatar,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// Две первые синхронизации наперегонки: уникальный индекс решил,
			// проигравший возвращает строку победителя
			if existing, readErr := s.userRepo.GetByFirebaseUID(firebaseUID); readErr == nil {
				return existing, false, nil
			}
			return nil, false, err
		}
		return nil, false, err
	}

	log.Printf("[UserService] Создан пользователь %s (firebase_uid=%s)", user.ID, firebaseUID)
	return user, true, nil
}

// GetProfile возвращает профиль пользователя по внешнему идентификатору
func (s *UserService) GetProfile(firebaseUID string) (*entity.User, error) {
	return s.userRepo.GetByFirebaseUID(firebaseUID)
}

// UpdateProfile обновляет профиль пользователя.
// Аватар — единственное частично-обновляемое поле: перезаписывается только
// если передан явно, nil оставляет прежнее значение.
func (s *UserService) UpdateProfile(firebaseUID, firstName, lastName, email, birthDate string, avatarURL *string) (*entity.User, error) {
	if firstName == "" || lastName == "" || email == "" || birthDate == "" {
		return nil, fmt.Errorf("all fields are required: %w", apperrors.ErrValidation)
	}

	parsedBirthDate, err := normalizeBirthDate(birthDate)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
		"birth_date": parsedBirthDate,
	}
	if avatarURL != nil {
		updates["avatar_url"] = *avatarURL
	}

	if err := s.userRepo.UpdateProfile(firebaseUID, updates); err != nil {
		return nil, err
	}

	return s.userRepo.GetByFirebaseUID(firebaseUID)
}

// UpdateStats сворачивает очки одной игры в счётчики пользователя.
// Рекорд считает база через GREATEST; присланный клиентом флаг is_best_score
// принимается для совместимости, но игнорируется.
func (s *UserService) UpdateStats(firebaseUID string, score int64) (*repository.UserStats, error) {
	stats, err := s.userRepo.ApplyScore(firebaseUID, score)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// DeleteUser удаляет пользователя и каскадно все его игры
func (s *UserService) DeleteUser(firebaseUID string) error {
	return s.userRepo.Delete(firebaseUID)
}

// GetRanking возвращает рейтинг пользователей по total_score
func (s *UserService) GetRanking(limit int) ([]*dto.RankingEntryDTO, error) {
	if limit < 1 {
		limit = 10 // Значение по умолчанию
	} else if limit > 100 {
		limit = 100 // Максимальный лимит
	}

	users, err := s.userRepo.GetRanking(limit)
	if err != nil {
		log.Printf("[UserService] Ошибка при получении рейтинга из репозитория: %v", err)
		return nil, err
	}

	entries := make([]*dto.RankingEntryDTO, len(users))
	for i, user := range users {
		entries[i] = &dto.RankingEntryDTO{
			Rank:        i + 1,
			FirebaseUID: user.FirebaseUID,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			TotalScore:  user.TotalScore,
			GamesPlayed: user.GamesPlayed,
			BestScore:   user.BestScore,
		}
	}

	return entries, nil
}

// normalizeBirthDate приводит дату рождения к дате без времени.
// Клиенты присылают как "2000-01-31", так и ISO-строку с временем —
// всё после 'T' отбрасывается до парсинга.
func normalizeBirthDate(birthDate string) (time.Time, error) {
	datePart, _, _ := strings.Cut(birthDate, "T")
	parsed, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid birth_date %q: %w", birthDate, apperrors.ErrValidation)
	}
	return parsed, nil
}
