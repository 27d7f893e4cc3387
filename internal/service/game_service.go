package service

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/codebrain-api/internal/domain/entity"
	"github.com/yourusername/codebrain-api/internal/domain/repository"
	"github.com/yourusername/codebrain-api/internal/handler/dto"
	apperrors "github.com/yourusername/codebrain-api/internal/pkg/errors"
)

// GameService предоставляет методы для записи завершённых игр
type GameService struct {
	gameRepo repository.GameRepository
	userRepo repository.UserRepository
	db       *gorm.DB
}

// NewGameService создает новый сервис игр
func NewGameService(
	gameRepo repository.GameRepository,
	userRepo repository.UserRepository,
	db *gorm.DB,
) *GameService {
	return &GameService{
		gameRepo: gameRepo,
		userRepo: userRepo,
		db:       db,
	}
}

// FinishGame записывает завершённую игру и сворачивает её очки в счётчики
// пользователя как одну атомарную единицу работы.
// Строка пользователя берётся под блокировку FOR UPDATE, поэтому
// конкурентные завершения игр одного пользователя сериализуются в базе:
// блокировка на уровне хранилища, а не процесса, потому что серверных
// процессов может быть несколько.
func (s *GameService) FinishGame(
	firebaseUID, difficulty string,
	totalScore int64,
	correctAnswers, wrongAnswers, timeTaken int,
) (*dto.FinishGameResult, error) {
	if !entity.IsValidDifficulty(difficulty) {
		return nil, fmt.Errorf("unknown difficulty %q: %w", difficulty, apperrors.ErrValidation)
	}

	// Быстрый отказ до открытия транзакции, если пользователя нет
	if _, err := s.userRepo.GetByFirebaseUID(firebaseUID); err != nil {
		return nil, err
	}

	var result dto.FinishGameResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Повторное чтение под блокировкой: счётчики могли измениться
		// между быстрой проверкой и началом транзакции
		user, err := s.userRepo.GetByFirebaseUIDForUpdate(tx, firebaseUID)
		if err != nil {
			return err
		}

		game := entity.NewCompletedGame(user.ID, difficulty, totalScore, correctAnswers, wrongAnswers, timeTaken)
		if err := s.gameRepo.Create(tx, game); err != nil {
			return err
		}

		user.ApplyGameResult(totalScore)
		if err := s.userRepo.UpdateAggregates(tx, user); err != nil {
			return err
		}

		result = dto.FinishGameResult{
			GameID:      game.ID,
			TotalScore:  user.TotalScore,
			GamesPlayed: user.GamesPlayed,
			BestScore:   user.BestScore,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[GameService] Игра %d записана для %s: total=%d, games=%d, best=%d",
		result.GameID, firebaseUID, result.TotalScore, result.GamesPlayed, result.BestScore)
	return &result, nil
}

// GetUserGames возвращает историю игр пользователя, новые первыми
func (s *GameService) GetUserGames(firebaseUID string) ([]entity.Game, error) {
	user, err := s.userRepo.GetByFirebaseUID(firebaseUID)
	if err != nil {
		return nil, err
	}
	return s.gameRepo.GetByUser(user.ID)
}
