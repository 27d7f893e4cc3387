package service

import (
	"fmt"

	"github.com/yourusername/codebrain-api/internal/domain/entity"
	"github.com/yourusername/codebrain-api/internal/domain/repository"
	apperrors "github.com/yourusername/codebrain-api/internal/pkg/errors"
)

// QuestionService предоставляет методы для работы с банком вопросов
type QuestionService struct {
	questionRepo repository.QuestionRepository
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(questionRepo repository.QuestionRepository) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
	}
}

// CreateQuestion сохраняет новый вопрос. Вопросы неизменяемы после создания,
// поэтому вся валидация происходит здесь.
func (s *QuestionService) CreateQuestion(text, optionA, optionB, optionC, optionD, correctAnswer, difficulty, category string) (*entity.Question, error) {
	if text == "" || optionA == "" || optionB == "" || optionC == "" || optionD == "" {
		return nil, fmt.Errorf("question text and all four options are required: %w", apperrors.ErrValidation)
	}
	if !entity.IsValidAnswer(correctAnswer) {
		return nil, fmt.Errorf("correct_answer must be one of A, B, C, D: %w", apperrors.ErrValidation)
	}
	if !entity.IsValidDifficulty(difficulty) {
		return nil, fmt.Errorf("unknown difficulty %q: %w", difficulty, apperrors.ErrValidation)
	}

	question := &entity.Question{
		QuestionText:  text,
		OptionA:       optionA,
		OptionB:       optionB,
		OptionC:       optionC,
		OptionD:       optionD,
		CorrectAnswer: correctAnswer,
		Difficulty:    difficulty,
		Category:      category,
	}

	if err := s.questionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

// GetQuestions возвращает случайный набор вопросов для игровой сессии
func (s *QuestionService) GetQuestions(difficulty, category string, limit int) ([]entity.Question, error) {
	if difficulty != "" && !entity.IsValidDifficulty(difficulty) {
		return nil, fmt.Errorf("unknown difficulty %q: %w", difficulty, apperrors.ErrValidation)
	}
	if limit < 1 {
		limit = 10 // Значение по умолчанию
	} else if limit > 50 {
		limit = 50
	}

	return s.questionRepo.GetRandom(repository.QuestionFilter{
		Difficulty: difficulty,
		Category:   category,
		Limit:      limit,
	})
}
