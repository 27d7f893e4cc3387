package repository

import (
	"github.com/yourusername/codebrain-api/internal/domain/entity"
)

// QuestionFilter задаёт необязательные фильтры выборки вопросов
type QuestionFilter struct {
	Difficulty string
	Category   string
	Limit      int
}

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	Create(question *entity.Question) error
	// GetRandom возвращает случайный набор вопросов под фильтр.
	GetRandom(filter QuestionFilter) ([]entity.Question, error)
}
