package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/codebrain-api/internal/domain/entity"
	"github.com/yourusername/codebrain-api/internal/domain/repository"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create сохраняет новый вопрос
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// GetRandom возвращает случайный набор вопросов под фильтр.
// RANDOM() приемлем на объёмах банка вопросов этой системы.
func (r *QuestionRepo) GetRandom(filter repository.QuestionFilter) ([]entity.Question, error) {
	query := r.db.Model(&entity.Question{})
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var questions []entity.Question
	err := query.Order("RANDOM()").Limit(filter.Limit).Find(&questions).Error
	return questions, err
}
