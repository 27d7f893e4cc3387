package entity

import (
	"time"
)

// Варианты ответа на вопрос
const (
	AnswerA = "A"
	AnswerB = "B"
	AnswerC = "C"
	AnswerD = "D"
)

// Уровни сложности
const (
	DifficultyBasic        = "basic"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Question представляет один вопрос викторины с четырьмя вариантами ответа.
// После создания вопрос неизменяем.
type Question struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	QuestionText  string    `gorm:"type:text;not null" json:"question_text"`
	OptionA       string    `gorm:"size:255;not null" json:"option_a"`
	OptionB       string    `gorm:"size:255;not null" json:"option_b"`
	OptionC       string    `gorm:"size:255;not null" json:"option_c"`
	OptionD       string    `gorm:"size:255;not null" json:"option_d"`
	CorrectAnswer string    `gorm:"size:1;not null" json:"-"` // Скрыто от клиента
	Difficulty    string    `gorm:"size:20;not null;index:idx_questions_difficulty" json:"difficulty"`
	Category      string    `gorm:"size:100" json:"category,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	Scores []Score `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q *Question) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer
}

// IsValidAnswer проверяет, что метка варианта принадлежит набору A-D
func IsValidAnswer(answer string) bool {
	switch answer {
	case AnswerA, AnswerB, AnswerC, AnswerD:
		return true
	}
	return false
}

// IsValidDifficulty проверяет, что уровень сложности принадлежит известным ярусам
func IsValidDifficulty(difficulty string) bool {
	switch difficulty {
	case DifficultyBasic, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}
