package entity

import (
	"time"
)

// Score представляет один ответ на вопрос внутри игры.
// Таблица создаётся при старте вместе с остальными, но поход-за-походом
// отправка ответов пока не входит в API: строки пишутся только будущими клиентами.
type Score struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	GameID       uint      `gorm:"not null;index:idx_scores_game" json:"game_id"`
	QuestionID   uint      `gorm:"not null;index" json:"question_id"`
	UserAnswer   string    `gorm:"size:1;not null" json:"user_answer"`
	IsCorrect    bool      `gorm:"not null" json:"is_correct"`
	PointsEarned int       `gorm:"not null;default:0" json:"points_earned"`
	AnsweredAt   time.Time `gorm:"not null" json:"answered_at"`
}

// TableName определяет имя таблицы для GORM
func (Score) TableName() string {
	return "scores"
}
