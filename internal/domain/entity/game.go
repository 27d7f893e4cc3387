package entity

import (
	"time"
)

// Game представляет одну завершённую игровую сессию пользователя.
// Система моделирует только отправку готового результата: запись создаётся
// сразу со статусом completed и больше не изменяется.
type Game struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"type:varchar(255);not null;index:idx_games_user" json:"user_id"`
	Difficulty     string    `gorm:"size:20;not null;index:idx_games_difficulty" json:"difficulty"`
	TotalScore     int64     `gorm:"not null;default:0" json:"total_score"`
	CorrectAnswers int       `gorm:"not null;default:0" json:"correct_answers"`
	WrongAnswers   int       `gorm:"not null;default:0" json:"wrong_answers"`
	TimeTaken      int       `gorm:"not null;default:0" json:"time_taken"` // Секунды, сообщает клиент
	Completed      bool      `gorm:"not null;default:false" json:"completed"`
	StartedAt      time.Time `gorm:"not null" json:"started_at"`
	CompletedAt    time.Time `json:"completed_at"`

	Scores []Score `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Game) TableName() string {
	return "games"
}

// NewCompletedGame создаёт запись игры, которая сразу помечена завершённой.
// started_at и completed_at совпадают: система не отслеживает ход игры,
// time_taken приходит от клиента как есть.
func NewCompletedGame(userID, difficulty string, totalScore int64, correct, wrong, timeTaken int) *Game {
	now := time.Now()
	return &Game{
		UserID:         userID,
		Difficulty:     difficulty,
		TotalScore:     totalScore,
		CorrectAnswers: correct,
		WrongAnswers:   wrong,
		TimeTaken:      timeTaken,
		Completed:      true,
		StartedAt:      now,
		CompletedAt:    now,
	}
}
