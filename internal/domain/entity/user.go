package entity

import (
	"time"
)

// DefaultAvatar назначается пользователю при первой синхронизации
const DefaultAvatar = "avatar1"

// User представляет пользователя в системе.
// Профильные поля приходят от внешнего identity-провайдера (Firebase),
// агрегатные счётчики поддерживаются инкрементально.
type User struct {
	ID            string    `gorm:"type:varchar(255);primaryKey" json:"id"`
	FirebaseUID   string    `gorm:"size:255;not null;uniqueIndex:idx_users_firebase_uid" json:"firebase_uid"`
	FirstName     string    `gorm:"size:100;not null" json:"first_name"`
	LastName      string    `gorm:"size:100;not null" json:"last_name"`
	Email         string    `gorm:"size:255;not null;uniqueIndex:idx_users_email" json:"email"`
	BirthDate     time.Time `gorm:"type:date;not null" json:"birth_date"`
	AvatarURL     string    `gorm:"size:500" json:"avatar_url"`
	TotalScore    int64     `gorm:"not null;default:0;index:idx_users_ranking" json:"total_score"`
	GamesPlayed   int64     `gorm:"not null;default:0" json:"games_played"`
	BestScore     int64     `gorm:"not null;default:0" json:"best_score"`
	CurrentStreak int64     `gorm:"not null;default:0" json:"current_streak"`

	Games []Game `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// ApplyGameResult сворачивает результат завершённой игры в агрегатные счётчики.
// Инвариант: best_score всегда равен максимуму очков по всем играм пользователя.
// Вызывается только внутри транзакции, держащей блокировку строки пользователя.
func (u *User) ApplyGameResult(score int64) {
	u.TotalScore += score
	u.GamesPlayed++
	if score > u.BestScore {
		u.BestScore = score
	}
}

// FullName возвращает полное имя пользователя
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
