package dto

// RankingEntryDTO представляет одного пользователя в рейтинге
type RankingEntryDTO struct {
	Rank        int    `json:"rank"`         // Место пользователя в рейтинге
	FirebaseUID string `json:"firebase_uid"` // Внешний идентификатор пользователя
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	TotalScore  int64  `json:"total_score"`
	GamesPlayed int64  `json:"games_played"`
	BestScore   int64  `json:"best_score"`
}
