package dto

// FinishGameResult содержит идентификатор созданной игры и свежие агрегаты
// пользователя, пересчитанные в той же транзакции.
// Имена полей в camelCase: такой формат ожидают мобильные клиенты.
type FinishGameResult struct {
	GameID      uint  `json:"gameId"`
	TotalScore  int64 `json:"totalScore"`
	GamesPlayed int64 `json:"gamesPlayed"`
	BestScore   int64 `json:"bestScore"`
}
