package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/codebrain-api/internal/pkg/errors"
	"github.com/yourusername/codebrain-api/internal/service"
)

// GameHandler обрабатывает запросы, связанные с играми
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler создает новый обработчик игр
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

// FinishGameRequest представляет отправку готового результата игры.
// Поля в camelCase: формат мобильного клиента.
type FinishGameRequest struct {
	Difficulty     string `json:"difficulty" binding:"required,oneof=basic intermediate advanced"`
	TotalScore     int64  `json:"totalScore" binding:"min=0"`
	CorrectAnswers int    `json:"correctAnswers" binding:"min=0"`
	WrongAnswers   int    `json:"wrongAnswers" binding:"min=0"`
	TimeTaken      int    `json:"timeTaken" binding:"min=0"`
}

// FinishGame записывает завершённую игру и возвращает свежие агрегаты пользователя
func (h *GameHandler) FinishGame(c *gin.Context) {
	firebaseUID := c.MustGet("firebaseUID").(string)

	var req FinishGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data"})
		return
	}

	result, err := h.gameService.FinishGame(
		firebaseUID,
		req.Difficulty,
		req.TotalScore,
		req.CorrectAnswers,
		req.WrongAnswers,
		req.TimeTaken,
	)
	if err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"gameId":      result.GameID,
		"totalScore":  result.TotalScore,
		"gamesPlayed": result.GamesPlayed,
		"bestScore":   result.BestScore,
	})
}

// GetUserGames возвращает историю игр пользователя, новые первыми
func (h *GameHandler) GetUserGames(c *gin.Context) {
	firebaseUID := c.MustGet("firebaseUID").(string)

	games, err := h.gameService.GetUserGames(firebaseUID)
	if err != nil {
		h.handleGameError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"games":   games,
	})
}

// handleGameError преобразует ошибки сервиса игр в HTTP-ответы
func (h *GameHandler) handleGameError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in GameHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}
