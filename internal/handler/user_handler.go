package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/codebrain-api/internal/handler/dto"
	apperrors "github.com/yourusername/codebrain-api/internal/pkg/errors"
	"github.com/yourusername/codebrain-api/internal/service"
)

// UserHandler обрабатывает запросы, связанные с пользователями
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// SyncUserRequest представляет запрос на синхронизацию пользователя от identity-провайдера
type SyncUserRequest struct {
	FirebaseUID string `json:"firebase_uid" binding:"required"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	BirthDate   string `json:"birth_date" binding:"required"`
}

// SyncUser обрабатывает запрос на создание/синхронизацию пользователя.
// Повторная синхронизация идемпотентна: существующий пользователь
// возвращается как есть со статусом 200, новый создаётся со статусом 201.
func (h *UserHandler) SyncUser(c *gin.Context) {
	var req SyncUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required"})
		return
	}

	user, created, err := h.userService.SyncUser(req.FirebaseUID, req.FirstName, req.LastName, req.Email, req.BirthDate)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	if created {
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "User created successfully",
			"user":    user,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User found",
		"user":    user,
	})
}

// GetProfile возвращает профиль пользователя
func (h *UserHandler) GetProfile(c *gin.Context) {
	firebaseUID := c.MustGet("firebaseUID").(string)

	user, err := h.userService.GetProfile(firebaseUID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// UpdateProfileRequest представляет запрос на обновление профиля.
// AvatarURL — указатель: отсутствие поля в JSON оставляет аватар без изменений.
type UpdateProfileRequest struct {
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	BirthDate string  `json:"birth_date" binding:"required"`
	AvatarURL *string `json:"avatar_url"`
}

// UpdateProfile обрабатывает запрос на обновление профиля пользователя
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	firebaseUID := c.MustGet("firebaseUID").(string)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All fields are required"})
		return
	}

	user, err := h.userService.UpdateProfile(firebaseUID, req.FirstName, req.LastName, req.Email, req.BirthDate, req.AvatarURL)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// UpdateStatsRequest представляет запрос на обновление статистики.
// IsBestScore принимается для совместимости со старыми клиентами и
// игнорируется: рекорд сервер считает сам.
type UpdateStatsRequest struct {
	Score       int64 `json:"score"`
	IsBestScore bool  `json:"is_best_score"`
}

// UpdateStats сворачивает очки одной игры в счётчики пользователя
func (h *UserHandler) UpdateStats(c *gin.Context) {
	firebaseUID := c.MustGet("firebaseUID").(string)

	var req UpdateStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data"})
		return
	}

	stats, err := h.userService.UpdateStats(firebaseUID, req.Score)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Stats updated",
		"stats":   stats,
	})
}

// DeleteUser удаляет пользователя и каскадно все его игры
func (h *UserHandler) DeleteUser(c *gin.Context) {
	firebaseUID := c.MustGet("firebaseUID").(string)

	if err := h.userService.DeleteUser(firebaseUID); err != nil {
		h.handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
	})
}

// GetRanking возвращает рейтинг пользователей по total_score
func (h *UserHandler) GetRanking(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10 // Значение по умолчанию
	}

	ranking, err := h.userService.GetRanking(limit)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"ranking": ranking,
	})
}

// ExportRanking выгружает полный рейтинг файлом в CSV или XLSX
func (h *UserHandler) ExportRanking(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	// Полный рейтинг без пагинации
	ranking, err := h.userService.GetRanking(100)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	filename := fmt.Sprintf("ranking_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, ranking, filename)
	default:
		h.exportCSV(c, ranking, filename)
	}
}

// exportCSV выгружает рейтинг в CSV с корректным экранированием спецсимволов
func (h *UserHandler) exportCSV(c *gin.Context, ranking []*dto.RankingEntryDTO, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Rank", "First Name", "Last Name", "Total Score", "Games Played", "Best Score"})

	for _, entry := range ranking {
		writer.Write([]string{
			strconv.Itoa(entry.Rank),
			sanitizeForExcel(entry.FirstName),
			sanitizeForExcel(entry.LastName),
			strconv.FormatInt(entry.TotalScore, 10),
			strconv.FormatInt(entry.GamesPlayed, 10),
			strconv.FormatInt(entry.BestScore, 10),
		})
	}
}

// exportXLSX выгружает рейтинг в Excel с использованием StreamWriter
func (h *UserHandler) exportXLSX(c *gin.Context, ranking []*dto.RankingEntryDTO, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Ranking"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[UserHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Rank", "First Name", "Last Name", "Total Score", "Games Played", "Best Score"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[UserHandler] Ошибка записи заголовков: %v", err)
	}

	for i, entry := range ranking {
		rowNum := i + 2 // Первая строка занята заголовками
		cell := fmt.Sprintf("A%d", rowNum)
		row := []interface{}{
			entry.Rank,
			sanitizeForExcel(entry.FirstName),
			sanitizeForExcel(entry.LastName),
			entry.TotalScore,
			entry.GamesPlayed,
			entry.BestScore,
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[UserHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[UserHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[UserHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// handleUserError преобразует ошибки сервисов в HTTP-ответы.
// Дубликат email отдаётся как 400, а не 409 — этого формата ждут клиенты.
func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is already in use"})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in UserHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}
