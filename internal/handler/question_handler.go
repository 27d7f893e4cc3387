package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/codebrain-api/internal/pkg/errors"
	"github.com/yourusername/codebrain-api/internal/service"
)

// QuestionHandler обрабатывает запросы, связанные с банком вопросов
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
	}
}

// CreateQuestionRequest представляет запрос на создание вопроса
type CreateQuestionRequest struct {
	QuestionText  string `json:"question_text" binding:"required,min=3"`
	OptionA       string `json:"option_a" binding:"required"`
	OptionB       string `json:"option_b" binding:"required"`
	OptionC       string `json:"option_c" binding:"required"`
	OptionD       string `json:"option_d" binding:"required"`
	CorrectAnswer string `json:"correct_answer" binding:"required,oneof=A B C D"`
	Difficulty    string `json:"difficulty" binding:"required,oneof=basic intermediate advanced"`
	Category      string `json:"category"`
}

// CreateQuestion сохраняет новый вопрос в банк
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data"})
		return
	}

	question, err := h.questionService.CreateQuestion(
		req.QuestionText,
		req.OptionA, req.OptionB, req.OptionC, req.OptionD,
		req.CorrectAnswer,
		req.Difficulty,
		req.Category,
	)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Question created successfully",
		"question": question,
	})
}

// GetQuestions возвращает случайный набор вопросов для игровой сессии.
// Правильный ответ в JSON не сериализуется и клиенту не уходит.
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	difficulty := c.Query("difficulty")
	category := c.Query("category")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10 // Значение по умолчанию
	}

	questions, err := h.questionService.GetQuestions(difficulty, category, limit)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"questions": questions,
	})
}

// handleQuestionError преобразует ошибки сервиса вопросов в HTTP-ответы
func (h *QuestionHandler) handleQuestionError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Question not found"})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in QuestionHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}
