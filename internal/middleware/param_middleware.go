package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractUIDParam создает middleware для извлечения и валидации строкового
// идентификатора пользователя из URL.
// paramName - имя параметра в URL (например, "uid").
// contextKey - ключ, под которым значение будет сохранено в контексте Gin.
func ExtractUIDParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.Param(paramName))
		if uid == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid " + paramName})
			c.Abort()
			return
		}
		c.Set(contextKey, uid)
		c.Next()
	}
}
