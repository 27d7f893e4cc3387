package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompletedGame(t *testing.T) {
	// Arrange
	before := time.Now()

	// Act
	game := NewCompletedGame("user-123", DifficultyIntermediate, 85, 9, 1, 120)

	// Assert
	require.NotNil(t, game)
	assert.Equal(t, "user-123", game.UserID)
	assert.Equal(t, DifficultyIntermediate, game.Difficulty)
	assert.Equal(t, int64(85), game.TotalScore)
	assert.Equal(t, 9, game.CorrectAnswers)
	assert.Equal(t, 1, game.WrongAnswers)
	assert.Equal(t, 120, game.TimeTaken)
	assert.True(t, game.Completed, "Игра должна создаваться сразу завершённой")

	// Отправляется готовый результат: старт и завершение совпадают
	assert.Equal(t, game.StartedAt, game.CompletedAt, "started_at и completed_at должны совпадать")
	assert.False(t, game.StartedAt.Before(before), "Метка времени должна быть текущей")
}
