package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestion_IsCorrect_CorrectAnswer(t *testing.T) {
	// Arrange
	question := &Question{
		ID:            1,
		QuestionText:  "Какой язык используется в Go?",
		OptionA:       "Python",
		OptionB:       "Go",
		OptionC:       "Java",
		OptionD:       "Rust",
		CorrectAnswer: AnswerB,
		Difficulty:    DifficultyBasic,
	}

	// Act & Assert
	assert.True(t, question.IsCorrect("B"), "IsCorrect должен вернуть true для правильного ответа")
}

func TestQuestion_IsCorrect_IncorrectAnswer(t *testing.T) {
	// Arrange
	question := &Question{CorrectAnswer: AnswerC}

	// Act & Assert
	assert.False(t, question.IsCorrect("A"), "IsCorrect должен вернуть false для неправильного ответа")
	assert.False(t, question.IsCorrect("B"), "IsCorrect должен вернуть false для неправильного ответа")
	assert.False(t, question.IsCorrect("D"), "IsCorrect должен вернуть false для неправильного ответа")
}

func TestIsValidAnswer(t *testing.T) {
	// Валидные метки
	assert.True(t, IsValidAnswer("A"))
	assert.True(t, IsValidAnswer("B"))
	assert.True(t, IsValidAnswer("C"))
	assert.True(t, IsValidAnswer("D"))

	// Невалидные метки
	assert.False(t, IsValidAnswer(""), "Пустая метка должна быть невалидной")
	assert.False(t, IsValidAnswer("E"), "Метка вне набора A-D должна быть невалидной")
	assert.False(t, IsValidAnswer("a"), "Строчная метка должна быть невалидной")
	assert.False(t, IsValidAnswer("AB"), "Составная метка должна быть невалидной")
}

func TestIsValidDifficulty(t *testing.T) {
	// Валидные ярусы
	assert.True(t, IsValidDifficulty(DifficultyBasic))
	assert.True(t, IsValidDifficulty(DifficultyIntermediate))
	assert.True(t, IsValidDifficulty(DifficultyAdvanced))

	// Невалидные ярусы
	assert.False(t, IsValidDifficulty(""))
	assert.False(t, IsValidDifficulty("expert"))
	assert.False(t, IsValidDifficulty("Basic"), "Регистр имеет значение")
}
