package quizzes

import (
	"testing"

	"eduplace-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func question(id uint, correct, score int) models.QuizQuestion {
	return models.QuizQuestion{
		Model:         gorm.Model{ID: id},
		Question:      "Вопрос",
		CorrectOption: correct,
		Score:         score,
	}
}

func TestScoreAttemptExactMatchOnly(t *testing.T) {
	questions := []models.QuizQuestion{
		question(1, 0, 2),
		question(2, 3, 5),
		question(3, 1, 1),
	}
	answers := []Answer{
		{QuestionID: 1, Selected: 0},
		{QuestionID: 2, Selected: 2},
		{QuestionID: 3, Selected: 1},
	}
	obtained, details := ScoreAttempt(questions, answers)
	assert.Equal(t, 3, obtained)
	require.Len(t, details, 3)
	assert.True(t, details[0].Correct)
	assert.Equal(t, 2, details[0].Score)
	assert.False(t, details[1].Correct)
	assert.Equal(t, 0, details[1].Score)
	assert.True(t, details[2].Correct)
}

func TestScoreAttemptUnknownQuestion(t *testing.T) {
	questions := []models.QuizQuestion{question(1, 0, 2)}
	answers := []Answer{{QuestionID: 42, Selected: 0}}
	obtained, details := ScoreAttempt(questions, answers)
	assert.Equal(t, 0, obtained)
	require.Len(t, details, 1)
	assert.False(t, details[0].Correct)
}

func TestPercentageFloors(t *testing.T) {
	assert.Equal(t, 66, Percentage(2, 3))
	assert.Equal(t, 100, Percentage(3, 3))
	assert.Equal(t, 0, Percentage(0, 3))
	assert.Equal(t, 0, Percentage(5, 0))
	assert.Equal(t, 33, Percentage(1, 3))
}

func TestAttemptsExceeded(t *testing.T) {
	assert.False(t, AttemptsExceeded(0, 1))
	assert.True(t, AttemptsExceeded(1, 1))
	assert.True(t, AttemptsExceeded(5, 3))
	// лимит 0 значит без ограничений
	assert.False(t, AttemptsExceeded(100, 0))
}

func TestSumScores(t *testing.T) {
	questions := []models.QuizQuestion{
		question(1, 0, 2),
		question(2, 1, 5),
		question(3, 2, 1),
	}
	assert.Equal(t, 8, SumScores(questions))
	assert.Equal(t, 0, SumScores(nil))
}
