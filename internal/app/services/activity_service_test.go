package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/uisgo/uisgo-backend/internal/app/models"
)

func TestGradeSingleChoice(t *testing.T) {
	assert.True(t, GradeSingleChoice([]int{0}, []int{0}))
	assert.True(t, GradeSingleChoice([]int{1, 3}, []int{1, 3}))

	// Wrong option
	assert.False(t, GradeSingleChoice([]int{1}, []int{0}))

	// Length mismatch in either direction
	assert.False(t, GradeSingleChoice([]int{0, 1}, []int{0}))
	assert.False(t, GradeSingleChoice([]int{0}, []int{0, 1}))

	// Order matters, a permutation is not a match
	assert.False(t, GradeSingleChoice([]int{3, 1}, []int{1, 3}))
}

func TestGradeSingleChoiceEmpty(t *testing.T) {
	assert.True(t, GradeSingleChoice(nil, nil))
	assert.True(t, GradeSingleChoice([]int{}, nil))
	assert.False(t, GradeSingleChoice(nil, []int{0}))
}

func TestGradeSingleOutcome(t *testing.T) {
	activity := &models.Activity{
		QCorrect:        []int{2},
		CoinsOnComplete: 15,
	}

	status, correct, awarded := gradeSingle([]int{2}, activity)
	assert.Equal(t, models.SubmissionStatusApproved, status)
	assert.True(t, correct)
	assert.Equal(t, int64(15), awarded)

	// An incorrect answer awards nothing and keeps the submitted status
	status, correct, awarded = gradeSingle([]int{0}, activity)
	assert.Equal(t, models.SubmissionStatusSubmitted, status)
	assert.False(t, correct)
	assert.Zero(t, awarded)
}
