package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/app/models/dto"
	"github.com/uisgo/uisgo-backend/internal/pkg/apperrors"
)

func TestEncodeQuestionAnswerSingle(t *testing.T) {
	raw, err := encodeQuestionAnswer(models.QuestionTypeSingle, &dto.AnswerQuestionRequest{
		Selected: []int{2},
	})
	require.NoError(t, err)

	var decoded struct {
		Selected []int `json:"selected"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, []int{2}, decoded.Selected)
}

func TestEncodeQuestionAnswerSingleMissingSelection(t *testing.T) {
	_, err := encodeQuestionAnswer(models.QuestionTypeSingle, &dto.AnswerQuestionRequest{})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestEncodeQuestionAnswerOpen(t *testing.T) {
	text := "una respuesta"
	raw, err := encodeQuestionAnswer(models.QuestionTypeOpen, &dto.AnswerQuestionRequest{
		Text: &text,
	})
	require.NoError(t, err)

	var decoded struct {
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, text, decoded.Text)
}

func TestEncodeQuestionAnswerOpenMissingText(t *testing.T) {
	_, err := encodeQuestionAnswer(models.QuestionTypeOpen, &dto.AnswerQuestionRequest{})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	empty := ""
	_, err = encodeQuestionAnswer(models.QuestionTypeOpen, &dto.AnswerQuestionRequest{Text: &empty})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestEncodeQuestionAnswerUnknownType(t *testing.T) {
	_, err := encodeQuestionAnswer(models.QuestionType("essay"), &dto.AnswerQuestionRequest{})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}
