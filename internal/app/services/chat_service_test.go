package services

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uisgo/uisgo-backend/internal/app/models"
	"github.com/uisgo/uisgo-backend/internal/pkg/apperrors"
)

func TestCheckChatFunds(t *testing.T) {
	assert.NoError(t, checkChatFunds(10, 2))

	// An exact balance still buys one reply
	assert.NoError(t, checkChatFunds(2, 2))

	assert.ErrorIs(t, checkChatFunds(1, 2), apperrors.ErrInsufficientCoins)
	assert.ErrorIs(t, checkChatFunds(0, 2), apperrors.ErrInsufficientCoins)
}

func TestCompletionMessages(t *testing.T) {
	history := []*models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "Hola"},
		{Role: models.ChatRoleAssistant, Content: "Hola, ¿en qué puedo ayudarte?"},
		{Role: models.ChatRoleUser, Content: "¿Dónde queda la biblioteca?"},
	}

	messages := completionMessages("Eres el asistente de la UIS.", history)
	require.Len(t, messages, len(history)+1)

	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "Eres el asistente de la UIS.", messages[0].Content)

	// Every stored turn is replayed, in order
	for i, turn := range history {
		assert.Equal(t, turn.Role, messages[i+1].Role)
		assert.Equal(t, turn.Content, messages[i+1].Content)
	}
}

func TestTruncateTitle(t *testing.T) {
	assert.Equal(t, "corto", truncateTitle("corto", 60))

	long := "¿Cuál es el cronograma de matrícula académica del próximo semestre en la universidad?"
	got := truncateTitle(long, 60)
	assert.Equal(t, 60, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))

	// Cutting right after a multibyte rune keeps it whole
	got = truncateTitle("¿Qué?", 2)
	assert.Equal(t, "¿Q", got)
}
