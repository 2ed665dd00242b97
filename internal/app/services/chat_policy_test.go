package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultChatPolicy(t *testing.T) {
	assert.Equal(t, "v1", DefaultChatPolicy.Version)
	assert.NotEmpty(t, DefaultChatPolicy.SystemPrompt)
	assert.NotEmpty(t, DefaultChatPolicy.ProhibitedTopics)
}
