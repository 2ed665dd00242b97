package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundPercent(t *testing.T) {
	assert.Equal(t, 33.33, roundPercent(33.333333))
	assert.Equal(t, 66.67, roundPercent(66.666666))
	assert.Equal(t, 100.0, roundPercent(100))
	assert.Equal(t, 0.0, roundPercent(0))
	assert.Equal(t, 50.0, roundPercent(49.999999))
}
