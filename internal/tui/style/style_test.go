package style_test

import (
	"testing"

	"github.com/alkime/postauto/internal/tui/style"
	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	assert.Equal(t, style.Success, style.Score(92))
	assert.Equal(t, style.Error, style.Score(12))
	assert.NotEqual(t, style.Success, style.Score(65))
	assert.NotEqual(t, style.Error, style.Score(65))
}
