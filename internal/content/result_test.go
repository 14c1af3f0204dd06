package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Text(t *testing.T) {
	t.Run("single text", func(t *testing.T) {
		text, err := SingleText("hello\nworld").Text()
		require.NoError(t, err)
		assert.Equal(t, "hello\nworld", text)
	})

	t.Run("fragments joined with a space in order", func(t *testing.T) {
		text, err := FragmentList("first", "second", "third").Text()
		require.NoError(t, err)
		assert.Equal(t, "first second third", text)
	})

	t.Run("zero value is malformed", func(t *testing.T) {
		_, err := Result{}.Text()
		assert.ErrorIs(t, err, ErrMalformedOutput)
	})
}
