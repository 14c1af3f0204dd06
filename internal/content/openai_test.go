package content

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIWriter_Generate_MissingAPIKey(t *testing.T) {
	writer := NewOpenAIWriter("", DefaultSettings())

	_, err := writer.Generate(context.Background(), "prompt")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestOpenAIWriter_Generate_SingleText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "chatcmpl-test",
			"object": "chat.completion",
			"created": 1710000000,
			"model": "gpt-4o",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "Title\nbody"},
				"finish_reason": "stop"
			}]
		}`)
	}))
	defer srv.Close()

	writer := NewOpenAIWriter("test-key", DefaultSettings(), option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))

	res, err := writer.Generate(context.Background(), "write a post")
	require.NoError(t, err)

	text, err := res.Text()
	require.NoError(t, err)
	assert.Equal(t, "Title\nbody", text)
}

func TestOpenAIWriter_Generate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id": "x", "object": "chat.completion", "created": 1, "model": "gpt-4o", "choices": []}`)
	}))
	defer srv.Close()

	writer := NewOpenAIWriter("test-key", DefaultSettings(), option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))

	_, err := writer.Generate(context.Background(), "write a post")

	assert.ErrorIs(t, err, ErrMalformedOutput)
}
