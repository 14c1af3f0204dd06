package content

import (
	"context"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wellFormedPost() string {
	paragraph := strings.Repeat("전기차 보조금은 지역마다 다릅니다. ", 10)

	var sb strings.Builder
	sb.WriteString(Header("전기차 보조금"))
	sb.WriteString("요약: 2024년 전기차 보조금은 최대 650만 원입니다.\n\n")
	for i := 0; i < 4; i++ {
		sb.WriteString("## 소제목\n\n")
		sb.WriteString(paragraph)
		sb.WriteString("\n\n")
		sb.WriteString(paragraph)
		sb.WriteString("\n\n")
	}
	sb.WriteString("#ElectricCar #Subsidy #Hyundai")

	return sb.String()
}

func TestHeuristicEvaluator_WellFormedPost(t *testing.T) {
	eval := NewHeuristicEvaluator()

	got, err := eval.Evaluate(context.Background(), wellFormedPost())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, got.Score, 80.0)
	assert.LessOrEqual(t, got.Score, 100.0)
	assert.NotEmpty(t, got.Feedback)
}

func TestHeuristicEvaluator_EmptyBody(t *testing.T) {
	eval := NewHeuristicEvaluator()

	got, err := eval.Evaluate(context.Background(), Header("topic"))
	require.NoError(t, err)

	assert.Zero(t, got.Score)
	assert.Contains(t, got.Feedback, "비어")
}

func TestHeuristicEvaluator_PoorPost(t *testing.T) {
	eval := NewHeuristicEvaluator()

	got, err := eval.Evaluate(context.Background(), Header("topic")+"## 바로 본문\n짧은 글")
	require.NoError(t, err)

	assert.Less(t, got.Score, 50.0)
	assert.Contains(t, got.Feedback, "해시태그")
	assert.Contains(t, got.Feedback, "요약")
}

func TestClaudeEvaluator_MissingAPIKey(t *testing.T) {
	eval := NewClaudeEvaluator("", "")

	_, err := eval.Evaluate(context.Background(), "doc")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestClaudeEvaluator_ParsesToolUse(t *testing.T) {
	var request map[string]any
	srv := anthropicServer(t, `[
		{"type": "tool_use", "id": "toolu_1", "name": "save_quality_assessment",
		 "input": {"score": 120, "feedback": "좋은 글입니다."}}
	]`, &request)

	eval := NewClaudeEvaluator("test-key", "", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))

	got, err := eval.Evaluate(context.Background(), "doc")
	require.NoError(t, err)

	assert.InDelta(t, 100.0, got.Score, 0)
	assert.Equal(t, "좋은 글입니다.", got.Feedback)
	assert.NotEmpty(t, request["tools"])
}

func TestClaudeEvaluator_NoToolUse(t *testing.T) {
	srv := anthropicServer(t, `[{"type": "text", "text": "85"}]`, nil)

	eval := NewClaudeEvaluator("test-key", "", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))

	_, err := eval.Evaluate(context.Background(), "doc")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no tool use")
}
