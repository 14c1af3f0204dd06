package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssemble(t *testing.T) {
	tests := []struct {
		name     string
		template string
		topic    string
		category string
		expected string
	}{
		{
			name:     "both placeholders",
			template: "Write about <<TOPIC>> in <<CATEGORY>>.",
			topic:    "전기차 보조금",
			category: "전기차",
			expected: "Write about 전기차 보조금 in 전기차.",
		},
		{
			name:     "repeated placeholders",
			template: "<<TOPIC>>, <<TOPIC>> and <<CATEGORY>>/<<CATEGORY>>",
			topic:    "a",
			category: "b",
			expected: "a, a and b/b",
		},
		{
			name:     "missing placeholder is a no-op",
			template: "No placeholders here",
			topic:    "topic",
			category: "category",
			expected: "No placeholders here",
		},
		{
			name:     "empty topic keeps placeholder",
			template: "<<TOPIC>> / <<CATEGORY>>",
			topic:    "",
			category: "cars",
			expected: "<<TOPIC>> / cars",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Assemble(tt.template, tt.topic, tt.category))
		})
	}
}

func TestAssemble_SubstitutionCounts(t *testing.T) {
	template := "<<TOPIC>> x <<CATEGORY>> y <<TOPIC>> z <<TOPIC>>"
	topic, category := "Example Topic", "Cars"

	got := Assemble(template, topic, category)

	assert.NotContains(t, got, TopicPlaceholder)
	assert.NotContains(t, got, CategoryPlaceholder)
	assert.Equal(t, 3, strings.Count(got, topic))
	assert.Equal(t, 1, strings.Count(got, category))
}

func TestBuildPrompt_AppendsExemplar(t *testing.T) {
	prompt := BuildPrompt(DefaultInstructions, "장기렌트 장점", "장기렌트")

	assert.True(t, strings.HasPrefix(prompt, "마크다운 문법을 사용하여"))
	assert.Contains(t, prompt, `주어진 "장기렌트 장점" 과 관련된 포스트`)
	assert.Contains(t, prompt, `카테고리는 "장기렌트" 입니다`)
	assert.Contains(t, prompt, "[예시 포스트 작성-참조 필요]")
	assert.NotContains(t, prompt, TopicPlaceholder)
}

func TestApplyKeyword(t *testing.T) {
	assert.Equal(t, "아반떼 장기렌트 비용", ApplyKeyword("<<KEYWORD>> 장기렌트 비용", "아반떼"))
	assert.Equal(t, "no keyword", ApplyKeyword("no keyword", "ignored"))
}
