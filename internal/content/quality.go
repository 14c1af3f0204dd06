package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Assessment is a quality score between 0 and 100 with reviewer feedback.
type Assessment struct {
	Score    float64
	Feedback string
}

// NeutralAssessment is reported when scoring fails.
func NeutralAssessment() Assessment {
	return Assessment{Score: 0, Feedback: "quality assessment unavailable"}
}

// Evaluator scores a normalized document.
type Evaluator interface {
	Evaluate(ctx context.Context, document string) (Assessment, error)
}

// HeuristicEvaluator scores a post against the structure the default
// instructions ask for, without any network calls.
type HeuristicEvaluator struct {
	// TargetLength is the ideal body length in characters, spaces included.
	TargetLength int
}

// NewHeuristicEvaluator returns an evaluator targeting 2,000 characters.
func NewHeuristicEvaluator() *HeuristicEvaluator {
	return &HeuristicEvaluator{TargetLength: 2000}
}

var (
	headingPattern = regexp.MustCompile(`(?m)^#{1,6}[^#\n]`)
	figurePattern  = regexp.MustCompile(`\d[\d,.]*\s*(%|원|만|억|cc|km|kWh)`)
)

// Evaluate implements Evaluator. Weights: length 30, subheadings 20,
// hashtags 15, paragraph size 15, figures 10, summary 10.
func (h *HeuristicEvaluator) Evaluate(_ context.Context, document string) (Assessment, error) {
	body := StripFrontMatter(document)
	if strings.TrimSpace(body) == "" {
		return Assessment{Score: 0, Feedback: "본문이 비어 있습니다."}, nil
	}

	var (
		score    float64
		feedback []string
	)

	target := h.TargetLength
	if target <= 0 {
		target = 2000
	}

	length := utf8.RuneCountInString(body)
	deviation := math.Min(math.Abs(float64(length-target))/float64(target), 1)
	score += 30 * (1 - deviation)
	if deviation > 0.25 {
		feedback = append(feedback, fmt.Sprintf("분량이 %d자로 목표 %d자와 차이가 큽니다.", length, target))
	}

	headings := len(headingPattern.FindAllString(body, -1))
	score += 20 * math.Min(float64(headings)/3, 1)
	if headings < 3 {
		feedback = append(feedback, "소제목을 3개 이상 사용해 주세요.")
	}

	tagCount := len(hashtagPattern.FindAllString(lastLine(body), -1))
	switch {
	case tagCount >= 3 && tagCount <= 5:
		score += 15
	case tagCount > 0:
		score += 8
		feedback = append(feedback, "마지막 줄의 해시태그는 3~5개가 적당합니다.")
	default:
		feedback = append(feedback, "마지막 줄에 해시태그가 없습니다.")
	}

	avg := averageParagraphLength(body)
	if avg <= 400 {
		score += 15
	} else {
		score += 15 * 400 / avg
		feedback = append(feedback, "문단이 깁니다. 300자 내외로 나눠 주세요.")
	}

	if figurePattern.MatchString(body) {
		score += 10
	} else {
		feedback = append(feedback, "수치 데이터와 출처를 추가해 주세요.")
	}

	if hasSummary(body) {
		score += 10
	} else {
		feedback = append(feedback, "포스트 상단에 요약을 제공해 주세요.")
	}

	if len(feedback) == 0 {
		feedback = append(feedback, "세부지침을 잘 따르고 있습니다.")
	}

	return Assessment{
		Score:    math.Round(score),
		Feedback: strings.Join(feedback, " "),
	}, nil
}

func lastLine(body string) string {
	lines := strings.Split(strings.TrimSpace(body), "\n")

	return lines[len(lines)-1]
}

func averageParagraphLength(body string) float64 {
	var total, count int
	for _, p := range strings.Split(body, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		total += utf8.RuneCountInString(p)
		count++
	}

	if count == 0 {
		return 0
	}

	return float64(total) / float64(count)
}

// hasSummary reports whether the first non-blank line is prose or mentions a
// summary, rather than jumping straight into a section heading.
func hasSummary(body string) bool {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		return strings.Contains(line, "요약") || !strings.HasPrefix(line, "#")
	}

	return false
}

// QualityToolInput defines the tool input schema for quality assessment.
type QualityToolInput struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

const qualityToolName = "save_quality_assessment"

// getQualityTool returns the tool definition for structured quality output.
func getQualityTool() anthropic.ToolParam {
	return anthropic.ToolParam{
		Name: qualityToolName,
		Description: anthropic.String(
			"Save the quality score and feedback for the reviewed blog post",
		),
		InputSchema: anthropic.ToolInputSchemaParam{
			Type: "object",
			Properties: map[string]interface{}{
				"score": map[string]interface{}{
					"type":        "integer",
					"description": "Quality score from 0 to 100",
				},
				"feedback": map[string]interface{}{
					"type":        "string",
					"description": "Short improvement feedback in Korean",
				},
			},
			Required: []string{"score", "feedback"},
		},
	}
}

// ClaudeEvaluator asks Claude to score a post through a forced tool call.
type ClaudeEvaluator struct {
	apiKey string
	model  anthropic.Model
	client anthropic.Client
}

// NewClaudeEvaluator creates a new LLM-backed evaluator.
func NewClaudeEvaluator(apiKey, model string, opts ...option.RequestOption) *ClaudeEvaluator {
	m := anthropic.ModelClaudeSonnet4_5_20250929
	if model != "" {
		m = anthropic.Model(model)
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)

	return &ClaudeEvaluator{
		apiKey: apiKey,
		model:  m,
		client: anthropic.NewClient(opts...),
	}
}

// Evaluate implements Evaluator.
func (c *ClaudeEvaluator) Evaluate(ctx context.Context, document string) (Assessment, error) {
	if c.apiKey == "" {
		return Assessment{}, errors.New("API key required: set ANTHROPIC_API_KEY or use --anthropic-api-key")
	}

	toolDef := getQualityTool()
	tool := anthropic.ToolUnionParamOfTool(toolDef.InputSchema, toolDef.Name)
	tool.OfTool.Description = toolDef.Description

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: QualitySystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(document)),
		},
		Tools:      []anthropic.ToolUnionParam{tool},
		ToolChoice: anthropic.ToolChoiceParamOfTool(qualityToolName),
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return Assessment{}, fmt.Errorf("failed to evaluate post via Anthropic API: %w", err)
	}

	input, err := parseQualityToolUse(resp.Content)
	if err != nil {
		return Assessment{}, err
	}

	return Assessment{
		Score:    math.Max(0, math.Min(100, input.Score)),
		Feedback: input.Feedback,
	}, nil
}

// parseQualityToolUse extracts QualityToolInput from response content blocks.
func parseQualityToolUse(content []anthropic.ContentBlockUnion) (*QualityToolInput, error) {
	for _, block := range content {
		if toolUse, ok := block.AsAny().(anthropic.ToolUseBlock); ok {
			var toolInput QualityToolInput
			inputBytes, err := json.Marshal(toolUse.Input)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal tool input: %w", err)
			}
			if err := json.Unmarshal(inputBytes, &toolInput); err != nil {
				return nil, fmt.Errorf("failed to parse tool input: %w", err)
			}

			return &toolInput, nil
		}
	}

	return nil, errors.New("no tool use found in Anthropic API response")
}
