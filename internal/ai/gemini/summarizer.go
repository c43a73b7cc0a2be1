package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/car-advisor/internal/ai"
	"github.com/spigell/car-advisor/internal/logger"
	"github.com/spigell/car-advisor/internal/utils"
)

const (
	providerName        = "gemini"
	defaultMaxLogLength = 200

	systemInstruction = "You summarize car owner feedback. Answer with a single JSON object."
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

type Summarizer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

func NewSummarizer(generator contentGenerator, maxLogLength int, log *zap.Logger) *Summarizer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Summarizer{
		generator: generator,
		logger:    logger.WithCommonFields(log, providerName, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (s *Summarizer) Summarize(ctx context.Context, input *ai.ProsCons) (*ai.Summary, error) {
	if input == nil {
		return nil, fmt.Errorf("pros and cons are required")
	}

	prompt := buildPrompt(input)
	vehicle := logger.VehicleFields(input.Make, input.Model)

	s.logger.Debug("gemini summary request", append(vehicle,
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, s.maxLogLen)),
	)...)

	raw, err := s.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini summary response", append(vehicle,
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)...)

	summary, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	summary.Raw = raw
	return summary, nil
}

func buildPrompt(input *ai.ProsCons) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Make: {{MAKE}}\nModel: {{MODEL}}\nPros:\n{{PROS}}\nCons:\n{{CONS}}\n\nJSON Response:"
	}

	prompt := strings.ReplaceAll(template, "{{MAKE}}", strings.TrimSpace(input.Make))
	prompt = strings.ReplaceAll(prompt, "{{MODEL}}", strings.TrimSpace(input.Model))
	prompt = strings.ReplaceAll(prompt, "{{PROS}}", bulletList(input.Pros))
	prompt = strings.ReplaceAll(prompt, "{{CONS}}", bulletList(input.Cons))
	return prompt
}

func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			lines = append(lines, "- "+item)
		}
	}
	if len(lines) == 0 {
		return "- none"
	}
	return strings.Join(lines, "\n")
}

// parseResponse accepts {"summary": ...} with or without code fences. Plain prose is used as is.
func parseResponse(raw string) (*ai.Summary, error) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("parse gemini response: empty answer")
	}

	if !strings.HasPrefix(cleaned, "{") {
		return &ai.Summary{Text: cleaned}, nil
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	text := coerceString(data["summary"])
	if text == "" {
		return nil, fmt.Errorf("parse gemini response: summary field is missing")
	}

	return &ai.Summary{Text: text}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
