package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrTransient marks failures of the text-generation service that may succeed on a later call.
var ErrTransient = errors.New("text generation service unavailable")

// ProsCons is the input of a summary request.
type ProsCons struct {
	Make  string   `json:"make"`
	Model string   `json:"model"`
	Pros  []string `json:"pros"`
	Cons  []string `json:"cons"`
}

type Summary struct {
	Text string `json:"summary"`
	// Raw holds the unparsed service response when one was involved.
	Raw string `json:"-"`
}

// Summarizer turns the pros and cons of a vehicle into a natural-language summary.
type Summarizer interface {
	Summarize(ctx context.Context, input *ProsCons) (*Summary, error)
}

// Offline builds a summary locally from the pros and cons without calling any service.
type Offline struct{}

func NewOffline() *Offline {
	return &Offline{}
}

func (o *Offline) Summarize(_ context.Context, input *ProsCons) (*Summary, error) {
	if input == nil {
		return nil, fmt.Errorf("pros and cons are required")
	}

	name := strings.TrimSpace(input.Make + " " + input.Model)

	var b strings.Builder
	switch len(input.Pros) {
	case 0:
		fmt.Fprintf(&b, "The %s has no notable strengths on record.", name)
	default:
		fmt.Fprintf(&b, "The %s stands out for: %s.", name, joinLower(input.Pros))
	}

	if len(input.Cons) > 0 {
		fmt.Fprintf(&b, " Keep in mind: %s.", joinLower(input.Cons))
	}

	return &Summary{Text: b.String()}, nil
}

func joinLower(items []string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts = append(parts, strings.ToLower(item))
	}
	return strings.Join(parts, ", ")
}
