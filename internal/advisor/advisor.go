// Package advisor answers car suggestion, summary and detail requests against an injected catalog.
package advisor

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/car-advisor/internal/ai"
	"github.com/spigell/car-advisor/internal/catalog"
	"github.com/spigell/car-advisor/internal/filtering"
	"github.com/spigell/car-advisor/internal/logger"
	"github.com/spigell/car-advisor/internal/matcher"
)

// AnySelection leaves a selection out of the query.
const AnySelection = "Any"

// Request is a suggestion query as entered in the search form.
type Request struct {
	Keywords string   `json:"keywords"`
	Budget   *float64 `json:"budget,omitempty"`

	Type       string `json:"type,omitempty"`
	Size       string `json:"size,omitempty"`
	Drivetrain string `json:"drivetrain,omitempty"`

	Summarize bool `json:"summarize,omitempty"`
}

// KeywordList folds the selections into the free-text keywords and splits them on whitespace.
func (r Request) KeywordList() []string {
	parts := []string{r.Keywords}
	for _, selection := range []string{r.Type, r.Size, r.Drivetrain} {
		selection = strings.TrimSpace(selection)
		if selection == "" || strings.EqualFold(selection, AnySelection) {
			continue
		}
		parts = append(parts, selection)
	}
	return matcher.ParseKeywords(strings.Join(parts, " "))
}

// Suggestion is a matched vehicle with its derived price band and optional summary.
type Suggestion struct {
	catalog.Vehicle
	Category     catalog.PriceCategory `json:"priceCategory"`
	Summary      string                `json:"summary,omitempty"`
	SummaryError string                `json:"summaryError,omitempty"`
}

// Service is safe for concurrent use: the catalog is immutable and every call builds its own pipeline.
type Service struct {
	catalog    *catalog.Catalog
	summarizer ai.Summarizer
	aiConfig   *filtering.AIConfig
	logger     *zap.Logger
}

type Option func(*Service)

// WithAIConfig describes the summarizer in pipeline status reports.
func WithAIConfig(provider, model string) Option {
	return func(s *Service) {
		s.aiConfig = &filtering.AIConfig{Provider: provider, Model: model}
	}
}

func New(c *catalog.Catalog, summarizer ai.Summarizer, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		catalog:    c,
		summarizer: summarizer,
		logger:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// ValidateBudget rejects negative, NaN and infinite budgets. A nil budget is valid.
func ValidateBudget(budget *float64) error {
	if budget == nil {
		return nil
	}
	if math.IsNaN(*budget) || math.IsInf(*budget, 0) {
		return fmt.Errorf("budget must be a finite number: %v", *budget)
	}
	if *budget < 0 {
		return fmt.Errorf("budget must be a positive number: %v", *budget)
	}
	return nil
}

// Suggest returns the catalog records matching the request in catalog order.
// Summary failures are reported per suggestion and never fail the whole request.
func (s *Service) Suggest(ctx context.Context, req Request) ([]Suggestion, error) {
	if err := ValidateBudget(req.Budget); err != nil {
		return nil, err
	}

	cfg := &filtering.Config{
		Keywords: req.KeywordList(),
		MaxPrice: req.Budget,
		AI:       s.aiConfig,
	}

	steps := filtering.DefaultSteps()
	if req.Budget == nil {
		filtering.DisableByName(steps, filtering.BudgetStep, "no budget set")
	}
	if !req.Summarize {
		filtering.DisableByName(steps, filtering.SummaryStep, "summaries not requested")
	}

	vehicles, annotations, err := filtering.Run(ctx, cfg, filtering.Deps{
		Logger:     s.logger,
		Summarizer: s.summarizer,
	}, steps, s.catalog.Vehicles())
	if err != nil {
		return nil, fmt.Errorf("filtering vehicles: %w", err)
	}

	s.logger.Info("suggestions generated",
		zap.Strings("keywords", cfg.Keywords),
		zap.Int("found", vehicles.Len()),
	)

	suggestions := make([]Suggestion, 0, vehicles.Len())
	for _, vehicle := range vehicles.Items {
		suggestion := Suggestion{Vehicle: vehicle, Category: vehicle.PriceCategory()}
		if annotation, ok := annotations[vehicle.Name()]; ok {
			if annotation.Summary != nil {
				suggestion.Summary = annotation.Summary.Text
			}
			suggestion.SummaryError = annotation.Error
		}
		suggestions = append(suggestions, suggestion)
	}

	return suggestions, nil
}

// NotFoundSummary is returned for a make and model absent from the catalog.
func NotFoundSummary(manufacturer, model string) *ai.Summary {
	return &ai.Summary{Text: fmt.Sprintf("No information found for %s %s", manufacturer, model)}
}

// Summarize resolves the vehicle by make and model and asks the summarizer about its pros and cons.
// An unknown vehicle yields NotFoundSummary without calling the summarizer.
// Summarizer errors are returned as is.
func (s *Service) Summarize(ctx context.Context, manufacturer, model string) (*ai.Summary, error) {
	fields := logger.VehicleFields(manufacturer, model)

	vehicle := s.resolve(manufacturer, model)
	if vehicle == nil {
		s.logger.Info("vehicle not found for summary", fields...)
		return NotFoundSummary(manufacturer, model), nil
	}

	if s.summarizer == nil {
		return nil, fmt.Errorf("summarizer is not configured")
	}

	summary, err := s.summarizer.Summarize(ctx, &ai.ProsCons{
		Make:  vehicle.Make,
		Model: vehicle.Model,
		Pros:  vehicle.Pros,
		Cons:  vehicle.Cons,
	})
	if err != nil {
		s.logger.Warn("summary failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	return summary, nil
}

// Lookup returns the vehicle with the given make and model, ignoring case.
func (s *Service) Lookup(manufacturer, model string) (*catalog.Vehicle, bool) {
	vehicle := s.catalog.Vehicles().FindByMakeModel(manufacturer, model)
	return vehicle, vehicle != nil
}

// resolve keyword-matches make and model, then keeps the exact make and model hit.
// A partial hit such as "Unknown X" matching the MX-5 does not count.
func (s *Service) resolve(manufacturer, model string) *catalog.Vehicle {
	if strings.TrimSpace(manufacturer) == "" || strings.TrimSpace(model) == "" {
		return nil
	}

	matched := matcher.Match(s.catalog, matcher.NewQuery([]string{manufacturer, model}, nil))
	candidates := &catalog.Vehicles{Items: matched}
	return candidates.FindByMakeModel(manufacturer, model)
}
