package filtering

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/car-advisor/internal/ai"
	"github.com/spigell/car-advisor/internal/catalog"
	"github.com/spigell/car-advisor/internal/logger"
	"github.com/spigell/car-advisor/internal/matcher"
)

const (
	KeywordsStep = "keywords"
	BudgetStep   = "budget"
	SummaryStep  = "summary"
)

type keywordsFilter struct {
	disabled bool
	reason   string
	keywords []string
}

// NewKeywords creates the step keeping vehicles that match any keyword.
func NewKeywords() Filter {
	return &keywordsFilter{}
}

func (f *keywordsFilter) Name() string { return KeywordsStep }

func (f *keywordsFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *keywordsFilter) IsEnabled() bool { return !f.disabled }

func (f *keywordsFilter) Validate(cfg *Config) error {
	f.keywords = nil
	if cfg != nil {
		f.keywords = matcher.NormalizeKeywords(cfg.Keywords)
	}
	return nil
}

func (f *keywordsFilter) Apply(_ context.Context, deps Deps, v *catalog.Vehicles) (*catalog.Vehicles, Step, error) {
	initial := v.Len()
	excluded := v.Keep(func(vehicle catalog.Vehicle) bool {
		return matcher.MatchesKeywords(vehicle, f.keywords)
	})
	if len(excluded) > 0 {
		deps.Logger.Debug("excluding vehicles not matching keywords",
			zap.Strings("keywords", f.keywords),
			zap.Strings("excluded_vehicles", excluded),
			zap.Int("vehicles_left", v.Len()),
		)
	}

	return v, Step{Initial: initial, Dropped: len(excluded), Left: v.Len()}, nil
}

func (f *keywordsFilter) Status() Status {
	details := map[string]string{}
	if len(f.keywords) > 0 {
		details["keywords"] = strings.Join(f.keywords, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type budgetFilter struct {
	disabled bool
	reason   string
	maxPrice *float64
}

// NewBudget creates the step dropping vehicles priced above the budget.
func NewBudget() Filter {
	return &budgetFilter{}
}

func (f *budgetFilter) Name() string { return BudgetStep }

func (f *budgetFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *budgetFilter) IsEnabled() bool { return !f.disabled }

func (f *budgetFilter) Validate(cfg *Config) error {
	if cfg == nil || cfg.MaxPrice == nil {
		return fmt.Errorf("budget is required when budget filter is enabled")
	}
	if math.IsNaN(*cfg.MaxPrice) || math.IsInf(*cfg.MaxPrice, 0) || *cfg.MaxPrice < 0 {
		return fmt.Errorf("budget must be a finite non-negative number: %v", *cfg.MaxPrice)
	}
	f.maxPrice = cfg.MaxPrice
	return nil
}

func (f *budgetFilter) Apply(_ context.Context, deps Deps, v *catalog.Vehicles) (*catalog.Vehicles, Step, error) {
	initial := v.Len()
	excluded := v.Keep(func(vehicle catalog.Vehicle) bool {
		return matcher.WithinBudget(vehicle, f.maxPrice)
	})
	if len(excluded) > 0 {
		deps.Logger.Debug("excluding vehicles over budget",
			zap.Float64("budget", *f.maxPrice),
			zap.Strings("excluded_vehicles", excluded),
			zap.Int("vehicles_left", v.Len()),
		)
	}

	return v, Step{Initial: initial, Dropped: len(excluded), Left: v.Len()}, nil
}

func (f *budgetFilter) Status() Status {
	details := map[string]string{}
	if f.maxPrice != nil {
		details["max_price"] = strconv.FormatFloat(*f.maxPrice, 'f', -1, 64)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type summaryFilter struct {
	disabled    bool
	reason      string
	config      *AIConfig
	annotations map[string]*Annotation
}

// NewSummary creates the enrichment step attaching an AI summary to every remaining vehicle.
// It never drops a vehicle.
func NewSummary() Filter {
	return &summaryFilter{}
}

func (f *summaryFilter) Name() string { return SummaryStep }

func (f *summaryFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *summaryFilter) IsEnabled() bool { return !f.disabled }

func (f *summaryFilter) Validate(cfg *Config) error {
	f.config = nil
	if cfg != nil {
		f.config = cfg.AI
	}
	return nil
}

func (f *summaryFilter) Apply(ctx context.Context, deps Deps, v *catalog.Vehicles) (*catalog.Vehicles, Step, error) {
	initial := v.Len()
	f.annotations = make(map[string]*Annotation, initial)

	if deps.Summarizer == nil {
		deps.Logger.Info("summarizer is not configured; skipping summary step")
		return v, Step{Initial: initial, Left: initial}, nil
	}

	for _, vehicle := range v.Items {
		if err := ctx.Err(); err != nil {
			return v, Step{}, err
		}

		fields := logger.VehicleFields(vehicle.Make, vehicle.Model)
		summary, err := deps.Summarizer.Summarize(ctx, &ai.ProsCons{
			Make:  vehicle.Make,
			Model: vehicle.Model,
			Pros:  vehicle.Pros,
			Cons:  vehicle.Cons,
		})
		if err != nil {
			deps.Logger.Warn("summary failed", append(fields, zap.Error(err))...)
			f.annotations[vehicle.Name()] = &Annotation{Error: err.Error()}
			continue
		}

		deps.Logger.Debug("summary attached", fields...)
		f.annotations[vehicle.Name()] = &Annotation{Summary: summary}
	}

	return v, Step{Initial: initial, Left: v.Len()}, nil
}

func (f *summaryFilter) Annotations() map[string]*Annotation {
	if f.annotations == nil {
		return map[string]*Annotation{}
	}
	return f.annotations
}

func (f *summaryFilter) Status() Status {
	details := map[string]string{}
	if f.config != nil {
		if f.config.Provider != "" {
			details["provider"] = f.config.Provider
		}
		if f.config.Model != "" {
			details["model"] = f.config.Model
		}
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
