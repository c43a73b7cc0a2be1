package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/car-advisor/internal/ai"
	"github.com/spigell/car-advisor/internal/catalog"
)

// Filter represents a single step applied to a vehicle list.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, v *catalog.Vehicles) (*catalog.Vehicles, Step, error)
}

// Deps aggregates dependencies shared across all steps.
type Deps struct {
	Logger     *zap.Logger
	Summarizer ai.Summarizer
}

// Step describes the result of executing a step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains the query consumed by the steps.
type Config struct {
	Keywords []string
	// MaxPrice is the inclusive budget. Nil disables the budget step.
	MaxPrice *float64
	AI       *AIConfig
}

type AIConfig struct {
	Provider string
	Model    string
}

// Annotation is the per-vehicle outcome of an enrichment step, keyed by vehicle name.
type Annotation struct {
	Summary *ai.Summary
	Error   string
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

type annotator interface {
	Annotations() map[string]*Annotation
}

// DefaultSteps returns the keyword, budget and summary steps in execution order.
func DefaultSteps() []Filter {
	return []Filter{NewKeywords(), NewBudget(), NewSummary()}
}

// DisableByName marks the filter with the given name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the enabled steps sequentially and returns the remaining vehicles with their annotations.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, v *catalog.Vehicles) (*catalog.Vehicles, map[string]*Annotation, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	annotations := make(map[string]*Annotation)
	for _, step := range steps {
		if !step.IsEnabled() {
			deps.Logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, deps, v)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		deps.Logger.Debug("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		v = next

		if collector, ok := step.(annotator); ok {
			for name, annotation := range collector.Annotations() {
				annotations[name] = annotation
			}
		}
	}

	return v, annotations, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
