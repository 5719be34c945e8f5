package matching

import (
	"context"
	"fmt"
)

type topRefiner struct {
	top int
}

// NewTop creates a refiner that keeps only the configured number of best
// matches.
func NewTop() Refiner {
	return &topRefiner{}
}

func (r *topRefiner) Name() string { return "top" }

func (r *topRefiner) Disable(string) {}

func (r *topRefiner) IsEnabled() bool { return true }

func (r *topRefiner) Validate(cfg *Config) error {
	r.top = 0
	if cfg == nil {
		return nil
	}
	if cfg.Top < 0 {
		return fmt.Errorf("top must not be negative, got %d", cfg.Top)
	}
	r.top = cfg.Top
	return nil
}

func (r *topRefiner) Apply(_ context.Context, _ Deps, m *Matches) (*Matches, Step, error) {
	initial := m.Len()
	if r.top == 0 || m.Len() <= r.top {
		return m, Step{Initial: initial, Dropped: 0, Left: m.Len()}, nil
	}

	kept := &Matches{Items: m.Items[:r.top]}
	return kept, Step{Initial: initial, Dropped: initial - kept.Len(), Left: kept.Len()}, nil
}

func (r *topRefiner) Status() Status {
	details := map[string]string{}
	if r.top > 0 {
		details["top"] = fmt.Sprintf("%d", r.top)
	}
	return Status{Name: r.Name(), Enabled: true, Details: details}
}
