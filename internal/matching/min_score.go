package matching

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type minScoreRefiner struct {
	minScore float64
}

// NewMinScore creates a refiner that drops matches below the configured
// minimum compatibility score.
func NewMinScore() Refiner {
	return &minScoreRefiner{}
}

func (r *minScoreRefiner) Name() string { return "min_score" }

func (r *minScoreRefiner) Disable(string) {}

func (r *minScoreRefiner) IsEnabled() bool { return true }

func (r *minScoreRefiner) Validate(cfg *Config) error {
	r.minScore = 0
	if cfg == nil {
		return nil
	}
	if cfg.MinScore < 0 || cfg.MinScore > 100 {
		return fmt.Errorf("min score must be within [0,100], got %v", cfg.MinScore)
	}
	r.minScore = cfg.MinScore
	return nil
}

func (r *minScoreRefiner) Apply(_ context.Context, deps Deps, m *Matches) (*Matches, Step, error) {
	initial := m.Len()
	if r.minScore == 0 {
		return m, Step{Initial: initial, Dropped: 0, Left: m.Len()}, nil
	}

	kept := &Matches{}
	var dropped []string
	for _, match := range m.Items {
		if match.Score < r.minScore {
			dropped = append(dropped, match.Artist.ID)
			continue
		}
		kept.Items = append(kept.Items, match)
	}

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("dropping matches below minimum score",
			zap.Float64("min_score", r.minScore),
			zap.Strings("dropped_artists", dropped),
			zap.Int("matches_left", kept.Len()),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: kept.Len()}, nil
}

func (r *minScoreRefiner) Status() Status {
	details := map[string]string{}
	if r.minScore > 0 {
		details["min_score"] = fmt.Sprintf("%v", r.minScore)
	}
	return Status{Name: r.Name(), Enabled: true, Details: details}
}
