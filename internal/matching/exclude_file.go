package matching

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/palettehq/artmatch/internal/artist"
)

type excludeFileRefiner struct {
	path string
}

// NewExcludeFile creates a refiner that removes matches whose artists are
// listed in an exclude file.
func NewExcludeFile() Refiner {
	return &excludeFileRefiner{}
}

func (r *excludeFileRefiner) Name() string { return "exclude_file" }

func (r *excludeFileRefiner) Disable(string) {}

func (r *excludeFileRefiner) IsEnabled() bool { return true }

func (r *excludeFileRefiner) Validate(cfg *Config) error {
	r.path = ""
	if cfg != nil {
		r.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	return nil
}

func (r *excludeFileRefiner) Apply(_ context.Context, deps Deps, m *Matches) (*Matches, Step, error) {
	initial := m.Len()
	if r.path == "" {
		return m, Step{Initial: initial, Dropped: 0, Left: m.Len()}, nil
	}

	excluded, err := artist.GetExcludedArtistsFromFile(r.path)
	if err != nil {
		return m, Step{}, fmt.Errorf("getting excluded artists from file: %w", err)
	}

	removed := m.Exclude(excluded.ArtistIDs())
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding matches based on exclude file",
			zap.String("path", r.path),
			zap.Strings("excluded_artists", removed),
			zap.Int("matches_left", m.Len()),
		)
	}

	return m, Step{Initial: initial, Dropped: len(removed), Left: m.Len()}, nil
}

func (r *excludeFileRefiner) Status() Status {
	details := map[string]string{}
	if r.path != "" {
		details["path"] = r.path
	}
	return Status{Name: r.Name(), Enabled: true, Details: details}
}
