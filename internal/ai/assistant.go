package ai

import (
	"context"

	"github.com/palettehq/artmatch/internal/artist"
)

// Analysis sources, from most to least structured. Local means the
// rule-based path produced the result without any provider involvement.
const (
	SourceStructured = "structured"
	SourceText       = "text"
	SourceLocal      = "local"
)

// Analysis is the outcome of one enrichment call. Tools, Categories and
// Keywords are only populated by preference analysis; pair evaluation fills
// Score and Insights.
type Analysis struct {
	Source     string
	Score      float64
	Insights   []string
	Tools      []string
	Categories []string
	Keywords   []string
	Raw        string
}

// Enricher is implemented by AI providers. Both methods return an error when
// the provider produced nothing usable; callers degrade to the local path.
type Enricher interface {
	AnalyzePreference(ctx context.Context, preference string) (*Analysis, error)
	EvaluatePair(ctx context.Context, requester, candidate *artist.Profile, preference string) (*Analysis, error)
}
