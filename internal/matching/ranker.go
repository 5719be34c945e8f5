package matching

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/palettehq/artmatch/internal/ai"
	"github.com/palettehq/artmatch/internal/artist"
	"github.com/palettehq/artmatch/internal/scoring"
	"github.com/palettehq/artmatch/internal/signals"
)

// Ranker scores every candidate in a roster against one requester. The
// enricher is optional; without it (or whenever it fails) the ranker runs
// the rule-based path only.
type Ranker struct {
	extractor *signals.Extractor
	scorer    *scoring.Scorer
	enricher  ai.Enricher
	logger    *zap.Logger
}

func NewRanker(extractor *signals.Extractor, scorer *scoring.Scorer, enricher ai.Enricher, logger *zap.Logger) *Ranker {
	if extractor == nil {
		extractor = signals.NewExtractor(nil)
	}
	if scorer == nil {
		scorer = scoring.NewScorer(extractor)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Ranker{
		extractor: extractor,
		scorer:    scorer,
		enricher:  enricher,
		logger:    logger,
	}
}

// Rank evaluates every roster member except the requester and returns them
// sorted by score descending. Equal scores keep roster order. An unknown
// requester yields an empty result, not an error.
func (r *Ranker) Rank(ctx context.Context, requesterID, preferenceText string, roster *artist.Roster) (*Matches, error) {
	matches := &Matches{}
	if roster == nil {
		return matches, nil
	}

	requester := roster.FindByID(requesterID)
	if requester == nil {
		r.logger.Warn("requester not found in roster", zap.String("requester_id", requesterID))
		return matches, nil
	}

	preference := strings.TrimSpace(preferenceText)
	if preference == "" {
		preference = strings.TrimSpace(requester.PreferenceText)
	}

	pref := r.analyzePreference(ctx, preference)

	for _, candidate := range roster.Items {
		if candidate.ID == requester.ID {
			continue
		}

		candidateSignals := r.extractor.ExtractProfile(candidate)
		assessment := r.scorer.Score(candidate, candidateSignals, pref)

		match := &Match{
			Artist:         candidate,
			Score:          assessment.Score,
			Breakdown:      assessment.Breakdown,
			Insights:       assessment.Insights,
			Tier:           scoring.TierFor(assessment.Score),
			AnalysisSource: ai.SourceLocal,
		}
		r.enrichMatch(ctx, requester, candidate, preference, match)

		matches.Items = append(matches.Items, match)
	}

	sort.SliceStable(matches.Items, func(i, j int) bool {
		return matches.Items[i].Score > matches.Items[j].Score
	})

	return matches, nil
}

// analyzePreference runs the local extraction and lets the enricher
// override the extracted tools, categories and keywords when it returns
// non-empty replacements.
func (r *Ranker) analyzePreference(ctx context.Context, preference string) *signals.PreferenceAnalysis {
	pref := r.extractor.AnalyzePreference(preference)
	if r.enricher == nil || preference == "" {
		return pref
	}

	analysis, err := r.enricher.AnalyzePreference(ctx, preference)
	if err != nil {
		r.logger.Debug("preference enrichment failed, using local analysis", zap.Error(err))
		return pref
	}

	if len(analysis.Tools) > 0 {
		pref.Tools = analysis.Tools
	}
	if len(analysis.Categories) > 0 {
		pref.Categories = analysis.Categories
	}
	if len(analysis.Keywords) > 0 {
		pref.Keywords = analysis.Keywords
	}

	r.logger.Debug("preference enriched",
		zap.String("source", analysis.Source),
		zap.Strings("tools", pref.Tools),
		zap.Strings("categories", pref.Categories),
	)
	return pref
}

// enrichMatch replaces the rule-based insights with the enricher's when
// available. The rubric score and breakdown stay authoritative so the
// total always equals the breakdown sum.
func (r *Ranker) enrichMatch(ctx context.Context, requester, candidate *artist.Profile, preference string, match *Match) {
	if r.enricher == nil {
		return
	}

	analysis, err := r.enricher.EvaluatePair(ctx, requester, candidate, preference)
	if err != nil {
		r.logger.Debug("pair enrichment failed, keeping local assessment",
			zap.String("candidate_id", candidate.ID),
			zap.Error(err),
		)
		return
	}

	match.AnalysisSource = analysis.Source
	if len(analysis.Insights) > 0 {
		match.Insights = analysis.Insights
	}
}
