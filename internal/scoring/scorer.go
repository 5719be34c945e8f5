// Package scoring implements the weighted compatibility rubric: five
// additive terms capped at 30/30/20/10/10 points.
package scoring

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/palettehq/artmatch/internal/artist"
	"github.com/palettehq/artmatch/internal/signals"
)

// Term caps. Each term is clamped before summation, so the total is in
// [0,100] by construction.
const (
	toolMatchCap        = 30
	toolFallbackCap     = 15
	categoryMatchCap    = 30
	categoryFallbackCap = 15
	keywordCap          = 20
	experienceCap       = 10
	portfolioVolumeCap  = 5
	portfolioQualityCap = 5
	portfolioCap        = 10

	matchMultiplier    = 10
	fallbackMultiplier = 5
	keywordMultiplier  = 5
	experiencePerYear  = 2
	volumePerArtwork   = 2

	maxKeywordInsights = 3
)

// yearsPattern picks up mentions like "6+ years" or "3 year". The first
// match wins; later mentions are not aggregated.
var yearsPattern = regexp.MustCompile(`(\d+)\+?\s*years?`)

// Breakdown is the per-factor score map. Field order mirrors the rubric
// weights; the JSON keys are the wire contract.
type Breakdown struct {
	ToolMatch        float64 `json:"tool_match"`
	ArtTypeMatch     float64 `json:"art_type_match"`
	KeywordRelevance float64 `json:"keyword_relevance"`
	Experience       float64 `json:"experience"`
	PortfolioQuality float64 `json:"portfolio_quality"`
}

// Total is the compatibility score. It equals the exact sum of the five
// terms, which callers rely on when verifying additivity.
func (b Breakdown) Total() float64 {
	return b.ToolMatch + b.ArtTypeMatch + b.KeywordRelevance + b.Experience + b.PortfolioQuality
}

// Assessment is the scored outcome for one candidate.
type Assessment struct {
	Score     float64
	Breakdown Breakdown
	Insights  []string
}

// Scorer evaluates candidates against an analyzed preference. It never
// errors: missing fields zero the corresponding term.
type Scorer struct {
	extractor *signals.Extractor
}

func NewScorer(extractor *signals.Extractor) *Scorer {
	if extractor == nil {
		extractor = signals.NewExtractor(nil)
	}
	return &Scorer{extractor: extractor}
}

// Score computes the weighted compatibility of one candidate. The
// requester's own signals do not enter the formula; only the candidate and
// the preference do.
func (s *Scorer) Score(candidate *artist.Profile, candidateSignals *signals.ProfileSignals, pref *signals.PreferenceAnalysis) *Assessment {
	if candidate == nil {
		candidate = &artist.Profile{}
	}
	if candidateSignals == nil {
		candidateSignals = &signals.ProfileSignals{}
	}
	if pref == nil {
		pref = &signals.PreferenceAnalysis{}
	}

	var breakdown Breakdown
	var insights []string

	breakdown.ToolMatch, insights = s.scoreTools(candidateSignals, pref, insights)
	breakdown.ArtTypeMatch, insights = s.scoreCategories(candidateSignals, pref, insights)
	breakdown.KeywordRelevance, insights = s.scoreKeywords(candidateSignals, pref, insights)
	breakdown.Experience, insights = s.scoreExperience(candidate.Bio, insights)
	breakdown.PortfolioQuality = s.scorePortfolio(candidate.Gallery)

	if candidate.Location != "" {
		insights = append(insights, fmt.Sprintf("Based in %s", candidate.Location))
	}

	return &Assessment{
		Score:     breakdown.Total(),
		Breakdown: breakdown,
		Insights:  insights,
	}
}

// scoreTools awards 10 points per requested tool found among the
// candidate's primary tools. Without a requested tool list the candidate
// gets half weight for simply having primary tools, capped at 15.
func (s *Scorer) scoreTools(candidateSignals *signals.ProfileSignals, pref *signals.PreferenceAnalysis, insights []string) (float64, []string) {
	if len(pref.Tools) == 0 {
		return capped(len(candidateSignals.PrimaryTools)*fallbackMultiplier, toolFallbackCap), insights
	}

	matched := intersect(pref.Tools, candidateSignals.PrimaryTools)
	score := capped(len(matched)*matchMultiplier, toolMatchCap)
	if len(matched) > 0 {
		insights = append(insights, fmt.Sprintf("Uses requested tools: %s", strings.Join(matched, ", ")))
	}
	return score, insights
}

func (s *Scorer) scoreCategories(candidateSignals *signals.ProfileSignals, pref *signals.PreferenceAnalysis, insights []string) (float64, []string) {
	if len(pref.Categories) == 0 {
		return capped(len(candidateSignals.PrimaryCategories)*fallbackMultiplier, categoryFallbackCap), insights
	}

	matched := intersect(pref.Categories, candidateSignals.PrimaryCategories)
	score := capped(len(matched)*matchMultiplier, categoryMatchCap)
	if len(matched) > 0 {
		insights = append(insights, fmt.Sprintf("Specializes in requested art types: %s", strings.Join(matched, ", ")))
	}
	return score, insights
}

func (s *Scorer) scoreKeywords(candidateSignals *signals.ProfileSignals, pref *signals.PreferenceAnalysis, insights []string) (float64, []string) {
	if len(pref.Keywords) == 0 {
		return 0, insights
	}

	candidateWords := make(map[string]struct{}, len(candidateSignals.Keywords))
	for _, word := range candidateSignals.Keywords {
		candidateWords[word] = struct{}{}
	}

	var matched []string
	seen := make(map[string]struct{})
	for _, keyword := range pref.Keywords {
		if _, dup := seen[keyword]; dup {
			continue
		}
		seen[keyword] = struct{}{}
		if _, ok := candidateWords[keyword]; ok {
			matched = append(matched, keyword)
		}
	}

	score := capped(len(matched)*keywordMultiplier, keywordCap)
	if len(matched) > 0 {
		shown := matched
		if len(shown) > maxKeywordInsights {
			shown = shown[:maxKeywordInsights]
		}
		insights = append(insights, fmt.Sprintf("Profile matches key terms: %s", strings.Join(shown, ", ")))
	}
	return score, insights
}

func (s *Scorer) scoreExperience(bio string, insights []string) (float64, []string) {
	match := yearsPattern.FindStringSubmatch(bio)
	if match == nil {
		return 0, insights
	}

	years, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, insights
	}

	insights = append(insights, fmt.Sprintf("Has %d+ years of experience", years))
	return capped(years*experiencePerYear, experienceCap), insights
}

// scorePortfolio combines a volume term with a quality term. An artwork
// counts once toward quality no matter how many markers its description
// contains.
func (s *Scorer) scorePortfolio(gallery []artist.Artwork) float64 {
	volume := capped(len(gallery)*volumePerArtwork, portfolioVolumeCap)

	quality := 0
	markers := s.extractor.Vocabulary().QualityMarkers
	for _, artwork := range gallery {
		description := strings.ToLower(artwork.Description)
		for _, marker := range markers {
			if strings.Contains(description, marker) {
				quality++
				break
			}
		}
	}

	score := volume + capped(quality, portfolioQualityCap)
	if score > portfolioCap {
		score = portfolioCap
	}
	return score
}

// intersect returns the requested entries present in the candidate set,
// preserving request order so that insights stay deterministic.
func intersect(requested, available []string) []string {
	set := make(map[string]struct{}, len(available))
	for _, entry := range available {
		set[entry] = struct{}{}
	}

	var matched []string
	seen := make(map[string]struct{})
	for _, entry := range requested {
		if _, dup := seen[entry]; dup {
			continue
		}
		seen[entry] = struct{}{}
		if _, ok := set[entry]; ok {
			matched = append(matched, entry)
		}
	}
	return matched
}

func capped(value int, limit float64) float64 {
	score := float64(value)
	if score > limit {
		return limit
	}
	return score
}
