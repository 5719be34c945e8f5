// Package signals turns free-form profile and preference text into the
// structured tool, category and keyword signals consumed by scoring.
package signals

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/palettehq/artmatch/internal/artist"
)

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// minKeywordLen is the general token length cutoff; preference keywords use
// the stricter minPreferenceKeywordLen.
const (
	minKeywordLen           = 2
	minPreferenceKeywordLen = 3
)

const primaryLimit = 3

// ProfileSignals are derived per request and never cached across calls.
type ProfileSignals struct {
	// ToolCounts maps tool token to occurrence count across the bio and
	// every gallery field.
	ToolCounts map[string]int
	// PrimaryTools are the three highest-count tools, ties broken by
	// first-seen order.
	PrimaryTools []string
	// CategoryCounts holds weighted counts; categories with count zero are
	// absent from the map entirely.
	CategoryCounts map[string]int
	// PrimaryCategories are the top three categories, ties broken by
	// taxonomy declaration order.
	PrimaryCategories []string
	// Keywords are the preprocessed tokens of the bio and all gallery
	// descriptions, order preserved, duplicates retained.
	Keywords []string
}

// PreferenceAnalysis is the extracted shape of one preference text.
type PreferenceAnalysis struct {
	Tools      []string
	Categories []string
	Keywords   []string
	RawText    string
}

// Extractor derives signals using an injected vocabulary.
type Extractor struct {
	vocab *Vocabulary
}

// NewExtractor returns an extractor over the given vocabulary. A nil
// vocabulary falls back to the built-in one.
func NewExtractor(vocab *Vocabulary) *Extractor {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Extractor{vocab: vocab}
}

func (e *Extractor) Vocabulary() *Vocabulary {
	return e.vocab
}

// ExtractTools returns the vocabulary entries contained in text, in
// vocabulary order, each at most once per call. Matching is lowercase
// substring containment; aggregation across fragments is the caller's job.
func (e *Extractor) ExtractTools(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, tool := range e.vocab.Tools {
		if strings.Contains(lower, tool) {
			found = append(found, tool)
		}
	}
	return found
}

// ExtractProfile derives the full signal set for one profile. It never
// fails: empty or missing fields simply yield empty collections.
func (e *Extractor) ExtractProfile(p *artist.Profile) *ProfileSignals {
	if p == nil {
		return &ProfileSignals{ToolCounts: map[string]int{}, CategoryCounts: map[string]int{}}
	}

	toolCounts, primaryTools := e.extractProfileTools(p)
	categoryCounts, primaryCategories := e.extractProfileCategories(p)

	keywords := e.PreprocessText(p.Bio)
	for _, artwork := range p.Gallery {
		keywords = append(keywords, e.PreprocessText(artwork.Description)...)
	}

	return &ProfileSignals{
		ToolCounts:        toolCounts,
		PrimaryTools:      primaryTools,
		CategoryCounts:    categoryCounts,
		PrimaryCategories: primaryCategories,
		Keywords:          keywords,
	}
}

// extractProfileTools aggregates tool hits across the bio and each gallery
// medium and description, one hit per tool per fragment. Explicit skill
// hints bypass extraction entirely.
func (e *Extractor) extractProfileTools(p *artist.Profile) (map[string]int, []string) {
	counts := make(map[string]int)
	var order []string

	record := func(tools []string) {
		for _, tool := range tools {
			if counts[tool] == 0 {
				order = append(order, tool)
			}
			counts[tool]++
		}
	}

	if len(p.SkillHints) > 0 {
		for _, hint := range p.SkillHints {
			hint = strings.ToLower(strings.TrimSpace(hint))
			if hint == "" {
				continue
			}
			record([]string{hint})
		}
		// Hints are tags, not text: each counts once.
		for hint := range counts {
			counts[hint] = 1
		}
		return counts, topByCount(counts, order)
	}

	record(e.ExtractTools(p.Bio))
	for _, artwork := range p.Gallery {
		record(e.ExtractTools(artwork.Medium))
		record(e.ExtractTools(artwork.Description))
	}

	return counts, topByCount(counts, order)
}

// extractProfileCategories applies the weighted taxonomy: every trigger hit
// in the bio adds 3, every trigger hit per artwork adds 1. Two different
// triggers of the same category in a bio therefore add 6, not 3.
func (e *Extractor) extractProfileCategories(p *artist.Profile) (map[string]int, []string) {
	counts := make(map[string]int)
	var order []string

	bioLower := strings.ToLower(p.Bio)

	combined := make([]string, 0, len(p.Gallery))
	for _, artwork := range p.Gallery {
		combined = append(combined, strings.ToLower(artwork.Title+" "+artwork.Medium+" "+artwork.Description))
	}

	for _, rule := range e.vocab.Categories {
		total := 0
		for _, trigger := range rule.Triggers {
			if strings.Contains(bioLower, trigger) {
				total += 3
			}
			for _, text := range combined {
				if strings.Contains(text, trigger) {
					total++
				}
			}
		}
		if total > 0 {
			counts[rule.Name] = total
			order = append(order, rule.Name)
		}
	}

	return counts, topByCount(counts, order)
}

// PreprocessText lowercases, strips punctuation, splits on whitespace and
// drops stop words and tokens of length <= 2. Token order and duplicates
// are preserved.
func (e *Extractor) PreprocessText(text string) []string {
	return e.preprocess(text, minKeywordLen)
}

func (e *Extractor) preprocess(text string, minLen int) []string {
	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if strings.ContainsRune(punctuation, r) {
			continue
		}
		builder.WriteRune(r)
	}

	var words []string
	for _, word := range strings.Fields(builder.String()) {
		if _, stop := e.vocab.Stopwords[word]; stop {
			continue
		}
		if utf8.RuneCountInString(word) <= minLen {
			continue
		}
		words = append(words, word)
	}
	return words
}

// AnalyzePreference extracts the requirements flagged by one preference
// text. Unlike profile extraction, category matching here is a binary
// presence test and keywords use the stricter length cutoff.
func (e *Extractor) AnalyzePreference(text string) *PreferenceAnalysis {
	lower := strings.ToLower(text)

	var categories []string
	for _, rule := range e.vocab.PreferenceCategories {
		for _, trigger := range rule.Triggers {
			if strings.Contains(lower, trigger) {
				categories = append(categories, rule.Name)
				break
			}
		}
	}

	return &PreferenceAnalysis{
		Tools:      e.ExtractTools(text),
		Categories: categories,
		Keywords:   e.preprocess(text, minPreferenceKeywordLen),
		RawText:    text,
	}
}

// topByCount returns up to three keys ordered by count descending, keeping
// the supplied order (first-seen or taxonomy declaration) among equal
// counts.
func topByCount(counts map[string]int, order []string) []string {
	ranked := make([]string, len(order))
	copy(ranked, order)

	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	if len(ranked) > primaryLimit {
		ranked = ranked[:primaryLimit]
	}
	return ranked
}
