package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/palettehq/artmatch/internal/ai"
	"github.com/palettehq/artmatch/internal/artist"
	"github.com/palettehq/artmatch/internal/utils"
)

//go:embed preference_prompt.md
var preferenceTemplate string

//go:embed pair_prompt.md
var pairTemplate string

const (
	preferenceSystem = "You analyze collaboration preferences for a digital artist matching service. Respond with JSON only."
	pairSystem       = "You evaluate collaboration compatibility between two digital artists. Respond with JSON only."

	defaultMaxLogLength = 200

	// defaultTextScore is assumed when a free-text response carries no
	// recognizable score.
	defaultTextScore = 50

	maxInsights      = 5
	minInsightLength = 10

	galleryHighlights = 3
)

// scorePatterns are tried in order against free-text responses. A match
// outside [0,100] is skipped, not clamped.
var scorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)score:\s*(\d+)`),
	regexp.MustCompile(`(?i)compatibility score:\s*(\d+)`),
	regexp.MustCompile(`(?i)compatibility:\s*(\d+)`),
	regexp.MustCompile(`(?i)score of (\d+)`),
	regexp.MustCompile(`(?i)(\d+)/100`),
	regexp.MustCompile(`(?i)(\d+) out of 100`),
}

var insightMarkers = []string{"1.", "2.", "3.", "4.", "5.", "-", "•"}

var keyPhrases = []string{"would be", "could", "skills", "experience", "complementary", "synergy"}

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Enricher turns Gemini responses into analyses, degrading from structured
// JSON to free-text extraction. The rule-based local tier lives with the
// ranker; this type only reports errors for it to catch.
type Enricher struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewEnricher(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Enricher {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Enricher{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// AnalyzePreference asks the model to decompose a preference text into
// tools, art types and keywords.
func (e *Enricher) AnalyzePreference(ctx context.Context, preference string) (*ai.Analysis, error) {
	preference = strings.TrimSpace(preference)
	if preference == "" {
		return nil, errors.New("preference text is empty")
	}

	prompt := strings.ReplaceAll(preferenceTemplate, "{{PREFERENCE}}", preference)

	e.logger.Debug("gemini preference analysis request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, preferenceSystem, prompt)
	if err != nil {
		return nil, fmt.Errorf("analyze preference: %w", err)
	}

	e.logger.Debug("gemini preference analysis response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	return parseAnalysis(raw)
}

// EvaluatePair asks the model to score one requester/candidate pairing.
func (e *Enricher) EvaluatePair(ctx context.Context, requester, candidate *artist.Profile, preference string) (*ai.Analysis, error) {
	if requester == nil {
		return nil, errors.New("requester profile is required")
	}
	if candidate == nil {
		return nil, errors.New("candidate profile is required")
	}

	requesterJSON, err := json.MarshalIndent(profileSummary(requester), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal requester payload: %w", err)
	}

	candidateJSON, err := json.MarshalIndent(profileSummary(candidate), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal candidate payload: %w", err)
	}

	prompt := strings.ReplaceAll(pairTemplate, "{{REQUESTER_JSON}}", string(requesterJSON))
	prompt = strings.ReplaceAll(prompt, "{{CANDIDATE_JSON}}", string(candidateJSON))
	prompt = strings.ReplaceAll(prompt, "{{PREFERENCE}}", preference)

	e.logger.Debug("gemini pair evaluation request",
		zap.String("requester_id", requester.ID),
		zap.String("candidate_id", candidate.ID),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, pairSystem, prompt)
	if err != nil {
		return nil, fmt.Errorf("evaluate pair: %w", err)
	}

	e.logger.Debug("gemini pair evaluation response",
		zap.String("requester_id", requester.ID),
		zap.String("candidate_id", candidate.ID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	return parseAnalysis(raw)
}

// profileSummary trims a profile to what the prompt needs: identity fields
// plus the first few gallery entries.
func profileSummary(p *artist.Profile) map[string]any {
	highlights := p.Gallery
	if len(highlights) > galleryHighlights {
		highlights = highlights[:galleryHighlights]
	}

	gallery := make([]map[string]string, 0, len(highlights))
	for _, artwork := range highlights {
		gallery = append(gallery, map[string]string{
			"title":       artwork.Title,
			"medium":      artwork.Medium,
			"description": artwork.Description,
		})
	}

	return map[string]any{
		"name":     p.Name,
		"bio":      p.Bio,
		"location": p.Location,
		"gallery":  gallery,
	}
}

type analysisPayload struct {
	Score      float64  `mapstructure:"compatibility_score"`
	Insights   []string `mapstructure:"insights"`
	Tools      []string `mapstructure:"tools"`
	Categories []string `mapstructure:"art_types"`
	Keywords   []string `mapstructure:"keywords"`
}

// parseAnalysis walks the degradation ladder: structured JSON first, then
// free-text extraction. An empty response is the only hard failure.
func parseAnalysis(raw string) (*ai.Analysis, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("empty response")
	}

	if analysis := parseStructured(raw); analysis != nil {
		return analysis, nil
	}

	return &ai.Analysis{
		Source:   ai.SourceText,
		Score:    extractScore(raw),
		Insights: extractInsights(raw),
		Raw:      raw,
	}, nil
}

func parseStructured(raw string) *ai.Analysis {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return nil
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil
	}

	known := false
	for _, key := range []string{"compatibility_score", "insights", "tools", "art_types", "keywords"} {
		if _, ok := data[key]; ok {
			known = true
			break
		}
	}
	if !known {
		return nil
	}

	var payload analysisPayload
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &payload,
	})
	if err != nil {
		return nil
	}
	if err := decoder.Decode(data); err != nil {
		return nil
	}

	return &ai.Analysis{
		Source:     ai.SourceStructured,
		Score:      boundScore(payload.Score),
		Insights:   payload.Insights,
		Tools:      normalizeTerms(payload.Tools),
		Categories: normalizeTerms(payload.Categories),
		Keywords:   normalizeTerms(payload.Keywords),
		Raw:        raw,
	}
}

// extractJSON returns the outermost {...} block of the response, tolerating
// markdown fences and surrounding prose.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

func extractScore(raw string) float64 {
	for _, pattern := range scorePatterns {
		match := pattern.FindStringSubmatch(raw)
		if match == nil {
			continue
		}
		value, err := strconv.Atoi(match[1])
		if err != nil || value < 0 || value > 100 {
			continue
		}
		return float64(value)
	}
	return defaultTextScore
}

// extractInsights collects list items after numbered or bulleted markers;
// failing that, it falls back to sentences containing key phrases.
func extractInsights(raw string) []string {
	var insights []string
	seen := make(map[string]struct{})

	add := func(s string) {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) <= minInsightLength || len(insights) >= maxInsights {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		insights = append(insights, s)
	}

	for _, marker := range insightMarkers {
		if !strings.Contains(raw, marker) {
			continue
		}
		parts := strings.Split(raw, marker)
		for _, part := range parts[1:] {
			line, _, _ := strings.Cut(part, "\n")
			add(line)
		}
	}

	if len(insights) == 0 {
		for _, sentence := range strings.Split(raw, ".") {
			lower := strings.ToLower(sentence)
			for _, phrase := range keyPhrases {
				if strings.Contains(lower, phrase) {
					add(sentence)
					break
				}
			}
		}
	}

	return insights
}

func normalizeTerms(terms []string) []string {
	var out []string
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		out = append(out, term)
	}
	return out
}

func boundScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
