package matching

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/palettehq/artmatch/internal/ai"
	"github.com/palettehq/artmatch/internal/artist"
)

type fakeEnricher struct {
	prefAnalysis *ai.Analysis
	prefErr      error
	pairAnalysis *ai.Analysis
	pairErr      error
	pairCalls    []string
}

func (f *fakeEnricher) AnalyzePreference(_ context.Context, _ string) (*ai.Analysis, error) {
	if f.prefErr != nil {
		return nil, f.prefErr
	}
	return f.prefAnalysis, nil
}

func (f *fakeEnricher) EvaluatePair(_ context.Context, _, candidate *artist.Profile, _ string) (*ai.Analysis, error) {
	f.pairCalls = append(f.pairCalls, candidate.ID)
	if f.pairErr != nil {
		return nil, f.pairErr
	}
	return f.pairAnalysis, nil
}

func testRoster() *artist.Roster {
	return &artist.Roster{Items: []*artist.Profile{
		{
			ID:             "req",
			Name:           "Requester",
			Bio:            "Illustrator and art director",
			PreferenceText: "3D work in blender, stylized environments",
		},
		{
			ID:  "strong",
			Bio: "3D artist working in Blender and ZBrush. 6+ years.",
			Gallery: []artist.Artwork{
				{Title: "Dunes", Medium: "Blender", Description: "Featured stylized environments piece"},
				{Title: "Tides", Medium: "Blender", Description: "Sold at auction"},
			},
		},
		{
			ID:  "weak-a",
			Bio: "Watercolor painter",
		},
		{
			ID:  "weak-b",
			Bio: "Watercolor painter",
		},
	}}
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	t.Parallel()

	ranker := NewRanker(nil, nil, nil, zap.NewNop())
	matches, err := ranker.Rank(context.Background(), "req", "", testRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if matches.Len() != 3 {
		t.Fatalf("expected 3 matches, got %d", matches.Len())
	}
	if matches.Top().Artist.ID != "strong" {
		t.Fatalf("expected strong candidate first, got %q", matches.Top().Artist.ID)
	}
	for i := 1; i < matches.Len(); i++ {
		if matches.Items[i-1].Score < matches.Items[i].Score {
			t.Fatalf("matches not sorted descending: %v then %v",
				matches.Items[i-1].Score, matches.Items[i].Score)
		}
	}
}

func TestRankExcludesRequester(t *testing.T) {
	t.Parallel()

	ranker := NewRanker(nil, nil, nil, zap.NewNop())
	matches, err := ranker.Rank(context.Background(), "req", "", testRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range matches.ArtistIDs() {
		if id == "req" {
			t.Fatal("requester present in its own result")
		}
	}
}

func TestRankDeterministic(t *testing.T) {
	t.Parallel()

	ranker := NewRanker(nil, nil, nil, zap.NewNop())
	roster := testRoster()

	first, err := ranker.Rank(context.Background(), "req", "", roster)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ranker.Rank(context.Background(), "req", "", roster)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("ranking not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestRankEqualScoresKeepRosterOrder(t *testing.T) {
	t.Parallel()

	ranker := NewRanker(nil, nil, nil, zap.NewNop())
	matches, err := ranker.Rank(context.Background(), "req", "", testRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var ties []string
	for _, match := range matches.Items {
		if match.Artist.ID == "weak-a" || match.Artist.ID == "weak-b" {
			ties = append(ties, match.Artist.ID)
		}
	}
	if !reflect.DeepEqual(ties, []string{"weak-a", "weak-b"}) {
		t.Fatalf("tie did not keep roster order: %v", ties)
	}
}

func TestRankUnknownRequester(t *testing.T) {
	t.Parallel()

	ranker := NewRanker(nil, nil, nil, zap.NewNop())
	matches, err := ranker.Rank(context.Background(), "nobody", "", testRoster())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if matches.Len() != 0 {
		t.Fatalf("expected empty result, got %d matches", matches.Len())
	}
}

func TestRankPreferenceFallsBackToStoredText(t *testing.T) {
	t.Parallel()

	ranker := NewRanker(nil, nil, nil, zap.NewNop())

	explicit, err := ranker.Rank(context.Background(), "req", "3D work in blender, stylized environments", testRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	implicit, err := ranker.Rank(context.Background(), "req", "", testRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(explicit, implicit) {
		t.Fatal("empty preference did not fall back to the stored preference text")
	}
}

func TestRankScoreEqualsBreakdownSum(t *testing.T) {
	t.Parallel()

	ranker := NewRanker(nil, nil, nil, zap.NewNop())
	matches, err := ranker.Rank(context.Background(), "req", "", testRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, match := range matches.Items {
		if match.Score < 0 || match.Score > 100 {
			t.Fatalf("score out of bounds: %v", match.Score)
		}
		if match.Score != match.Breakdown.Total() {
			t.Fatalf("score %v does not match breakdown sum %v", match.Score, match.Breakdown.Total())
		}
		if match.AnalysisSource != ai.SourceLocal {
			t.Fatalf("expected local source without enricher, got %q", match.AnalysisSource)
		}
	}
}

func TestRankEnricherReplacesInsights(t *testing.T) {
	t.Parallel()

	enricher := &fakeEnricher{
		prefErr: errors.New("no structured preference"),
		pairAnalysis: &ai.Analysis{
			Source:   ai.SourceStructured,
			Score:    88,
			Insights: []string{"Shared toolchain", "Complementary styles"},
		},
	}
	ranker := NewRanker(nil, nil, enricher, zap.NewNop())

	matches, err := ranker.Rank(context.Background(), "req", "", testRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(enricher.pairCalls) != 3 {
		t.Fatalf("expected a pair call per candidate, got %v", enricher.pairCalls)
	}

	top := matches.Top()
	if top.AnalysisSource != ai.SourceStructured {
		t.Fatalf("expected structured source, got %q", top.AnalysisSource)
	}
	if !reflect.DeepEqual(top.Insights, []string{"Shared toolchain", "Complementary styles"}) {
		t.Fatalf("insights not replaced: %v", top.Insights)
	}
	// The rubric score stays authoritative.
	if top.Score != top.Breakdown.Total() {
		t.Fatalf("score %v does not match breakdown sum %v", top.Score, top.Breakdown.Total())
	}
}

func TestRankEnricherFailureDegradesToLocal(t *testing.T) {
	t.Parallel()

	enricher := &fakeEnricher{
		prefErr: errors.New("provider down"),
		pairErr: errors.New("provider down"),
	}
	ranker := NewRanker(nil, nil, enricher, zap.NewNop())

	withEnricher, err := ranker.Rank(context.Background(), "req", "", testRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	local, err := NewRanker(nil, nil, nil, zap.NewNop()).Rank(context.Background(), "req", "", testRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(withEnricher, local) {
		t.Fatal("failing enricher changed the local result")
	}
}

func TestRankPreferenceEnrichmentReplacesOnlyNonEmpty(t *testing.T) {
	t.Parallel()

	// Tools come back from the provider, categories and keywords do not:
	// the locally extracted categories must survive.
	enricher := &fakeEnricher{
		prefAnalysis: &ai.Analysis{
			Source: ai.SourceStructured,
			Tools:  []string{"procreate"},
		},
		pairErr: errors.New("pair evaluation disabled"),
	}
	ranker := NewRanker(nil, nil, enricher, zap.NewNop())

	roster := &artist.Roster{Items: []*artist.Profile{
		{ID: "req", PreferenceText: "3D work in blender"},
		{
			ID:  "cand",
			Bio: "Procreate illustrator, 3D on the side with blender",
			Gallery: []artist.Artwork{
				{Medium: "Procreate", Description: "Daily sketch series"},
			},
		},
	}}

	matches, err := ranker.Rank(context.Background(), "req", "", roster)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matches.Len() != 1 {
		t.Fatalf("expected one match, got %d", matches.Len())
	}

	match := matches.Top()
	var toolInsight, categoryInsight bool
	for _, insight := range match.Insights {
		switch {
		case insight == "Uses requested tools: procreate":
			toolInsight = true
		case insight == "Specializes in requested art types: 3d":
			categoryInsight = true
		}
	}
	if !toolInsight {
		t.Fatalf("expected replaced tools to drive the match, got %v", match.Insights)
	}
	if !categoryInsight {
		t.Fatalf("expected local categories to survive, got %v", match.Insights)
	}
}

func TestRankNilRoster(t *testing.T) {
	t.Parallel()

	ranker := NewRanker(nil, nil, nil, zap.NewNop())
	matches, err := ranker.Rank(context.Background(), "req", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matches.Len() != 0 {
		t.Fatalf("expected empty result, got %d", matches.Len())
	}
}
