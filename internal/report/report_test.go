package report

import (
	"strings"
	"testing"

	"github.com/palettehq/artmatch/internal/artist"
	"github.com/palettehq/artmatch/internal/matching"
	"github.com/palettehq/artmatch/internal/scoring"
	"github.com/palettehq/artmatch/internal/signals"
)

func TestFormatDetailedMatch(t *testing.T) {
	t.Parallel()

	match := &matching.Match{
		Artist: &artist.Profile{
			Name:     "Raj Patel",
			Location: "Mumbai, India",
			Bio:      "Digital fantasy illustrator - Procreate, Photoshop, Blender. 4+ years.",
			Gallery: []artist.Artwork{
				{Title: "Dragon Realm", Year: "2024", Medium: "Digital (Procreate + Photoshop)", Description: "Published book cover."},
				{Title: "Enchanted Forest", Year: "2023", Medium: "Digital (Blender + Photoshop)", Description: "Album art."},
				{Title: "Sky Citadel", Year: "2023", Medium: "Digital", Description: "Personal piece."},
				{Title: "Hidden", Year: "2022", Medium: "Digital", Description: "Must not appear."},
			},
		},
		Score: 74,
		Breakdown: scoring.Breakdown{
			ToolMatch:        20,
			ArtTypeMatch:     20,
			KeywordRelevance: 20,
			Experience:       8,
			PortfolioQuality: 6,
		},
		Insights: []string{"Uses requested tools: blender, photoshop"},
		Tier:     scoring.TierStrong,
	}

	output := FormatDetailedMatch(match)

	for _, want := range []string{
		"## Raj Patel - Compatibility Score: 74.0/100",
		"**Location:** Mumbai, India",
		"**Tool Expertise (Strong - 20/30):**",
		"**Art Type Alignment (Strong - 20/30):**",
		"**Project Relevance (Excellent - 20/20):**",
		"**Experience Level (Excellent - 8/10):**",
		"**Portfolio Quality (Strong - 6/10):**",
		"**Strong Match (60-74%):**",
		"- Uses requested tools: blender, photoshop",
		"- **Dragon Realm** (2024) - Digital (Procreate + Photoshop)",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, output)
		}
	}

	// Only the first three artworks are highlighted.
	if strings.Contains(output, "Must not appear") {
		t.Fatalf("expected gallery highlights to stop at three entries:\n%s", output)
	}
}

func TestFormatDetailedMatchEmptyLocation(t *testing.T) {
	t.Parallel()

	output := FormatDetailedMatch(&matching.Match{Artist: &artist.Profile{Name: "Nia"}})
	if !strings.Contains(output, "**Location:** Not specified") {
		t.Fatalf("expected location placeholder, got:\n%s", output)
	}
	if !strings.Contains(output, "**Limited Match (<30%):**") {
		t.Fatalf("expected limited potential for zero score, got:\n%s", output)
	}
}

func TestFormatDetailedMatchNil(t *testing.T) {
	t.Parallel()

	if got := FormatDetailedMatch(nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestFormatProjectRequirements(t *testing.T) {
	t.Parallel()

	analysis := &signals.PreferenceAnalysis{
		Tools:      []string{"blender", "ar", "toonboom"},
		Categories: []string{"3d", "mural"},
		Keywords:   []string{"stylized", "environments", "fantasy"},
	}

	output := FormatProjectRequirements("Looking for 3D artists who work in Blender", analysis)

	for _, want := range []string{
		"**Original Request:** Looking for 3D artists who work in Blender",
		"- **Blender:** 3D modeling, rendering, and animation",
		"- **AR:** AR development experience",
		"- **Toonboom:** Digital art tool",
		"- **3d:** Three-dimensional modeling, texturing, and rendering",
		"- **Mural:** Large-scale or public artwork",
		"- **Stylized**",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestFormatProjectRequirementsEmptyAnalysis(t *testing.T) {
	t.Parallel()

	output := FormatProjectRequirements("anything goes", nil)

	if !strings.Contains(output, "No specific tools were mentioned in your request.") {
		t.Fatalf("expected tools placeholder, got:\n%s", output)
	}
	if !strings.Contains(output, "No specific art types were mentioned in your request.") {
		t.Fatalf("expected art types placeholder, got:\n%s", output)
	}
}
