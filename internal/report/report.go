// Package report renders human-readable markdown reports for matches and
// analyzed preferences.
package report

import (
	"fmt"
	"strings"

	"github.com/palettehq/artmatch/internal/matching"
	"github.com/palettehq/artmatch/internal/signals"
)

const portfolioHighlights = 3

type factor struct {
	label string
	score float64
	limit float64
	// comments run from the Excellent band down to Limited.
	comments [5]string
}

var potentialLines = []struct {
	threshold float64
	text      string
}{
	{75, "**Exceptional Match (75%+):** This artist would be an ideal collaborator for your project. Their skills, experience, and art style align perfectly with your requirements."},
	{60, "**Strong Match (60-74%):** This artist would be a very good collaborator for your project. Their skills and experience align well with most of your requirements."},
	{45, "**Good Match (45-59%):** This artist would be a good collaborator for your project. While not perfect, they bring valuable skills that align with your core requirements."},
	{30, "**Potential Match (30-44%):** This artist could potentially collaborate on your project, but there may be some gaps in skills or experience that would need to be addressed."},
	{0, "**Limited Match (<30%):** This artist may not be the best fit for your specific project requirements, but could still bring unique perspectives."},
}

var toolDescriptions = map[string]string{
	"blender":       "3D modeling, rendering, and animation",
	"photoshop":     "Image editing and digital painting",
	"after effects": "Motion graphics and visual effects",
	"illustrator":   "Vector graphics and illustration",
	"procreate":     "Digital painting on iPad",
	"zbrush":        "Digital sculpting and painting",
	"unity":         "Game development and interactive experiences",
	"nft":           "Experience with blockchain art and NFT creation",
}

var artTypeDescriptions = map[string]string{
	"3d":              "Three-dimensional modeling, texturing, and rendering",
	"animation":       "Character or motion graphics animation",
	"illustration":    "Digital or traditional illustration",
	"photography":     "Digital photography and editing",
	"ui/ux":           "User interface and experience design",
	"concept art":     "Visual development for games, film, etc.",
	"mural":           "Large-scale or public artwork",
	"nft":             "Digital art for blockchain/NFT platforms",
	"ar/vr":           "Augmented or virtual reality experiences",
	"motion graphics": "Animated graphic design elements",
	"video":           "Video production or filmmaking",
	"music visual":    "Visual content for music or audio",
}

// FormatDetailedMatch renders one match as a markdown report: per-factor
// analysis, collaboration potential, insights and portfolio highlights.
func FormatDetailedMatch(m *matching.Match) string {
	if m == nil || m.Artist == nil {
		return ""
	}

	a := m.Artist
	location := a.Location
	if location == "" {
		location = "Not specified"
	}

	lines := []string{
		fmt.Sprintf("## %s - Compatibility Score: %.1f/100", a.Name, m.Score),
		fmt.Sprintf("**Location:** %s", location),
		fmt.Sprintf("**Bio:** %s", a.Bio),
		"",
		"### Detailed Compatibility Analysis:",
	}

	factors := []factor{
		{
			label: "Tool Expertise", score: m.Breakdown.ToolMatch, limit: 30,
			comments: [5]string{
				"This artist has exceptional proficiency in the exact tools you're looking for.",
				"This artist has strong experience with most of the tools you need.",
				"This artist has good familiarity with some of your required tools.",
				"This artist has basic experience with a few tools relevant to your project.",
				"This artist doesn't appear to use the specific tools you mentioned.",
			},
		},
		{
			label: "Art Type Alignment", score: m.Breakdown.ArtTypeMatch, limit: 30,
			comments: [5]string{
				"This artist specializes in exactly the type of work you need.",
				"This artist has strong experience in the art types you're looking for.",
				"This artist has good experience with some of the art types you need.",
				"This artist has some experience with art types related to your project.",
				"This artist works in different art types than what you specified.",
			},
		},
		{
			label: "Project Relevance", score: m.Breakdown.KeywordRelevance, limit: 20,
			comments: [5]string{
				"This artist's profile and portfolio strongly align with your project requirements.",
				"This artist's work is highly relevant to your project needs.",
				"This artist's work is somewhat relevant to your project.",
				"This artist's work has some basic relevance to your project.",
				"This artist's work doesn't directly align with your specific project requirements, but they may bring a fresh perspective.",
			},
		},
		{
			label: "Experience Level", score: m.Breakdown.Experience, limit: 10,
			comments: [5]string{
				"This artist has extensive professional experience in digital art, indicating mastery of their craft.",
				"This artist has significant professional experience in digital art, showing strong proficiency.",
				"This artist has good professional experience in digital art, demonstrating solid skills.",
				"This artist has some professional experience in digital art, showing developing skills.",
				"This artist's professional experience level is not specified or is limited.",
			},
		},
		{
			label: "Portfolio Quality", score: m.Breakdown.PortfolioQuality, limit: 10,
			comments: [5]string{
				"This artist has an outstanding portfolio with high-profile projects, awards, or recognition in the industry.",
				"This artist has a strong portfolio with notable projects and evidence of professional success.",
				"This artist has a good portfolio with solid examples of their work and some professional achievements.",
				"This artist has a basic portfolio showing their capabilities but with limited professional highlights.",
				"This artist's portfolio is limited or doesn't include significant professional work.",
			},
		},
	}
	for _, f := range factors {
		lines = append(lines, factorLine(f))
	}

	lines = append(lines, "", "### Collaboration Potential:", potentialLine(m.Score))

	lines = append(lines, "", "### Specific Collaboration Insights:")
	for _, insight := range m.Insights {
		lines = append(lines, "- "+insight)
	}

	lines = append(lines, "", "### Portfolio Highlights:")
	highlights := a.Gallery
	if len(highlights) > portfolioHighlights {
		highlights = highlights[:portfolioHighlights]
	}
	for _, artwork := range highlights {
		lines = append(lines,
			fmt.Sprintf("- **%s** (%s) - %s", artwork.Title, artwork.Year, artwork.Medium),
			"  "+artwork.Description,
		)
	}

	return strings.Join(lines, "\n")
}

// FormatProjectRequirements renders an analyzed preference as a markdown
// requirements summary.
func FormatProjectRequirements(preference string, analysis *signals.PreferenceAnalysis) string {
	if analysis == nil {
		analysis = &signals.PreferenceAnalysis{}
	}

	lines := []string{
		"## Project Requirements Analysis",
		"",
		fmt.Sprintf("**Original Request:** %s", preference),
		"",
		"### Technical Requirements:",
	}

	if len(analysis.Tools) > 0 {
		lines = append(lines, "#### Required Tools/Software:")
		for _, tool := range analysis.Tools {
			switch {
			case tool == "ar" || tool == "vr":
				upper := strings.ToUpper(tool)
				lines = append(lines, fmt.Sprintf("- **%s:** %s development experience", upper, upper))
			case toolDescriptions[tool] != "":
				lines = append(lines, fmt.Sprintf("- **%s:** %s", titleCase(tool), toolDescriptions[tool]))
			default:
				lines = append(lines, fmt.Sprintf("- **%s:** Digital art tool", titleCase(tool)))
			}
		}
	} else {
		lines = append(lines, "No specific tools were mentioned in your request.")
	}

	lines = append(lines, "", "#### Art Type Requirements:")
	if len(analysis.Categories) > 0 {
		for _, artType := range analysis.Categories {
			description := artTypeDescriptions[artType]
			if description == "" {
				description = "Digital art style"
			}
			lines = append(lines, fmt.Sprintf("- **%s:** %s", titleCase(artType), description))
		}
	} else {
		lines = append(lines, "No specific art types were mentioned in your request.")
	}

	if len(analysis.Keywords) > 2 {
		lines = append(lines, "", "#### Additional Keywords/Requirements:")
		listed := 0
		for _, keyword := range analysis.Keywords {
			if listed == 5 {
				break
			}
			if contains(analysis.Tools, keyword) || contains(analysis.Categories, keyword) {
				continue
			}
			lines = append(lines, fmt.Sprintf("- **%s**", titleCase(keyword)))
			listed++
		}
	}

	return strings.Join(lines, "\n")
}

func factorLine(f factor) string {
	percentage := 0.0
	if f.limit > 0 {
		percentage = f.score / f.limit * 100
	}

	idx := 4
	band := "Limited"
	switch {
	case percentage >= 80:
		idx, band = 0, "Excellent"
	case percentage >= 60:
		idx, band = 1, "Strong"
	case percentage >= 40:
		idx, band = 2, "Good"
	case percentage >= 20:
		idx, band = 3, "Basic"
	}

	return fmt.Sprintf("**%s (%s - %v/%v):** %s", f.label, band, f.score, f.limit, f.comments[idx])
}

func potentialLine(score float64) string {
	for _, entry := range potentialLines {
		if score >= entry.threshold {
			return entry.text
		}
	}
	return potentialLines[len(potentialLines)-1].text
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func contains(list []string, target string) bool {
	for _, entry := range list {
		if entry == target {
			return true
		}
	}
	return false
}
