// Package matching ranks candidate profiles for a requester and refines
// the ranked list through an ordered pipeline of post-rank steps.
package matching

import (
	"encoding/json"
	"os"

	"github.com/palettehq/artmatch/internal/artist"
	"github.com/palettehq/artmatch/internal/scoring"
)

// Match is one ranked pairing. The JSON field names are the wire contract.
type Match struct {
	Artist         *artist.Profile   `json:"artist"`
	Score          float64           `json:"compatibility_score"`
	Breakdown      scoring.Breakdown `json:"score_breakdown"`
	Insights       []string          `json:"insights"`
	Tier           string            `json:"tier"`
	AnalysisSource string            `json:"analysis_source"`
}

// Matches is an ordered result list, best first.
type Matches struct {
	Items []*Match `json:"matches"`
}

func (m *Matches) Len() int {
	return len(m.Items)
}

// Top returns the best match or nil for an empty list.
func (m *Matches) Top() *Match {
	if len(m.Items) == 0 {
		return nil
	}
	return m.Items[0]
}

func (m *Matches) ArtistIDs() []string {
	ids := make([]string, 0, len(m.Items))
	for _, match := range m.Items {
		ids = append(ids, match.Artist.ID)
	}
	return ids
}

// Exclude removes matches whose artist ID is in targets, preserving the
// order of the remaining matches. It returns the IDs actually removed.
func (m *Matches) Exclude(targets []string) []string {
	var excluded []string
	for _, target := range targets {
		for idx, match := range m.Items {
			if match.Artist.ID == target {
				m.RemoveByIndex(idx)
				excluded = append(excluded, target)
				break
			}
		}
	}
	return excluded
}

func (m *Matches) RemoveByIndex(idx int) {
	m.Items = append(m.Items[:idx], m.Items[idx+1:]...)
}

func (m *Matches) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return "", err
	}
	return file.Name(), nil
}
