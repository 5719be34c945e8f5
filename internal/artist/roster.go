package artist

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const (
	ProfileIDField       = "ID"
	ProfileLocationField = "Location"
)

// Roster is the candidate pool supplied by the caller. The core never
// mutates profiles, only the membership of the list.
type Roster struct {
	Items []*Profile `json:"artists"`
}

// Profile describes one artist. ID uniqueness is the caller's responsibility.
type Profile struct {
	ID       string    `json:"id,omitempty"`
	Name     string    `json:"name,omitempty"`
	Bio      string    `json:"bio,omitempty"`
	Location string    `json:"location,omitempty"`
	Gallery  []Artwork `json:"gallery,omitempty"`
	// PreferenceText is the stored default collaboration preference, used
	// when a match request does not carry its own preference text.
	PreferenceText string `json:"preference_text,omitempty"`
	// SkillHints are explicit tags supplied by the caller. When present they
	// bypass tool extraction entirely.
	SkillHints []string `json:"skill_hints,omitempty"`
}

// Artwork is a single portfolio entry. Year is a passthrough string since
// rosters in the wild carry values like "2023-2024" or "ongoing".
type Artwork struct {
	Title       string `json:"title,omitempty"`
	Year        string `json:"year,omitempty"`
	Medium      string `json:"medium,omitempty"`
	Description string `json:"description,omitempty"`
}

type ExcludedArtists struct {
	Items []*ExcludedArtist
}

type ExcludedArtist struct {
	ID         string
	Name       string
	ExcludedAt time.Time
}

// LoadRoster reads a roster file. An empty file yields an empty roster.
func LoadRoster(path string) (*Roster, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &Roster{}, nil
	}

	var roster Roster
	if err := json.NewDecoder(file).Decode(&roster); err != nil {
		return nil, fmt.Errorf("decoding roster file %s: %w", path, err)
	}
	return &roster, nil
}

func (r *Roster) Len() int {
	return len(r.Items)
}

func (r *Roster) FindByID(id string) *Profile {
	for _, profile := range r.Items {
		if profile.ID == id {
			return profile
		}
	}
	return nil
}

func (p *Profile) GetStringField(name string) string {
	switch name {
	case ProfileIDField:
		return p.ID
	case ProfileLocationField:
		return p.Location

	default:
		return ""
	}
}

// Exclude removes profiles from the list by the given field. Order of the
// remaining profiles is preserved.
func (r *Roster) Exclude(name string, targets []string) []string {
	var excluded []string
	for _, target := range targets {
		for idx, profile := range r.Items {
			if profile.GetStringField(name) == target {
				r.RemoveByIndex(idx)
				excluded = append(excluded, profile.ID)
				break
			}
		}
	}
	return excluded
}

// RemoveByIndex removes a profile from the list by index, preserving order.
func (r *Roster) RemoveByIndex(idx int) {
	r.Items = append(r.Items[:idx], r.Items[idx+1:]...)
}

func (r *Roster) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "roster_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByLocation groups profile summaries by their location label.
func (r *Roster) ReportByLocation() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, profile := range r.Items {
		key := profile.Location
		if key == "" {
			key = "unknown"
		}
		report[key] = append(report[key], map[string]string{
			"id":       profile.ID,
			"name":     profile.Name,
			"bio":      profile.Bio,
			"artworks": fmt.Sprintf("%d", len(profile.Gallery)),
		})
	}
	return report
}

func (r *Roster) ToExcluded() *ExcludedArtists {
	excluded := &ExcludedArtists{}
	for _, profile := range r.Items {
		excluded.Items = append(excluded.Items, &ExcludedArtist{
			ID:         profile.ID,
			Name:       profile.Name,
			ExcludedAt: time.Now().UTC(),
		})
	}
	return excluded
}

func GetExcludedArtistsFromFile(path string) (*ExcludedArtists, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedArtists{}, nil
	}

	var excluded ExcludedArtists
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedArtists) Append(s *ExcludedArtists) {
	e.Items = append(e.Items, s.Items...)
}

func (e *ExcludedArtists) ArtistIDs() []string {
	ids := make([]string, 0)
	for _, item := range e.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (e *ExcludedArtists) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return err
	}
	return nil
}
