package domain

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/kapu/busan-tour-bot-go/internal/util"
)

// DefaultLocale is used whenever a locale has no data of its own.
const DefaultLocale = "ko"

// Attraction is one recommendable point of interest. Names are unique within a
// single recommendation list.
type Attraction struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

// Recommendation is the ordered attraction list for one MBTI type in one locale.
type Recommendation struct {
	Type        MBTIType     `json:"type"`
	Locale      string       `json:"locale"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Attractions []Attraction `json:"attractions"`
}

// FindAttraction looks an attraction up by name, ignoring case, spacing and
// punctuation.
func (r *Recommendation) FindAttraction(name string) (Attraction, bool) {
	if r == nil {
		return Attraction{}, false
	}
	key := foldName(name)
	for _, a := range r.Attractions {
		if foldName(a.Name) == key {
			return a, true
		}
	}
	return Attraction{}, false
}

type localizedRecommendation struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Attractions []Attraction `json:"attractions"`
}

type recommendationEntry struct {
	Type    MBTIType                           `json:"type"`
	Locales map[string]localizedRecommendation `json:"locales"`
}

// RecommendationData is the embedded per-type, per-locale dataset.
type RecommendationData struct {
	Version string                 `json:"version"`
	Types   []*recommendationEntry `json:"types"`

	byType map[MBTIType]*recommendationEntry
}

//go:embed data/recommendations.json
var recommendationsJSON []byte

// LoadRecommendationData parses the embedded recommendation dataset.
func LoadRecommendationData() (*RecommendationData, error) {
	var data RecommendationData
	if err := json.Unmarshal(recommendationsJSON, &data); err != nil {
		return nil, fmt.Errorf("failed to parse recommendations: %w", err)
	}

	data.byType = make(map[MBTIType]*recommendationEntry, len(data.Types))
	for _, entry := range data.Types {
		if entry == nil || !entry.Type.IsValid() {
			continue
		}
		data.byType[entry.Type] = entry
	}
	return &data, nil
}

// Lookup returns the recommendation for mbti in locale, falling back to the
// Korean data when the locale is missing. ok is false for unknown types.
func (d *RecommendationData) Lookup(mbti MBTIType, locale string) (*Recommendation, bool) {
	if d == nil {
		return nil, false
	}
	entry, ok := d.byType[mbti]
	if !ok {
		return nil, false
	}

	resolved := locale
	loc, ok := entry.Locales[locale]
	if !ok {
		resolved = DefaultLocale
		loc, ok = entry.Locales[DefaultLocale]
		if !ok {
			return nil, false
		}
	}

	attractions := make([]Attraction, len(loc.Attractions))
	copy(attractions, loc.Attractions)

	return &Recommendation{
		Type:        mbti,
		Locale:      resolved,
		Title:       loc.Title,
		Description: loc.Description,
		Attractions: attractions,
	}, true
}

// Entries iterates every (type, locale) pair in dataset order.
func (d *RecommendationData) Entries() []*Recommendation {
	if d == nil {
		return nil
	}
	out := make([]*Recommendation, 0, len(d.Types)*2)
	for _, entry := range d.Types {
		if entry == nil {
			continue
		}
		for _, locale := range sortedLocales(entry.Locales) {
			if rec, ok := d.Lookup(entry.Type, locale); ok {
				out = append(out, rec)
			}
		}
	}
	return out
}

func sortedLocales(m map[string]localizedRecommendation) []string {
	locales := make([]string, 0, len(m))
	if _, ok := m[DefaultLocale]; ok {
		locales = append(locales, DefaultLocale)
	}
	for _, l := range []string{"en", "ja", "zh"} {
		if _, ok := m[l]; ok {
			locales = append(locales, l)
		}
	}
	return locales
}

func foldName(name string) string {
	return util.NormalizeKey(name)
}
