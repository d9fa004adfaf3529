package domain

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed data/texts.json
var textsJSON []byte

// Texts is the localized label table (ko, en, ja, zh).
type Texts struct {
	byLocale map[string]map[string]string
}

func LoadTexts() (*Texts, error) {
	var raw map[string]map[string]string
	if err := json.Unmarshal(textsJSON, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse texts: %w", err)
	}
	return &Texts{byLocale: raw}, nil
}

// Get returns the label for key in locale. Unknown locales use Korean; unknown
// keys return the key itself.
func (t *Texts) Get(locale, key string) string {
	if t == nil {
		return key
	}
	table, ok := t.byLocale[locale]
	if !ok {
		table = t.byLocale[DefaultLocale]
	}
	if value, ok := table[key]; ok && value != "" {
		return value
	}
	return key
}
