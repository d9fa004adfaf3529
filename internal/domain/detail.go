package domain

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// AttractionDetail is the optional long-form information for an attraction.
type AttractionDetail struct {
	Description string `json:"description"`
	Address     string `json:"address,omitempty"`
	Hours       string `json:"hours,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Homepage    string `json:"homepage,omitempty"`
}

//go:embed data/details.json
var detailsJSON []byte

type AttractionDetails struct {
	byName map[string]*AttractionDetail
}

func LoadAttractionDetails() (*AttractionDetails, error) {
	var raw map[string]*AttractionDetail
	if err := json.Unmarshal(detailsJSON, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse attraction details: %w", err)
	}

	index := make(map[string]*AttractionDetail, len(raw))
	for name, detail := range raw {
		if detail == nil {
			continue
		}
		index[foldName(name)] = detail
	}
	return &AttractionDetails{byName: index}, nil
}

// Find returns nil when the attraction has no detail entry.
func (d *AttractionDetails) Find(name string) *AttractionDetail {
	if d == nil {
		return nil
	}
	return d.byName[foldName(name)]
}
