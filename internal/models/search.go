package models

// SearchCriteria is the structured form of a free-text property query. Every
// field is optional; pointer fields distinguish "absent" from zero values so
// an explicit hasPool=false from the extractor is honored.
type SearchCriteria struct {
	PropertyType string   `json:"property_type,omitempty"`
	District     string   `json:"district,omitempty"`
	Districts    []string `json:"districts,omitempty"`
	MinPrice     *float64 `json:"min_price,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	MinArea      *float64 `json:"min_area,omitempty"`
	MaxArea      *float64 `json:"max_area,omitempty"`
	HasPool      *bool    `json:"has_pool,omitempty"`
	Status       string   `json:"status,omitempty"`

	// Reasoning is an opaque annotation carried through from the AI
	// extractor. Never used for matching.
	Reasoning string `json:"reasoning,omitempty"`
}

// DistrictSet returns the districts to match against: Districts takes
// precedence over the single District field.
func (c *SearchCriteria) DistrictSet() []string {
	if len(c.Districts) > 0 {
		return c.Districts
	}
	if c.District != "" {
		return []string{c.District}
	}
	return nil
}

// OutcomeKind tags a SearchOutcome variant.
type OutcomeKind string

const (
	OutcomeNormal           OutcomeKind = "normal"
	OutcomeRegion           OutcomeKind = "region"
	OutcomeSuggestNeighbors OutcomeKind = "suggest_neighbors"
	OutcomeAI               OutcomeKind = "ai"
)

// SearchOutcome is the per-request result of the negotiation state machine.
// It is rendered and discarded; nothing here is persisted.
type SearchOutcome struct {
	Kind     OutcomeKind
	Listings []Listing

	// Region search.
	RegionLabel    string
	DistrictLabels []string

	// Neighbor suggestion.
	OriginalDistrict   string
	SuggestedDistricts []string
	OriginalCriteria   *SearchCriteria

	// AI-selected subset.
	Reasoning string
}

// NeighborContinuation is the stateless negotiation payload carried inside
// the confirmation button. It must be self-describing (the server holds no
// session row for the pending question) and compact enough for Telegram's
// callback-data cap; the wire format lives with the codec in the search
// package.
type NeighborContinuation struct {
	Districts []string
	Criteria  *SearchCriteria
	Locale    Locale
}
