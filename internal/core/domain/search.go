package domain

import "strings"

// SearchResult is the search-bar payload for a single query.
// It is immutable once stored in a lookup cache.
type SearchResult struct {
	// Tags are matching catalogue tags.
	Tags []string `json:"tags" yaml:"tags"`

	// Items are matching item names.
	Items []string `json:"items" yaml:"items"`

	// Brands are matching brand names.
	Brands []string `json:"brands" yaml:"brands"`

	// Errored marks a placeholder result produced after a failed lookup.
	Errored bool `json:"errored,omitempty" yaml:"errored,omitempty"`
}

// EmptyErrored returns the neutral result shown when a lookup fails.
func EmptyErrored() SearchResult {
	return SearchResult{
		Tags:    []string{},
		Items:   []string{},
		Brands:  []string{},
		Errored: true,
	}
}

// IsEmpty reports whether the result has nothing to show.
func (r SearchResult) IsEmpty() bool {
	return len(r.Tags) == 0 && len(r.Items) == 0 && len(r.Brands) == 0
}

// Count returns the total number of entries across all sections.
func (r SearchResult) Count() int {
	return len(r.Tags) + len(r.Items) + len(r.Brands)
}

// Normalise returns a copy with nil sections replaced by empty slices and
// blank entries removed. Payloads are normalised once at the boundary.
func (r SearchResult) Normalise() SearchResult {
	return SearchResult{
		Tags:    cleanEntries(r.Tags),
		Items:   cleanEntries(r.Items),
		Brands:  cleanEntries(r.Brands),
		Errored: r.Errored,
	}
}

// BrandFor guesses which returned brand an item belongs to.
// An item whose name contains a brand name wins; otherwise a lone brand is
// used. Returns "" when the result gives no usable hint.
func (r SearchResult) BrandFor(item string) string {
	lowered := strings.ToLower(item)
	for _, brand := range r.Brands {
		if brand != "" && strings.Contains(lowered, strings.ToLower(brand)) {
			return brand
		}
	}
	if len(r.Brands) == 1 {
		return r.Brands[0]
	}
	return ""
}

func cleanEntries(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
