package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/closet-cli/internal/core/domain"
)

// searchPayload is the search-bar response body.
type searchPayload struct {
	Tags   []string
	Items  []string
	Brands []string

	// sawKeys records whether any result key was present, even as null.
	sawKeys bool
}

func (p *searchPayload) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	fields := map[string]*[]string{"tags": &p.Tags, "items": &p.Items, "brands": &p.Brands}
	for key, dst := range fields {
		v, ok := raw[key]
		if !ok {
			continue
		}
		p.sawKeys = true
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			continue
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}
	return nil
}

// closetPayload is one entry of the closet list.
// Items arrive either as objects or as bare item names.
type closetPayload struct {
	Name  string
	items []domain.ClosetItem
}

func (p *closetPayload) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name  string          `json:"name"`
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Name = raw.Name
	p.items = []domain.ClosetItem{}

	trimmed := bytes.TrimSpace(raw.Items)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var objects []domain.ClosetItem
	if err := json.Unmarshal(trimmed, &objects); err == nil {
		p.items = objects
		return nil
	}

	var names []string
	if err := json.Unmarshal(trimmed, &names); err != nil {
		return fmt.Errorf("closet %q items: %w", raw.Name, err)
	}
	for _, n := range names {
		p.items = append(p.items, domain.ClosetItem{Item: n})
	}
	return nil
}

type closetNameBody struct {
	ClosetName string `json:"closet_name"`
}

type addItemBody struct {
	ClosetName string `json:"closet_name"`
	Item       string `json:"item"`
	Brand      string `json:"brand"`
}
