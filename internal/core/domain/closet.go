package domain

import "strings"

// Closet is a named collection of items saved by the user.
type Closet struct {
	// Name identifies the closet; it is unique per user.
	Name string `json:"name" yaml:"name"`

	// Items are the saved items, in backend order.
	Items []ClosetItem `json:"items" yaml:"items"`
}

// ClosetItem is a single saved item.
type ClosetItem struct {
	// Item is the base item name.
	Item string `json:"item" yaml:"item"`

	// Brand is the brand the item belongs to.
	Brand string `json:"brand" yaml:"brand"`
}

// ItemRef identifies the item an "add to closet" action targets.
type ItemRef struct {
	Item  string
	Brand string
}

// Label renders the reference as "Brand Item", or just the item name.
func (r ItemRef) Label() string {
	if r.Brand == "" {
		return r.Item
	}
	return r.Brand + " " + r.Item
}

// ValidateClosetName trims and checks a closet name.
func ValidateClosetName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidInput
	}
	return name, nil
}
