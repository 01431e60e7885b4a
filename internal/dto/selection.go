package dto

import "net/url"

// Selection is the venue/week pair every page reads from the URL query
// string. Keeping it in the URL means the current view survives navigation
// and is shareable as a link.
type Selection struct {
	VenueID string `form:"venueId"`
	Week    string `form:"week"`
}

// HasVenue reports whether a venue is selected; pages render a neutral
// prompt and skip fetching until one is.
func (s Selection) HasVenue() bool {
	return s.VenueID != ""
}

// Query renders the selection as a query-string suffix for links and form
// actions, so the current view is preserved across navigation.
func (s Selection) Query() string {
	v := url.Values{}
	if s.VenueID != "" {
		v.Set("venueId", s.VenueID)
	}
	if s.Week != "" {
		v.Set("week", s.Week)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
