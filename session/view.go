package session

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/placefinder"
)

// Number of category tags shown per row.
const (
	SuggestionTagLimit = 3
	PlaceTagLimit      = 4
)

// View is a snapshot of everything a client renders.
type View struct {
	Query string

	// QueryClears counts the times the session cleared the search box
	// itself. Clients overwrite their input only when it changes.
	QueryClears uint64

	Loading     bool
	Suggestions []SuggestionView
	NoResults   string
	Places      []PlaceView
	CanExport   bool
	Toasts      []placefinder.Toast
}

// SuggestionView is one row of the search panel.
type SuggestionView struct {
	*placefinder.PlaceSuggestion
	Tags   []string
	Saving bool
}

// PlaceView is one row of the saved places panel.
type PlaceView struct {
	*placefinder.PlaceDetails
	Tags        []string
	Coordinates string
	Refreshing  bool
	Error       string
}

// View returns the current view.
func (s *Session) View() View {
	saved := s.container.Places()

	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Query:       s.query,
		QueryClears: s.clears,
		Loading:     s.searching > 0,
		CanExport:   len(saved) > 0,
		Toasts:      s.toasts.Active(),
	}

	v.Suggestions = make([]SuggestionView, len(s.suggestions))
	for i, sg := range s.suggestions {
		v.Suggestions[i] = SuggestionView{
			PlaceSuggestion: sg,
			Tags:            DisplayTags(sg.Types, SuggestionTagLimit),
			Saving:          s.saving[sg.PlaceID],
		}
	}

	if !v.Loading && len(s.suggestions) == 0 && utf8.RuneCountInString(s.settled) >= placefinder.MinQueryLength {
		v.NoResults = fmt.Sprintf("No results found for %q.", s.settled)
	}

	v.Places = make([]PlaceView, len(saved))
	for i, p := range saved {
		v.Places[i] = PlaceView{
			PlaceDetails: p,
			Tags:         DisplayTags(p.Types, PlaceTagLimit),
			Coordinates:  Coordinates(p.Location),
			Refreshing:   s.refreshing[p.ID],
			Error:        s.refreshErrs[p.ID],
		}
	}
	return v
}

// DisplayTags returns at most limit category tags with underscores
// replaced by spaces.
func DisplayTags(types []string, limit int) []string {
	n := min(len(types), limit)
	out := make([]string, n)
	for i := range n {
		out[i] = strings.ReplaceAll(types[i], "_", " ")
	}
	return out
}

// Coordinates formats loc with six decimals, or returns "" for nil.
func Coordinates(loc *placefinder.Location) string {
	if loc == nil {
		return ""
	}
	return fmt.Sprintf("Lat: %.6f, Lng: %.6f", loc.Lat, loc.Lng)
}
