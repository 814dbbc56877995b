package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/placefinder"
	"github.com/fwojciec/placefinder/session"
)

// Run prints the suggestions for the query, one per line.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")
	if utf8.RuneCountInString(query) < placefinder.MinQueryLength {
		err := placefinder.Errorf(placefinder.EINVALID, "Query must be at least %d characters.", placefinder.MinQueryLength)
		fmt.Fprintf(deps.Stderr, "error: %s\n", placefinder.ErrorMessage(err))
		return err
	}

	finder, err := deps.Container.Finder()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", placefinder.ErrorMessage(err))
		return err
	}

	suggestions, err := finder.SearchPlaces(deps.Ctx, query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", placefinder.ErrorMessage(err))
		return err
	}

	if len(suggestions) == 0 {
		fmt.Fprintf(deps.Stdout, "No results found for %q.\n", query)
		return nil
	}

	for _, s := range suggestions {
		saved := ""
		if deps.Container.Has(s.PlaceID) {
			saved = " (saved)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s%s\n", s.PlaceID, s.Name, saved)
		fmt.Fprintf(deps.Stdout, "  %s\n", s.FormattedAddress)
		if tags := session.DisplayTags(s.Types, session.SuggestionTagLimit); len(tags) > 0 {
			fmt.Fprintf(deps.Stdout, "  %s\n", strings.Join(tags, ", "))
		}
	}
	return nil
}
