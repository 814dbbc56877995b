package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/placefinder/session"
)

// Run prints the saved places, newest first.
func (c *ListCmd) Run(deps *Dependencies) error {
	saved := deps.Container.Places()

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(saved)
	}

	if len(saved) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved places")
		return nil
	}

	for _, p := range saved {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", p.ID, p.Name)
		fmt.Fprintf(deps.Stdout, "  %s\n", p.FormattedAddress)
		if tags := session.DisplayTags(p.Types, session.PlaceTagLimit); len(tags) > 0 {
			fmt.Fprintf(deps.Stdout, "  %s\n", strings.Join(tags, ", "))
		}
		if coords := session.Coordinates(p.Location); coords != "" {
			fmt.Fprintf(deps.Stdout, "  %s\n", coords)
		}
		fmt.Fprintf(deps.Stdout, "  %s\n", p.Summary)
	}
	return nil
}
