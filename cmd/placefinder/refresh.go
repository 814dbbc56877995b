package main

import (
	"fmt"

	"github.com/fwojciec/placefinder"
)

// Run regenerates the summary of a saved place.
func (c *RefreshCmd) Run(deps *Dependencies) error {
	place, ok := deps.Container.Place(c.ID)
	if !ok {
		err := placefinder.Errorf(placefinder.ENOTFOUND, "Place not found.")
		fmt.Fprintf(deps.Stderr, "error: %s\n", placefinder.ErrorMessage(err))
		return err
	}

	finder, err := deps.Container.Finder()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", placefinder.ErrorMessage(err))
		return err
	}

	updated, err := finder.RefreshSummary(deps.Ctx, place)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", placefinder.ErrorMessage(err))
		return err
	}

	deps.Container.UpdatePlace(deps.Ctx, updated)
	fmt.Fprintf(deps.Stdout, "Summary refreshed for '%s'.\n", updated.Name)
	fmt.Fprintf(deps.Stdout, "  %s\n", updated.Summary)
	return nil
}
