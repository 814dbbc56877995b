package main

import (
	"fmt"

	"github.com/fwojciec/placefinder"
)

// Run removes a place from the saved list.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	place, ok := deps.Container.Place(c.ID)
	if !ok || !deps.Container.DeletePlace(deps.Ctx, c.ID) {
		err := placefinder.Errorf(placefinder.ENOTFOUND, "Place not found.")
		fmt.Fprintf(deps.Stderr, "error: %s\n", placefinder.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted '%s'\n", place.Name)
	return nil
}
