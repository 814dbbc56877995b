package main

import (
	"fmt"

	"github.com/fwojciec/placefinder"
)

// Run fetches the details of a place and adds it to the saved list.
func (c *SaveCmd) Run(deps *Dependencies) error {
	finder, err := deps.Container.Finder()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", placefinder.ErrorMessage(err))
		return err
	}

	details, err := finder.FetchPlaceDetails(deps.Ctx, c.PlaceID, c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", placefinder.ErrorMessage(err))
		return err
	}

	if !deps.Container.AddPlace(deps.Ctx, details) {
		fmt.Fprintf(deps.Stdout, "'%s' is already saved.\n", details.Name)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "'%s' was saved successfully!\n", details.Name)
	return nil
}
