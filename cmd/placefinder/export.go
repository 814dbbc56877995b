package main

import (
	"fmt"

	"github.com/fwojciec/placefinder"
	"github.com/fwojciec/placefinder/fs"
)

// Run writes the export document to stdout or to a file.
func (c *ExportCmd) Run(deps *Dependencies) error {
	saved := deps.Container.Places()
	if len(saved) == 0 {
		err := placefinder.Errorf(placefinder.EINVALID, "No saved places to export.")
		fmt.Fprintf(deps.Stderr, "error: %s\n", placefinder.ErrorMessage(err))
		return err
	}

	if c.Path == "" {
		data, err := placefinder.Export(saved)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", placefinder.ErrorMessage(err))
			return err
		}
		_, err = deps.Stdout.Write(append(data, '\n'))
		return err
	}

	path, err := fs.WriteExport(c.Path, saved)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", placefinder.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Exported %d places to %s\n", len(saved), path)
	return nil
}
