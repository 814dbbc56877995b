package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fwojciec/placefinder"
)

// Run validates the key and stores it as the active credential.
func (c *LoginCmd) Run(deps *Dependencies) error {
	key := c.Key
	if strings.TrimSpace(key) == "" && deps.Stdin != nil {
		fmt.Fprint(deps.Stderr, "Gemini API key: ")
		scanner := bufio.NewScanner(deps.Stdin)
		if scanner.Scan() {
			key = scanner.Text()
		}
	}

	fmt.Fprintln(deps.Stderr, "Verifying...")
	if err := deps.Container.SetCredential(deps.Ctx, key); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", placefinder.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "API key saved.")
	return nil
}
