package main

import (
	"fmt"

	pfhttp "github.com/fwojciec/placefinder/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// Run starts the web application and blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := pfhttp.NewServer(deps.Container, pfhttp.Config{
		Logger:        deps.Logger.With("component", "http"),
		DebounceDelay: c.Debounce,
		ToastTTL:      c.ToastTTL,
		Metrics:       promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{Registry: deps.Registry}),
		Sessions:      deps.Metrics.Sessions,
	})
	if err := server.Open(c.Addr); err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to listen on %s: %v\n", c.Addr, err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Listening on http://%s\n", server.Addr())

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(server.Serve)
	g.Go(func() error {
		<-ctx.Done()
		return server.Close()
	})
	return g.Wait()
}
