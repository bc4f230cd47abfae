package main

import (
	ovhttp "github.com/fwojciec/overviewer/http"
)

// Run executes the serve command. It blocks until the context is cancelled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := ovhttp.NewServer(deps.Resolver,
		ovhttp.WithLogger(deps.Logger),
		ovhttp.WithRequestTimeout(c.RequestTimeout),
		ovhttp.WithMaxConcurrent(c.MaxConcurrent),
		ovhttp.WithRateLimit(c.Rate, c.Burst),
	)
	srv.Addr = c.Addr
	return srv.Serve(deps.Ctx)
}
