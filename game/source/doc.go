// Package source retrieves and decodes the two input documents of a run: the
// board document and the instruction document.
//
// Addresses may be http(s) URLs, file:// URLs or bare filesystem paths. HTTP
// fetches send "Accept: application/json", follow redirects and are bounded
// by a per-request timeout. A non-200 status or a blank body is an error.
// Optional retries use exponential backoff and skip client errors.
//
// Document Formats:
//
//	{"width": 8, "height": 8, "obstacles": [{"x": 2, "y": 2}]}
//	{"commands": ["START 1,1,NORTH", "MOVE 1"]}
//
// Unknown fields are ignored. Board dimensions must be present and positive.
//
// Usage:
//
//	fetcher := source.NewFetcher(cfg.Fetch, source.WithLogger(logger))
//	docs, err := fetcher.FetchAll(ctx, cfg.BoardAPI, cfg.CommandsAPI)
//	if err != nil {
//		// report GENERIC_ERROR
//	}
//	outcome := engine.NewInterpreter(docs.Board).Run(docs.Commands)
package source
