// Package service orchestrates knight runs for every entry point: the
// one-shot command line run, the REST API and the MCP tools.
//
// The service package implements:
//   - Running inline board and instruction documents
//   - Fetching documents from configured or supplied sources, then running them
//   - Recording each completed run with its step trace in the run registry
//   - Publishing completed runs to live subscribers
//   - Run metrics and structured logs
//
// Error Mapping:
//
// Failures to obtain or decode either document never surface as Go errors.
// They become runs whose result status is GENERIC_ERROR, matching how the
// process boundary reports them. Errors are returned only for registry
// operations such as looking up an unknown run.
//
// Usage:
//
//	svc := service.NewKnightService(service.Dependencies{
//		Fetcher:  source.NewFetcher(cfg.Fetch),
//		Registry: runs.NewRegistry(),
//		Logger:   logger,
//	}, service.Defaults{BoardAPI: cfg.BoardAPI, CommandsAPI: cfg.CommandsAPI})
//
//	run, err := svc.RunSources(ctx, "", "")
//	fmt.Println(run.Result.Status)
package service
