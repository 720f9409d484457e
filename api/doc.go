// Package api provides the HTTP REST API for the knight board.
//
// Endpoints:
//
// Runs:
//   - POST /api/simulate - Run inline documents: {"board":{...},"commands":[...]}
//   - POST /api/runs - Fetch and run sources: {"board_url":"...","commands_url":"..."}
//   - GET /api/runs - List runs, newest first (?limit=N)
//   - GET /api/runs/{id} - Get a run with its step trace
//   - DELETE /api/runs/{id} - Forget a run
//
// Service:
//   - GET /api - Endpoint index
//   - GET /health - Liveness probe
//   - GET /metrics - Prometheus metrics
//   - GET /ws - WebSocket stream of completed runs (?status=SUCCESS to filter)
//
// Both run endpoints always produce a run. A run whose documents could not be
// obtained reports GENERIC_ERROR in its result rather than failing the
// request. Omitted source URLs fall back to the server configuration.
//
// Usage:
//
//	server := api.NewServer(knightService, hub)
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// Errors are returned as JSON with an appropriate HTTP status code:
//
//	{"error": "run abc: run not found"}
package api
