// Package mcp exposes the knight board to AI agents over the Model Context
// Protocol.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API, and the JSON response is rendered as readable text.
//
// MCP Tools:
//   - simulate: Run an inline board and instruction list
//   - run_sources: Fetch board and instructions from URLs, then run them
//   - get_run: Show a recorded run with its step trace and a board drawing
//   - list_runs: List recorded runs, newest first
//   - knight_instructions: Explain the instruction grammar and outcomes
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: POST /mcp, handled by client.ServeHTTP
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
