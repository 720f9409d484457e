// Package websocket streams completed knight runs to connected clients.
//
// The websocket package implements:
//   - A hub that owns every live connection
//   - Optional per-status subscriptions
//   - Ping/pong keepalive and connection cleanup
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a reader and a
// writer goroutine; the hub goroutine alone mutates the subscription table.
//
// Message Protocol:
//
// Every frame is one JSON object:
//
//	{"event":"run_completed","run_id":"...","status":"SUCCESS","run":{...}}
//
// Subscriptions:
//
// Clients connecting to /ws receive every run. Clients connecting to
// /ws?status=OUT_OF_THE_BOARD receive only runs with that result status.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("status"))
//	})
//	hub.PublishRun(run)
package websocket
