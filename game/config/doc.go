// Package config loads application configuration for the knight board.
//
// Sources, lowest precedence first:
//   - built-in defaults
//   - an optional YAML file
//   - environment variables
//   - explicit overrides, normally taken from command-line flags
//
// Environment Variables:
//
// BOARD_API and COMMANDS_API name the grid and instruction documents. The
// NGROK_ENABLED, NGROK_AUTHTOKEN (or NGROK_AUTH_TOKEN) and NGROK_DOMAIN
// variables configure the optional tunnel. Every other key is read from a
// KNIGHT_ prefixed variable whose first underscore separates the section from
// the field, so KNIGHT_FETCH_TIMEOUT sets fetch.timeout and
// KNIGHT_FETCH_RETRY_DELAY sets fetch.retry_delay.
//
// Example File:
//
//	board_api: https://example.com/board.json
//	commands_api: https://example.com/commands.json
//	fetch:
//	  timeout: 5s
//	  retries: 2
//	log:
//	  level: debug
//	  format: json
//	server:
//	  port: 9090
//
// Usage:
//
//	cfg, err := config.Load("knight.yaml", map[string]interface{}{"server.port": 9090})
//	if err != nil {
//		log.Fatal(err)
//	}
package config
