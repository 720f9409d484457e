package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/knight-board/game/runs"
	"github.com/wricardo/knight-board/game/service"
)

const (
	serverName    = "Knight Board"
	serverVersion = "1.0.0"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Knight Board - MCP Interface

This is a thin client that proxies all requests to the REST API server.

A knight stands on a bounded grid with obstacles and follows an instruction
list: START x,y,DIRECTION first, then ROTATE DIRECTION and MOVE n.

AVAILABLE TOOLS:
- simulate: Run an inline board (width, height, obstacles) and command list
- run_sources: Fetch board and commands from URLs (or server defaults) and run them
- get_run: Inspect a recorded run step by step, with a drawing of the board
- list_runs: List recorded runs
- knight_instructions: Grammar, movement rules and result statuses`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "simulate",
		Description: "Run an instruction list on an inline board and report the final position or failure status",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"width": map[string]interface{}{
					"type":        "integer",
					"description": "Board width (columns, x from 0 to width-1)",
				},
				"height": map[string]interface{}{
					"type":        "integer",
					"description": "Board height (rows, y from 0 to height-1)",
				},
				"obstacles": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x": map[string]interface{}{"type": "integer"},
							"y": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"x", "y"},
					},
					"description": "Obstacle cells",
				},
				"commands": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": `Instructions, e.g. ["START 1,1,NORTH", "MOVE 2", "ROTATE EAST"]`,
				},
			},
			Required: []string{"width", "height", "commands"},
		},
	}, c.handleSimulate)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run_sources",
		Description: "Fetch the board and command documents, run them and record the result",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"board_url": map[string]interface{}{
					"type":        "string",
					"description": "Board document URL (optional, defaults to the server's BOARD_API)",
				},
				"commands_url": map[string]interface{}{
					"type":        "string",
					"description": "Commands document URL (optional, defaults to the server's COMMANDS_API)",
				},
			},
		},
	}, c.handleRunSources)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_run",
		Description: "Get a recorded run with its step-by-step trace",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleGetRun)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_runs",
		Description: "List recorded runs, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of runs to list (optional)",
				},
			},
		},
	}, c.handleListRuns)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "knight_instructions",
		Description: "Explain the instruction grammar, movement rules and result statuses",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// ServeHTTP handles single JSON-RPC messages posted to the /mcp endpoint
func (c *Client) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	response := c.mcpServer.HandleMessage(r.Context(), body)

	w.Header().Set("Content-Type", "application/json")
	responseData, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
		return
	}
	w.Write(responseData)
}

// apiCall makes an HTTP call to the REST API
func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

func (c *Client) handleSimulate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	// Round-trip through JSON so that numbers and nested objects decode
	// into the REST request types.
	payload := map[string]interface{}{
		"board": map[string]interface{}{
			"width":     args["width"],
			"height":    args["height"],
			"obstacles": args["obstacles"],
		},
		"commands": args["commands"],
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var req service.SimulateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	var run runs.Run
	if err := c.apiCall(ctx, "POST", "/api/simulate", req, &run); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRun(&run)), nil
}

func (c *Client) handleRunSources(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	boardURL, _ := args["board_url"].(string)
	commandsURL, _ := args["commands_url"].(string)

	body := map[string]string{
		"board_url":    boardURL,
		"commands_url": commandsURL,
	}

	var run runs.Run
	if err := c.apiCall(ctx, "POST", "/api/runs", body, &run); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRun(&run)), nil
}

func (c *Client) handleGetRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	runID, _ := args["run_id"].(string)
	if runID == "" {
		return mcp.NewToolResultError("run_id is required"), nil
	}

	var run runs.Run
	if err := c.apiCall(ctx, "GET", fmt.Sprintf("/api/runs/%s", runID), nil, &run); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRunDetail(&run)), nil
}

func (c *Client) handleListRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path := "/api/runs"
	if limit, ok := args["limit"].(float64); ok && limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, int(limit))
	}

	var response struct {
		Runs  []runs.Summary `json:"runs"`
		Count int            `json:"count"`
	}
	if err := c.apiCall(ctx, "GET", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRunList(response.Runs)), nil
}

func (c *Client) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructionsText), nil
}

const instructionsText = `KNIGHT BOARD INSTRUCTIONS

BOARD:
- Cells are (x,y) with 0 <= x < width and 0 <= y < height.
- NORTH increases y, SOUTH decreases y, EAST increases x, WEST decreases x.
- Obstacle cells can never be occupied.

INSTRUCTIONS (case-sensitive, single spaces):
- START x,y,DIRECTION  must be the first instruction, e.g. START 1,0,NORTH
- ROTATE DIRECTION     sets the facing direction (absolute, not a turn)
- MOVE n               walks up to n cells in the facing direction
- Anything else after START is ignored.

MOVEMENT:
- A MOVE is applied one cell at a time.
- Stepping off the board ends the run with OUT_OF_THE_BOARD; later instructions are discarded.
- Stepping into an obstacle stops that MOVE early; the run continues normally.

RESULT STATUSES:
- SUCCESS: all instructions consumed; the final position and direction are reported
- INVALID_START_POSITION: START is off the board or on an obstacle
- OUT_OF_THE_BOARD: a MOVE tried to leave the board
- GENERIC_ERROR: missing or malformed START, empty instruction list, or unreadable documents`
