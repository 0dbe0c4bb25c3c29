// Package mcpserver exposes the booking operations as MCP tools over an SSE
// transport, so an LLM client can call them the same way the REST API does.
package mcpserver

import (
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"
)

// Start runs the MCP SSE server on MCP_ADDR (default :8001). The transport
// serves the event stream on /sse and tool invocations on /messages.
func Start() {
	s := server.NewMCPServer("appointment", "0.1.0")
	registerTools(s)

	addr := os.Getenv("MCP_ADDR")
	if addr == "" {
		addr = ":8001"
	}

	sse := server.NewSSEServer(s,
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/messages"),
	)

	log.Printf("MCP SSE server listening on %s", addr)
	if err := sse.Start(addr); err != nil {
		log.Fatalf("MCP server failed: %v", err)
	}
}
