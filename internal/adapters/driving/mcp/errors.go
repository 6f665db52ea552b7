// Package mcp provides an MCP (Model Context Protocol) server adapter for sinaliza.
// It lets AI assistants read fragments, pick fragments awaiting translation
// and register translation videos.
package mcp

import "errors"

// ErrMissingService is returned when a required service is not provided.
var ErrMissingService = errors.New("mcp: trecho, assignment and registration services are required")
