// Package server implements the MCP (Model Context Protocol) server for palette
// extraction tools.
//
// This package provides a JSON-RPC 2.0 server that exposes octree color
// quantization through the MCP protocol, so MCP-compatible clients can ask for
// an image's palette or its dominant color.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout (one per line)
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load image and get metadata
//   - image_sample_color: Get color at pixel
//   - image_palette: Reduce an image or region to at most N colors (N >= 8)
//   - image_palette_swatch: Render that palette as a base64 PNG strip
//   - image_dominant_color: Pick the single most representative color
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the server process,
// so repeated palette requests on the same file skip decoding.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Diagnostics go to the hclog logger passed with WithLogger, never to stdout.
//
// # Usage
//
//	srv := server.New(server.WithLogger(logger), server.WithVersion(version))
//	if err := srv.Run(); err != nil {
//	    logger.Error("server error", "error", err)
//	}
package server
