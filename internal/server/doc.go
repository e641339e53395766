// Package server implements the MCP (Model Context Protocol) server for rock
// contour extraction.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// Logging goes through zerolog to whatever writer the caller configured;
// it must not be stdout.
//
// # Available Tools
//
// Image Information:
//   - image_load: Load image and get metadata
//   - image_sample_color: RGB and 8-bit HSV at a pixel, for picking bounds
//
// Rock Extraction:
//   - rock_mask_stats: Matching pixel counts before and after closing, no files written
//   - rock_extract_contours: Full run; returns the run report with polygons
//
// The rock tools start from the server's pipeline.Config and accept
// per-call overrides for the output directory, HSV bounds, kernel size and
// mask export.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Per-artifact export failures are not tool errors; they appear in the
// returned report with status "failed".
package server
