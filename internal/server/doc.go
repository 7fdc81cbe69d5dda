// Package server implements the MCP (Model Context Protocol) server for the
// template OCR pipeline.
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
// # Available Tools
//
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_binarize: Stroke mask as base64 PNG
//   - glyph_segment: Glyph bounding boxes, optional overlay
//   - text_recognize: Recognized text with per-glyph decisions
//   - template_list: Template library contents
//   - cache_clear: Drop all cached images
//
// # Image Caching
//
// Images are cached by path for the lifetime of the server process. Every
// path-based tool accepts "reload" to re-read its file, and cache_clear
// empties the cache. The template library is built once at startup and never
// reloaded.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000 and the Go error string as data. An unreadable input image is such
// an error; a run that accepts no glyph is not, and reports
// "No text detected" instead.
package server
