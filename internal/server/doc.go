// Package server implements the MCP (Model Context Protocol) server for the
// banner copy tools.
//
// This package provides a JSON-RPC 2.0 server that exposes banner text
// extraction, marketing analysis and ad copy generation through the MCP
// protocol, so an assistant client can drive the whole pipeline.
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
// Segmentation and OCR:
//   - banner_segment_plan: Strip layout for an image, no OCR
//   - banner_extract_text: Segment, OCR and merge text top to bottom
//
// Marketing:
//   - banner_analyze: Marketing analysis of banner text
//   - banner_generate_copy: Platform copy in three variations
//
// Reference:
//   - banner_platforms: Platform limits and copy variations
//   - banner_ocr_info: Tesseract availability and languages
//
// # Images
//
// Tools that take an image accept either "path" (a file readable by the
// server) or "image_base64" (inline data, optionally a data: URL). Uploads
// are limited to 10MB and must decode as PNG, JPEG or GIF. Nothing is cached
// between calls; each extraction is an independent workflow.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// OCR failures on individual strips are not errors; those strips are left
// out of the merged text and listed in failed_strips.
package server
