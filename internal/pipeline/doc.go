// Package pipeline ties the banner stages together behind one Service used by
// both the CLI and the MCP server: text extraction (segment, preprocess, OCR,
// merge), marketing analysis and platform copy generation.
package pipeline
