package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// imageProperties are the two ways a tool accepts an image. Exactly one
// must be supplied.
func imageProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the banner image (PNG, JPEG or GIF, max 10MB)",
		},
		"image_base64": map[string]interface{}{
			"type":        "string",
			"description": "Base64-encoded image data, optionally as a data: URL. Used when path is not given.",
		},
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Segmentation and OCR
		{
			Name:        "banner_segment_plan",
			Description: "Show how a banner would be cut into horizontal strips for OCR, without running OCR. Strip count depends on the height/width ratio.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": imageProperties(),
			},
		},
		{
			Name:        "banner_extract_text",
			Description: "Cut a banner into horizontal strips, OCR each strip and return the text merged top to bottom with a label per strip. Strips that fail OCR are left out.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(imageProperties(), map[string]interface{}{
					"include_strips": map[string]interface{}{
						"type":        "boolean",
						"description": "Include per-strip geometry and text in the result. Default false",
						"default":     false,
					},
				}),
			},
		},

		// Marketing
		{
			Name:        "banner_analyze",
			Description: "Produce a marketing analysis (product, value, target customer, appeals, pricing, keywords) from banner text. Pass text directly, or an image to extract it first. Requires an LLM API key.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(imageProperties(), map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Banner text to analyze. Takes precedence over an image.",
					},
				}),
			},
		},
		{
			Name:        "banner_generate_copy",
			Description: "Write ad copy (title and description) for each requested platform in three variations: safe, optimized and bold. Lengths are checked against each platform's limits. Requires an LLM API key.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(imageProperties(), map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Banner text to write copy for. Takes precedence over an image.",
					},
					"platforms": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string", "enum": []string{"naver", "meta", "google", "kakao"}},
						"description": "Target platforms",
					},
					"requirements": map[string]interface{}{
						"type":        "string",
						"description": "Extra instructions from the marketer",
					},
					"skip_analysis": map[string]interface{}{
						"type":        "boolean",
						"description": "Skip the marketing analysis step. Default false",
						"default":     false,
					},
				}),
				"required": []string{"platforms"},
			},
		},

		// Reference
		{
			Name:        "banner_platforms",
			Description: "List the supported ad platforms with their title/description character limits, and the copy variations.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "banner_ocr_info",
			Description: "Report whether the Tesseract OCR engine is available, its version and configured languages.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
