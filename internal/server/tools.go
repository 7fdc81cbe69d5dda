package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func reloadProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "boolean",
		"description": "Re-read the file from disk instead of using the cached copy",
		"default":     false,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"reload": reloadProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"reload": reloadProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Pipeline Stages
		{
			Name:        "image_binarize",
			Description: "Binarize an image with the configured global threshold and dilation. Returns the stroke mask (white text on black) as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"reload": reloadProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "glyph_segment",
			Description: "Segment a single line of text into glyph bounding boxes in left-to-right order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"reload": reloadProperty(),
					"overlay": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the image with each glyph box outlined, as base64 PNG",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "text_recognize",
			Description: "Recognize a single line of printed text by matching each glyph against the template library. Returns the text (or \"No text detected\") with per-glyph scores.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"reload": reloadProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Library
		{
			Name:        "template_list",
			Description: "List the labels and classes of the loaded template library.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Cache
		{
			Name:        "cache_clear",
			Description: "Drop every cached image so later calls re-read files from disk. Returns how many entries were cleared.",
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
