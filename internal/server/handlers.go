package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/glyph-ocr/internal/detection"
	"github.com/ironsheep/glyph-ocr/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "text_recognize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_binarize":
		return s.handleImageBinarize(args)
	case "glyph_segment":
		return s.handleGlyphSegment(args)
	case "text_recognize":
		return s.handleTextRecognize(args)
	case "template_list":
		return s.engine.Library().Summarize(), nil
	case "cache_clear":
		return s.handleCacheClear(), nil
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type imageLoadArgs struct {
	Path   string `json:"path"`
	Reload bool   `json:"reload,omitempty"`
}

func (a imageLoadArgs) validate() error {
	if a.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	s.evictOnReload(a.Path, a.Reload)
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	s.evictOnReload(a.Path, a.Reload)
	return imaging.GetDimensions(s.cache, a.Path)
}

// evictOnReload drops path from the cache so the next load reads the file
// again.
func (s *Server) evictOnReload(path string, reload bool) {
	if reload {
		s.cache.Evict(path)
	}
}

// loadImage returns the decoded image at path, from the cache unless reload
// is set.
func (s *Server) loadImage(path string, reload bool) (image.Image, error) {
	s.evictOnReload(path, reload)
	return s.cache.Load(path)
}

type cacheClearResult struct {
	Cleared int `json:"cleared"`
}

func (s *Server) handleCacheClear() *cacheClearResult {
	n := s.cache.Len()
	s.cache.Clear()
	return &cacheClearResult{Cleared: n}
}

func (s *Server) handleImageBinarize(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	img, err := s.loadImage(a.Path, a.Reload)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(s.engine.Binarize(img).Image())
}

type glyphSegmentArgs struct {
	Path    string `json:"path"`
	Reload  bool   `json:"reload,omitempty"`
	Overlay *bool  `json:"overlay,omitempty"`
}

func (s *Server) handleGlyphSegment(args json.RawMessage) (interface{}, error) {
	var a glyphSegmentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := (imageLoadArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}
	img, err := s.loadImage(a.Path, a.Reload)
	if err != nil {
		return nil, err
	}

	overlay := false
	if a.Overlay != nil {
		overlay = *a.Overlay
	}
	return detection.Describe(img, s.engine.Segment(img), overlay)
}

type textRecognizeResult struct {
	Text     string      `json:"text"`
	Found    bool        `json:"found"`
	Accepted int         `json:"accepted"`
	Details  interface{} `json:"details"`
}

func (s *Server) handleTextRecognize(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	img, err := s.loadImage(a.Path, a.Reload)
	if err != nil {
		return nil, err
	}

	result := s.engine.RecognizeImage(img)
	return &textRecognizeResult{
		Text:     result.String(),
		Found:    result.Found(),
		Accepted: len(result.Accepted()),
		Details:  result,
	}, nil
}
