package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/rock-contours/internal/imaging"
	"github.com/ironsheep/rock-contours/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "rock_extract_contours").
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
		s.log.Warn().Err(err).Str("tool", params.Name).Msg("tool failed")
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
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "rock_mask_stats":
		return s.handleRockMaskStats(args)
	case "rock_extract_contours":
		return s.handleRockExtractContours(args)
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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

// === Rock Extraction Handlers ===

// rockArgs are the per-call overrides shared by the rock tools. Unset fields
// keep the server configuration.
type rockArgs struct {
	Path            string    `json:"path"`
	OutputDirectory string    `json:"output_directory,omitempty"`
	Lower           *[3]uint8 `json:"lower,omitempty"`
	Upper           *[3]uint8 `json:"upper,omitempty"`
	KernelSize      int       `json:"kernel_size,omitempty"`
	SaveMask        *bool     `json:"save_mask,omitempty"`
}

func (s *Server) pipelineFor(a rockArgs) (*pipeline.Pipeline, error) {
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	cfg := s.cfg
	if a.OutputDirectory != "" {
		cfg.OutputDirectory = a.OutputDirectory
	}
	if a.Lower != nil {
		cfg.RockColorLowerBound = *a.Lower
	}
	if a.Upper != nil {
		cfg.RockColorUpperBound = *a.Upper
	}
	if a.KernelSize != 0 {
		cfg.KernelSize = a.KernelSize
	}
	if a.SaveMask != nil {
		cfg.SaveMask = *a.SaveMask
	}

	p, err := pipeline.New(cfg, s.log)
	if err != nil {
		return nil, err
	}
	return p.WithLoader(s.cache.Load), nil
}

// MaskStats is the result of rock_mask_stats.
type MaskStats struct {
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	RawPixels     int     `json:"raw_pixels"`
	RefinedPixels int     `json:"refined_pixels"`
	Coverage      float64 `json:"coverage"`
	Contours      int     `json:"contours"`
	Polygons      int     `json:"polygons"`
}

func (s *Server) handleRockMaskStats(args json.RawMessage) (interface{}, error) {
	var a rockArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, err := s.pipelineFor(a)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, &pipeline.InputError{Path: a.Path, Err: err}
	}

	res, err := p.Extract(img)
	if err != nil {
		return nil, err
	}

	stats := &MaskStats{
		Width:         res.Width,
		Height:        res.Height,
		RawPixels:     imaging.Segment(img, p.Config().HSVRange()).Count(),
		RefinedPixels: res.Mask.Count(),
		Contours:      len(res.Contours),
		Polygons:      len(res.Polygons),
	}
	if total := res.Width * res.Height; total > 0 {
		stats.Coverage = float64(stats.RefinedPixels) / float64(total)
	}
	return stats, nil
}

func (s *Server) handleRockExtractContours(args json.RawMessage) (interface{}, error) {
	var a rockArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, err := s.pipelineFor(a)
	if err != nil {
		return nil, err
	}
	return p.Run(a.Path)
}
