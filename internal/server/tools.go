package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func hsvTripleSchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255},
		"minItems":    3,
		"maxItems":    3,
		"description": description,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The image stays cached for subsequent calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the RGB, hex and 8-bit HSV (H 0-179, S/V 0-255) color at a pixel. Use this to pick rock color bounds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Rock Extraction
		{
			Name:        "rock_mask_stats",
			Description: "Segment rock pixels by HSV band and report how many pixels match before and after mask closing. Writes no files; use it to tune bounds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"lower":       hsvTripleSchema("Lower HSV bound [h,s,v]. Default [10,30,50]"),
					"upper":       hsvTripleSchema("Upper HSV bound [h,s,v]. Default [30,100,150]"),
					"kernel_size": map[string]interface{}{"type": "integer", "description": "Odd closing kernel size. Default 5"},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "rock_extract_contours",
			Description: "Run the full rock contour pipeline on an image: writes rock_contours_raster.png, rock_contours_overlay.png and (when rocks are found) rock_contours_vector.geojson, and returns per-artifact status plus polygon vertices in pixel coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"output_directory": map[string]interface{}{
						"type":        "string",
						"description": "Directory for the artifacts. Default from server configuration",
					},
					"lower":       hsvTripleSchema("Lower HSV bound [h,s,v]. Default [10,30,50]"),
					"upper":       hsvTripleSchema("Upper HSV bound [h,s,v]. Default [30,100,150]"),
					"kernel_size": map[string]interface{}{"type": "integer", "description": "Odd closing kernel size. Default 5"},
					"save_mask": map[string]interface{}{
						"type":        "boolean",
						"description": "Also write the refined mask as rock_mask.png",
					},
				},
				"required": []string{"path"},
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
