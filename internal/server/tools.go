package server

import (
	"github.com/ironsheep/palette-mcp/internal/imaging"
	"github.com/ironsheep/palette-mcp/internal/quantize"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// regionSchema is the optional sub-rectangle accepted by the palette tools.
func regionSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional region to analyze. Omit to analyze the whole image.",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (0-based)"},
			"y1": map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (0-based)"},
			"x2": map[string]interface{}{"type": "integer", "description": "Right edge X coordinate (exclusive)"},
			"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge Y coordinate (exclusive)"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

func pathSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and pixel count.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathSchema(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathSchema(),
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
		{
			Name:        "image_palette",
			Description: "Reduce an image to a small palette with octree quantization. Returns colors sorted by population with pixel counts and percentages.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathSchema(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of colors (minimum 8). Default 16",
						"default":     16,
						"minimum":     quantize.MinColors,
					},
					"region": regionSchema(),
					"max_dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Downsample so neither side exceeds this many pixels before quantizing. Default 0 (full resolution)",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_palette_swatch",
			Description: "Quantize an image like image_palette and render the palette as a PNG strip, one bar per color sized by its share of the pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathSchema(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of colors (minimum 8). Default 16",
						"default":     16,
						"minimum":     quantize.MinColors,
					},
					"region": regionSchema(),
					"max_dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Downsample so neither side exceeds this many pixels before quantizing. Default 0 (full resolution)",
						"default":     0,
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Width of the rendered strip in pixels. Default 512",
						"default":     imaging.DefaultSwatchWidth,
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Height of the rendered strip in pixels. Default 64",
						"default":     imaging.DefaultSwatchHeight,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dominant_color",
			Description: "Pick the single most representative color of an image: the most saturated of its most populous color clusters.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathSchema(),
					"region": regionSchema(),
					"max_dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Downsample so neither side exceeds this many pixels before quantizing. Default 0 (full resolution)",
						"default":     0,
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
