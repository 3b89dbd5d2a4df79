package server

import (
	"encoding/json"
	"fmt"

	"github.com/sugawarayuuta/sonnet"

	"github.com/ironsheep/palette-mcp/internal/imaging"
)

// defaultPaletteSize is used when image_palette is called without a count.
const defaultPaletteSize = 16

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_palette").
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
	if err := sonnet.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Debug("tool failed", "tool", params.Name, "error", err)
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
	case "image_palette":
		return s.handleImagePalette(args)
	case "image_palette_swatch":
		return s.handleImagePaletteSwatch(args)
	case "image_dominant_color":
		return s.handleImageDominantColor(args)
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

// mustMarshalJSON converts a value to a JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := sonnet.Marshal(v)
	return string(b)
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := sonnet.Unmarshal(args, &a); err != nil {
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
	if err := sonnet.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

// === Palette Handlers ===

type imagePaletteArgs struct {
	Path         string          `json:"path"`
	Count        int             `json:"count"`
	Region       *imaging.Region `json:"region,omitempty"`
	MaxDimension int             `json:"max_dimension"`
}

func (s *Server) handleImagePalette(args json.RawMessage) (interface{}, error) {
	var a imagePaletteArgs
	if err := sonnet.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.palette(a)
}

func (s *Server) palette(a imagePaletteArgs) (*imaging.PaletteResult, error) {
	if a.Count == 0 {
		a.Count = defaultPaletteSize
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	opts := imaging.PixelOptions{Region: a.Region, MaxDimension: a.MaxDimension}
	return imaging.ExtractPalette(img, a.Count, opts, s.quantizer)
}

type imagePaletteSwatchArgs struct {
	Path         string          `json:"path"`
	Count        int             `json:"count"`
	Region       *imaging.Region `json:"region,omitempty"`
	MaxDimension int             `json:"max_dimension"`
	Width        int             `json:"width"`
	Height       int             `json:"height"`
}

func (s *Server) handleImagePaletteSwatch(args json.RawMessage) (interface{}, error) {
	var a imagePaletteSwatchArgs
	if err := sonnet.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	result, err := s.palette(imagePaletteArgs{
		Path:         a.Path,
		Count:        a.Count,
		Region:       a.Region,
		MaxDimension: a.MaxDimension,
	})
	if err != nil {
		return nil, err
	}
	return imaging.RenderSwatches(result.Colors, a.Width, a.Height)
}

type imageDominantColorArgs struct {
	Path         string          `json:"path"`
	Region       *imaging.Region `json:"region,omitempty"`
	MaxDimension int             `json:"max_dimension"`
}

func (s *Server) handleImageDominantColor(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorArgs
	if err := sonnet.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	opts := imaging.PixelOptions{Region: a.Region, MaxDimension: a.MaxDimension}
	return imaging.DominantColor(img, opts, s.quantizer)
}
