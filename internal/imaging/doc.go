// Package imaging bridges decoded images and the octree quantizer.
//
// It loads and caches images, flattens an image (or a region of it) into the
// RGBA8888 buffer the quantizer consumes, and presents quantized colors in
// the formats the server and CLI report. Coordinates are 0-based with (0,0)
// at the top-left corner, X increasing rightward and Y increasing downward.
//
// # Pixel Buffers
//
// Pixels produces a tightly packed buffer with four bytes per pixel in the
// order red, green, blue, alpha. Straight (non-premultiplied) alpha is the
// default. Large images can be downsampled before quantization with
// PixelOptions.MaxDimension, which bounds tree construction time.
//
// # Swatches
//
// RenderSwatches draws a palette as a PNG strip, base64-encoded so it can be
// returned inside a JSON tool result.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The palette functions are
// stateless and can be called concurrently; each call builds its own tree.
//
// # Color Representation
//
// Colors are returned in multiple formats for flexibility:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates outside image bounds
//   - Invalid region specifications (x1 >= x2 or y1 >= y2)
//   - Palette sizes below quantize.MinColors
//   - File I/O or decoding errors during image loading
package imaging
