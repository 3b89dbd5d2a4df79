// Package quantize reduces an RGBA8888 pixel buffer to a small palette or a
// single dominant color using an octree.
//
// Both entry points build a private tree per call, so a Quantizer may be
// shared between goroutines.
package quantize

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/hashicorp/go-hclog"

	"github.com/ironsheep/palette-mcp/internal/octree"
)

const (
	// MinColors is the smallest palette size Palette accepts.
	MinColors = 8

	// DominantLeaves is the number of buckets the tree is reduced to before
	// the dominant color is chosen.
	DominantLeaves = 16

	bytesPerPixel = 4
)

var (
	// ErrTooFewColors is returned when the requested palette size is below
	// MinColors.
	ErrTooFewColors = fmt.Errorf("quantize: palette size must be at least %d", MinColors)

	// ErrShortBuffer is returned when a pixel or output buffer is too small
	// for the counts passed alongside it.
	ErrShortBuffer = errors.New("quantize: buffer too short")

	// ErrNoPixels is returned by DominantColor for an empty image.
	ErrNoPixels = errors.New("quantize: no pixels")
)

// Quantizer runs octree quantization passes.
type Quantizer struct {
	logger    hclog.Logger
	nodeLimit int
}

// Option configures a Quantizer.
type Option func(*Quantizer)

// WithLogger sets the logger used for per-pass diagnostics.
func WithLogger(l hclog.Logger) Option {
	return func(q *Quantizer) {
		if l != nil {
			q.logger = l
		}
	}
}

// WithNodeLimit bounds the number of tree nodes a single pass may allocate.
// Passes that exceed it fail with octree.ErrNodeLimit.
func WithNodeLimit(n int) Option {
	return func(q *Quantizer) { q.nodeLimit = n }
}

// New returns a Quantizer. Without options it logs nothing and places no
// bound on tree size.
func New(opts ...Option) *Quantizer {
	q := &Quantizer{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Palette reduces pixels to at most maxColors swatches.
//
// pixels holds RGBA8888 data, four bytes per pixel. Swatches are returned in
// tree traversal order, which is deterministic for a given input. An empty
// buffer yields an empty palette.
//
// Errors:
//   - ErrTooFewColors if maxColors < MinColors
//   - ErrShortBuffer if len(pixels) is not a multiple of four
//   - octree.ErrNodeLimit (wrapped) if the node limit is exceeded
func (q *Quantizer) Palette(pixels []byte, maxColors int) ([]Swatch, error) {
	if maxColors < MinColors {
		return nil, ErrTooFewColors
	}
	if len(pixels)%bytesPerPixel != 0 {
		return nil, ErrShortBuffer
	}
	if len(pixels) == 0 {
		return []Swatch{}, nil
	}

	tree, err := q.build(pixels)
	if err != nil {
		return nil, err
	}
	defer tree.Release()

	q.reduce(tree, maxColors)

	leaves := tree.Leaves()
	out := make([]Swatch, len(leaves))
	for i, b := range leaves {
		out[i] = swatchOf(b)
	}
	return out, nil
}

// DominantColor picks the single most representative color of pixels.
//
// The tree is reduced to at most DominantLeaves buckets, which are ordered by
// population. The most populous quarter is then re-ordered by saturation and
// the first entry wins. With fewer than four buckets the quarter is empty and
// the most populous bucket is returned unchanged.
//
// An empty buffer returns the zero Color and ErrNoPixels.
func (q *Quantizer) DominantColor(pixels []byte) (Color, error) {
	if len(pixels)%bytesPerPixel != 0 {
		return Color{}, ErrShortBuffer
	}
	if len(pixels) == 0 {
		return Color{}, ErrNoPixels
	}

	tree, err := q.build(pixels)
	if err != nil {
		return Color{}, err
	}
	defer tree.Release()

	q.reduce(tree, DominantLeaves)

	leaves := tree.Leaves()
	swatches := make([]Swatch, len(leaves))
	for i, b := range leaves {
		swatches[i] = swatchOf(b)
	}
	rankDominant(swatches)

	q.logger.Debug("dominant color selected", "color", swatches[0].Hex(), "count", swatches[0].Count)
	return swatches[0].Color, nil
}

// rankDominant sorts swatches by descending population, then re-sorts the
// top quarter by descending saturation. Both sorts are stable so ties keep
// traversal order.
func rankDominant(swatches []Swatch) {
	slices.SortStableFunc(swatches, func(a, b Swatch) int {
		return cmp.Compare(b.Count, a.Count)
	})
	top := swatches[:len(swatches)/4]
	slices.SortStableFunc(top, func(a, b Swatch) int {
		return cmp.Compare(saturationOf(b), saturationOf(a))
	})
}

func (q *Quantizer) build(pixels []byte) (*octree.Tree, error) {
	var opts []octree.Option
	if q.nodeLimit != 0 {
		opts = append(opts, octree.WithNodeLimit(q.nodeLimit))
	}
	tree, err := octree.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create octree: %w", err)
	}

	for i := 0; i+bytesPerPixel <= len(pixels); i += bytesPerPixel {
		p := octree.Pixel{pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]}
		if err := tree.Insert(p); err != nil {
			tree.Release()
			return nil, fmt.Errorf("failed to insert pixel %d: %w", i/bytesPerPixel, err)
		}
	}

	q.logger.Debug("octree built", "pixels", tree.Inserted(), "nodes", tree.NodeCount(), "leaves", tree.LeafCount())
	return tree, nil
}

func (q *Quantizer) reduce(tree *octree.Tree, target int) {
	steps := 0
	for tree.LeafCount() > target {
		if !tree.Reduce() {
			break
		}
		steps++
	}
	q.logger.Trace("octree reduced", "steps", steps, "leaves", tree.LeafCount(), "target", target)
}
