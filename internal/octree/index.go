package octree

// MaxDepth is the number of bit levels in a channel byte. Nodes created at
// this depth are leaves.
const MaxDepth = 8

// Fanout is the number of child slots per node: one bit from each of the
// four channels.
const Fanout = 16

// Pixel is a single RGBA8888 pixel in channel order red, green, blue, alpha.
type Pixel [4]uint8

// ChildIndex returns the child slot (0-15) that p falls into at the given
// level.
//
// The bit at position 7-level of each channel is packed into the index with
// red as bit 3, green as bit 2, blue as bit 1 and alpha as bit 0. For example
// at level 0 the pixel (255, 0, 0, 255) selects slot 0b1001 = 9.
//
// Level must be in [0, MaxDepth).
func ChildIndex(p Pixel, level int) int {
	shift := uint(7 - level)
	return int((p[0]>>shift)&1)<<3 |
		int((p[1]>>shift)&1)<<2 |
		int((p[2]>>shift)&1)<<1 |
		int((p[3]>>shift)&1)
}
