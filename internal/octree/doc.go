// Package octree implements the bucketing tree used for color quantization.
//
// Each level of the tree consumes one bit of every channel, most significant
// bit first. The four bits (red, green, blue, alpha) are packed into a nibble
// that selects one of 16 children, so the tree is a 16-way extension of the
// classic RGB octree that also separates colors by opacity.
//
// # Storage
//
// Nodes live in an arena owned by the Tree and are addressed by handles.
// Every non-leaf node is also recorded in a per-level stack at the moment it
// is created. Reduce pops the most recently created node from the deepest
// non-empty level and folds its children back into it, so the most specific
// color distinctions are discarded first.
//
// # Invariants
//
//   - LeafCount always equals the number of leaves reachable from the root.
//   - The sum of Bucket.Count over Leaves equals Inserted.
//   - Depth never exceeds MaxDepth; nodes at MaxDepth are always leaves.
//
// # Thread Safety
//
// A Tree is not safe for concurrent use. Build one Tree per goroutine.
package octree
