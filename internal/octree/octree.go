package octree

import (
	"errors"
	"slices"
)

// ErrNodeLimit is returned when a node cannot be allocated because the
// tree's arena is full.
var ErrNodeLimit = errors.New("octree: node limit reached")

// handle addresses a node in the arena. The root is always handle 0, and
// since the root is never anyone's child a zero child slot means "empty".
type handle int32

const rootHandle handle = 0

// Bucket is the aggregate of every pixel that fell into one node.
//
// Sums are kept per channel so the average can be taken once at the end.
type Bucket struct {
	Count uint64 `json:"count"`
	Red   uint64 `json:"red"`
	Green uint64 `json:"green"`
	Blue  uint64 `json:"blue"`
	Alpha uint64 `json:"alpha"`
}

// Average returns the mean of each channel, truncated toward zero.
// An empty bucket averages to zero.
func (b Bucket) Average() (r, g, bl, a uint8) {
	if b.Count == 0 {
		return 0, 0, 0, 0
	}
	return uint8(b.Red / b.Count),
		uint8(b.Green / b.Count),
		uint8(b.Blue / b.Count),
		uint8(b.Alpha / b.Count)
}

func (b *Bucket) add(o Bucket) {
	b.Count += o.Count
	b.Red += o.Red
	b.Green += o.Green
	b.Blue += o.Blue
	b.Alpha += o.Alpha
}

type node struct {
	Bucket
	leaf     bool
	level    uint8
	children [Fanout]handle
}

// Tree owns every node of one quantization pass.
type Tree struct {
	nodes    []node
	free     []handle
	limit    int
	leaves   int
	inserted uint64

	// levels[i] holds the non-leaf nodes created at depth i, most recent last.
	levels [MaxDepth][]handle
}

// Option configures a Tree.
type Option func(*Tree)

// WithNodeLimit caps the number of live nodes. Without this option the arena
// is unbounded. A limit below one leaves no room for the root, so New fails.
func WithNodeLimit(n int) Option {
	return func(t *Tree) {
		if n < 1 {
			n = -1
		}
		t.limit = n
	}
}

// New creates an empty tree with the root allocated at level 0.
//
// Returns ErrNodeLimit if the configured node limit does not leave room for
// the root. A failed tree must not be used.
func New(opts ...Option) (*Tree, error) {
	t := &Tree{}
	for _, opt := range opts {
		opt(t)
	}
	root, err := t.alloc(0)
	if err != nil {
		return nil, err
	}
	if root != rootHandle {
		return nil, errors.New("octree: root allocated at unexpected handle")
	}
	return t, nil
}

// LeafCount returns the number of leaves currently in the tree.
func (t *Tree) LeafCount() int { return t.leaves }

// NodeCount returns the number of live nodes, leaves included.
func (t *Tree) NodeCount() int { return len(t.nodes) - len(t.free) }

// Inserted returns the number of pixels successfully inserted.
func (t *Tree) Inserted() uint64 { return t.inserted }

// Insert adds one pixel to the tree, creating nodes along its path on demand.
//
// If a node cannot be allocated ErrNodeLimit is returned and the pixel is not
// counted. Nodes created earlier on the same path remain in the tree; callers
// should treat the error as fatal for the whole pass.
func (t *Tree) Insert(p Pixel) error {
	h := rootHandle
	for !t.nodes[h].leaf {
		level := int(t.nodes[h].level)
		idx := ChildIndex(p, level)
		child := t.nodes[h].children[idx]
		if child == rootHandle {
			c, err := t.alloc(level + 1)
			if err != nil {
				return err
			}
			// alloc may have grown the arena, so index again.
			t.nodes[h].children[idx] = c
			child = c
		}
		h = child
	}

	n := &t.nodes[h]
	n.Count++
	n.Red += uint64(p[0])
	n.Green += uint64(p[1])
	n.Blue += uint64(p[2])
	n.Alpha += uint64(p[3])
	t.inserted++
	return nil
}

// Reduce performs one reduction step and reports whether anything changed.
//
// The most recently created node of the deepest level that still has
// non-leaf nodes absorbs the counts and sums of all its children, the
// children are freed, and the node becomes a leaf. When every level is
// empty the tree is fully collapsed and Reduce is a no-op.
func (t *Tree) Reduce() bool {
	for level := MaxDepth - 1; level >= 0; level-- {
		stack := t.levels[level]
		if len(stack) == 0 {
			continue
		}
		h := stack[len(stack)-1]
		t.levels[level] = stack[:len(stack)-1]

		for i, c := range t.nodes[h].children {
			if c == rootHandle {
				continue
			}
			t.nodes[h].add(t.nodes[c].Bucket)
			t.destroy(c)
			t.nodes[h].children[i] = rootHandle
		}
		t.nodes[h].leaf = true
		t.leaves++
		return true
	}
	return false
}

// Leaves returns a snapshot of every leaf in depth-first order, visiting
// children by ascending slot index. The result has LeafCount elements.
func (t *Tree) Leaves() []Bucket {
	if len(t.nodes) == 0 {
		return nil
	}
	out := make([]Bucket, 0, t.leaves)
	return t.collect(rootHandle, out)
}

func (t *Tree) collect(h handle, out []Bucket) []Bucket {
	n := &t.nodes[h]
	if n.leaf {
		return append(out, n.Bucket)
	}
	for _, c := range n.children {
		if c != rootHandle {
			out = t.collect(c, out)
		}
	}
	return out
}

// Release frees every node. It is safe to call on a nil or already released
// tree.
func (t *Tree) Release() {
	if t == nil {
		return
	}
	t.nodes = nil
	t.free = nil
	t.levels = [MaxDepth][]handle{}
	t.leaves = 0
	t.inserted = 0
}

func (t *Tree) alloc(level int) (handle, error) {
	if t.limit != 0 && t.NodeCount() >= t.limit {
		return 0, ErrNodeLimit
	}

	var h handle
	if n := len(t.free); n > 0 {
		h = t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[h] = node{}
	} else {
		h = handle(len(t.nodes))
		t.nodes = append(t.nodes, node{})
	}

	t.nodes[h].level = uint8(level)
	if level == MaxDepth {
		t.nodes[h].leaf = true
		t.leaves++
	} else {
		t.levels[level] = append(t.levels[level], h)
	}
	return h, nil
}

// destroy frees the subtree rooted at h, keeping the leaf count and level
// stacks consistent.
func (t *Tree) destroy(h handle) {
	n := &t.nodes[h]
	if n.leaf {
		t.leaves--
	} else {
		t.unqueue(h, int(n.level))
		for _, c := range n.children {
			if c != rootHandle {
				t.destroy(c)
			}
		}
	}
	t.nodes[h] = node{}
	t.free = append(t.free, h)
}

func (t *Tree) unqueue(h handle, level int) {
	stack := t.levels[level]
	if i := slices.Index(stack, h); i >= 0 {
		t.levels[level] = slices.Delete(stack, i, i+1)
	}
}
