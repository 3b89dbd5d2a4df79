package octree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// sumCounts returns the total population across buckets.
func sumCounts(buckets []Bucket) uint64 {
	var total uint64
	for _, b := range buckets {
		total += b.Count
	}
	return total
}

// gradient returns n pixels spread across the whole RGBA space.
func gradient(n int) []Pixel {
	pixels := make([]Pixel, n)
	for i := range pixels {
		pixels[i] = Pixel{uint8(i * 7), uint8(i * 13), uint8(i * 29), uint8(255 - i*3)}
	}
	return pixels
}

func newTree(t *testing.T, opts ...Option) *Tree {
	t.Helper()
	tree, err := New(opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(tree.Release)
	return tree
}

func TestChildIndex(t *testing.T) {
	tests := []struct {
		name  string
		pixel Pixel
		level int
		want  int
	}{
		{"black transparent level 0", Pixel{0, 0, 0, 0}, 0, 0},
		{"white opaque level 0", Pixel{255, 255, 255, 255}, 0, 15},
		{"red opaque level 0", Pixel{255, 0, 0, 255}, 0, 9},
		{"green level 0", Pixel{0, 128, 0, 0}, 0, 4},
		{"blue level 0", Pixel{0, 0, 128, 0}, 0, 2},
		{"low bit only at level 7", Pixel{1, 0, 1, 0}, 7, 10},
		{"low bit invisible at level 0", Pixel{1, 1, 1, 1}, 0, 0},
		{"0x40 at level 1", Pixel{0x40, 0x40, 0, 0}, 1, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChildIndex(tt.pixel, tt.level); got != tt.want {
				t.Errorf("ChildIndex(%v, %d) = %d, want %d", tt.pixel, tt.level, got, tt.want)
			}
		})
	}
}

func TestChildIndex_Range(t *testing.T) {
	for _, p := range gradient(64) {
		for level := 0; level < MaxDepth; level++ {
			idx := ChildIndex(p, level)
			if idx < 0 || idx >= Fanout {
				t.Fatalf("ChildIndex(%v, %d) = %d out of range", p, level, idx)
			}
		}
	}
}

func TestNew(t *testing.T) {
	tree := newTree(t)

	if tree.LeafCount() != 0 {
		t.Errorf("LeafCount: got %d, want 0", tree.LeafCount())
	}
	if tree.NodeCount() != 1 {
		t.Errorf("NodeCount: got %d, want 1 (root)", tree.NodeCount())
	}
	if len(tree.levels[0]) != 1 {
		t.Errorf("level 0 stack: got %d entries, want 1", len(tree.levels[0]))
	}
}

func TestNew_NodeLimitTooSmall(t *testing.T) {
	tree, err := New(WithNodeLimit(0))
	if !errors.Is(err, ErrNodeLimit) {
		t.Fatalf("expected ErrNodeLimit, got %v", err)
	}
	if tree != nil {
		t.Error("expected nil tree on failure")
	}
}

func TestInsert_SinglePixel(t *testing.T) {
	tree := newTree(t)

	if err := tree.Insert(Pixel{10, 20, 30, 255}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	// Root plus one node per level down to the leaf.
	if tree.NodeCount() != MaxDepth+1 {
		t.Errorf("NodeCount: got %d, want %d", tree.NodeCount(), MaxDepth+1)
	}
	if tree.LeafCount() != 1 {
		t.Errorf("LeafCount: got %d, want 1", tree.LeafCount())
	}

	want := []Bucket{{Count: 1, Red: 10, Green: 20, Blue: 30, Alpha: 255}}
	if diff := cmp.Diff(want, tree.Leaves()); diff != "" {
		t.Errorf("Leaves mismatch (-want +got):\n%s", diff)
	}
}

func TestInsert_SameColorSharesLeaf(t *testing.T) {
	tree := newTree(t)

	for i := 0; i < 100; i++ {
		if err := tree.Insert(Pixel{10, 20, 30, 255}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	if tree.LeafCount() != 1 {
		t.Fatalf("LeafCount: got %d, want 1", tree.LeafCount())
	}
	leaves := tree.Leaves()
	r, g, b, a := leaves[0].Average()
	if r != 10 || g != 20 || b != 30 || a != 255 {
		t.Errorf("Average: got (%d,%d,%d,%d), want (10,20,30,255)", r, g, b, a)
	}
	if tree.Inserted() != 100 {
		t.Errorf("Inserted: got %d, want 100", tree.Inserted())
	}
}

func TestInsert_NodeLimit(t *testing.T) {
	// Room for the root and one full path only.
	tree := newTree(t, WithNodeLimit(MaxDepth+1))

	if err := tree.Insert(Pixel{0, 0, 0, 0}); err != nil {
		t.Fatalf("first Insert failed: %v", err)
	}
	err := tree.Insert(Pixel{255, 255, 255, 255})
	if !errors.Is(err, ErrNodeLimit) {
		t.Fatalf("expected ErrNodeLimit, got %v", err)
	}
	if tree.Inserted() != 1 {
		t.Errorf("failed pixel must not be counted: Inserted = %d", tree.Inserted())
	}
	if sumCounts(tree.Leaves()) != 1 {
		t.Errorf("leaf population changed after failed insert")
	}
}

func TestLeaves_TraversalOrder(t *testing.T) {
	tree := newTree(t)

	// White lands in slot 15 at level 0, black in slot 0. Insert white first
	// to prove order follows slot index, not insertion order.
	_ = tree.Insert(Pixel{255, 255, 255, 255})
	_ = tree.Insert(Pixel{0, 0, 0, 255})

	leaves := tree.Leaves()
	if len(leaves) != 2 {
		t.Fatalf("got %d leaves, want 2", len(leaves))
	}
	if leaves[0].Red != 0 || leaves[1].Red != 255 {
		t.Errorf("unexpected order: %+v", leaves)
	}
}

func TestReduce_MergesDeepestMostRecent(t *testing.T) {
	tree := newTree(t)

	// These differ only in the lowest red bit, so they split at level 7.
	_ = tree.Insert(Pixel{200, 0, 0, 255})
	_ = tree.Insert(Pixel{201, 0, 0, 255})
	_ = tree.Insert(Pixel{201, 0, 0, 255})

	if tree.LeafCount() != 2 {
		t.Fatalf("LeafCount before reduce: got %d, want 2", tree.LeafCount())
	}

	if !tree.Reduce() {
		t.Fatal("Reduce reported no-op on reducible tree")
	}
	if tree.LeafCount() != 1 {
		t.Fatalf("LeafCount after reduce: got %d, want 1", tree.LeafCount())
	}

	want := []Bucket{{Count: 3, Red: 602, Green: 0, Blue: 0, Alpha: 765}}
	if diff := cmp.Diff(want, tree.Leaves()); diff != "" {
		t.Errorf("Leaves mismatch (-want +got):\n%s", diff)
	}
	r, _, _, _ := tree.Leaves()[0].Average()
	if r != 200 {
		t.Errorf("average red should truncate: got %d, want 200", r)
	}
}

func TestReduce_LIFOWithinLevel(t *testing.T) {
	tree := newTree(t)

	// Two separate level-7 parents, each with two leaves.
	_ = tree.Insert(Pixel{0, 0, 0, 255})
	_ = tree.Insert(Pixel{1, 0, 0, 255})
	_ = tree.Insert(Pixel{254, 0, 0, 255})
	_ = tree.Insert(Pixel{255, 0, 0, 255})

	tree.Reduce()

	// The parent created last (the 254/255 pair) must collapse first.
	leaves := tree.Leaves()
	want := []Bucket{
		{Count: 1, Red: 0, Alpha: 255},
		{Count: 1, Red: 1, Alpha: 255},
		{Count: 2, Red: 509, Alpha: 510},
	}
	if diff := cmp.Diff(want, leaves); diff != "" {
		t.Errorf("Leaves mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_Conservation(t *testing.T) {
	tree := newTree(t)
	pixels := gradient(500)
	for _, p := range pixels {
		if err := tree.Insert(p); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	steps := 0
	for {
		leaves := tree.Leaves()
		if len(leaves) != tree.LeafCount() {
			t.Fatalf("step %d: len(Leaves)=%d, LeafCount=%d", steps, len(leaves), tree.LeafCount())
		}
		if got := sumCounts(leaves); got != uint64(len(pixels)) {
			t.Fatalf("step %d: population %d, want %d", steps, got, len(pixels))
		}

		before := tree.LeafCount()
		if !tree.Reduce() {
			break
		}
		if tree.LeafCount() > before {
			t.Fatalf("step %d: leaf count grew from %d to %d", steps, before, tree.LeafCount())
		}
		steps++
	}

	if tree.LeafCount() != 1 {
		t.Errorf("fully collapsed tree should have 1 leaf, got %d", tree.LeafCount())
	}
	if tree.NodeCount() != 1 {
		t.Errorf("fully collapsed tree should only hold the root, got %d nodes", tree.NodeCount())
	}
	if tree.Reduce() {
		t.Error("Reduce on collapsed tree should be a no-op")
	}
}

func TestReduce_StrictlyDecreasesWithSiblings(t *testing.T) {
	tree := newTree(t)

	// Every level-7 parent gets two leaves, so each reduction at that level
	// removes exactly one leaf.
	for i := 0; i < 32; i += 2 {
		_ = tree.Insert(Pixel{uint8(i * 8), 0, 0, 255})
		_ = tree.Insert(Pixel{uint8(i*8 + 1), 0, 0, 255})
	}

	for len(tree.levels[MaxDepth-1]) > 0 {
		before := tree.LeafCount()
		tree.Reduce()
		if tree.LeafCount() != before-1 {
			t.Fatalf("leaf count: got %d, want %d", tree.LeafCount(), before-1)
		}
	}
}

func TestArena_ReusesFreedNodes(t *testing.T) {
	tree := newTree(t)
	_ = tree.Insert(Pixel{0, 0, 0, 255})
	_ = tree.Insert(Pixel{1, 0, 0, 255})

	arena := len(tree.nodes)
	tree.Reduce()
	if len(tree.free) != 2 {
		t.Fatalf("free list: got %d, want 2", len(tree.free))
	}

	_ = tree.Insert(Pixel{255, 255, 255, 255})
	if len(tree.nodes) != arena+MaxDepth-2 {
		t.Errorf("arena grew to %d, expected freed handles to be reused", len(tree.nodes))
	}
}

func TestRelease(t *testing.T) {
	tree := newTree(t)
	_ = tree.Insert(Pixel{1, 2, 3, 4})

	tree.Release()
	tree.Release()

	if tree.NodeCount() != 0 || tree.LeafCount() != 0 {
		t.Errorf("released tree not empty: nodes=%d leaves=%d", tree.NodeCount(), tree.LeafCount())
	}
	if tree.Leaves() != nil {
		t.Error("released tree should have no leaves")
	}

	var nilTree *Tree
	nilTree.Release()
}

func TestBucket_AverageEmpty(t *testing.T) {
	r, g, b, a := Bucket{}.Average()
	if r|g|b|a != 0 {
		t.Errorf("empty bucket average: got (%d,%d,%d,%d)", r, g, b, a)
	}
}
