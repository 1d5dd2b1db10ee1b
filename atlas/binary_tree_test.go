package atlas

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	atlasWidth  = 256
	atlasHeight = 128
)

var rectLarge = NewSize(192, 96)

// smoke checks the properties every packer must satisfy, independently of Verify.
func smoke[T Item](t *testing.T, a *Atlas[T]) {
	t.Helper()
	require.LessOrEqual(t, a.BinCount(), a.ItemCount(), "more bins than items")
	if a.ItemCount() == 0 {
		require.Zero(t, a.BinCount())
	} else {
		require.NotZero(t, a.BinCount())
	}

	seen := make([]bool, a.ItemCount())
	for b, bin := range a.Bins() {
		var bounds Size
		for i, p := range bin.Placements {
			require.False(t, seen[p.Index], "item %d in more than one placement", p.Index)
			seen[p.Index] = true
			if !a.RotateAllowed() {
				require.False(t, p.Rotated, "item %d rotated with rotation disabled", p.Index)
			}

			size := Dimensions(a.Item(p.Index))
			fp := p.Footprint(size)
			require.True(t, fp.Fits(a.MaxSize()), "item %d exceeds max size", p.Index)
			bounds.W = max(bounds.W, p.X+fp.W)
			bounds.H = max(bounds.H, p.Y+fp.H)

			for _, q := range bin.Placements[:i] {
				qf := q.Footprint(Dimensions(a.Item(q.Index)))
				disjoint := p.X+fp.W <= q.X || q.X+qf.W <= p.X ||
					p.Y+fp.H <= q.Y || q.Y+qf.H <= p.Y
				require.True(t, disjoint, "bin %d: items %d and %d overlap", b, p.Index, q.Index)
			}
		}
		require.Equal(t, bounds, bin.Bounds, "bin %d bounds not tight", b)
	}
	for i, ok := range seen {
		require.True(t, ok, "item %d missing", i)
	}
	require.NoError(t, a.Verify())
}

func TestBinaryTree_EmptyList(t *testing.T) {
	a, err := BinaryTree([]Size{}, atlasWidth, atlasHeight, false)
	require.NoError(t, err)
	assert.Zero(t, a.BinCount())
	smoke(t, a)
}

func TestBinaryTree_SingleItem(t *testing.T) {
	for _, rotate := range []bool{false, true} {
		a, err := BinaryTree([]Size{rectLarge}, atlasWidth, atlasHeight, rotate)
		require.NoError(t, err)
		require.Equal(t, 1, a.BinCount())
		bin := a.Bin(0)
		assert.Equal(t, []Placement{{Index: 0, X: 0, Y: 0}}, bin.Placements)
		assert.Equal(t, NewSize(192, 96), bin.Bounds)
		smoke(t, a)
	}
}

func TestBinaryTree_TwoLargeItemsNeedTwoBins(t *testing.T) {
	a, err := BinaryTree([]Size{rectLarge, rectLarge}, atlasWidth, atlasHeight, true)
	require.NoError(t, err)
	require.Equal(t, 2, a.BinCount())
	for _, bin := range a.Bins() {
		assert.Len(t, bin.Placements, 1)
		assert.Equal(t, rectLarge, bin.Bounds)
	}
	smoke(t, a)
}

func TestBinaryTree_RotatesToFit(t *testing.T) {
	a, err := BinaryTree([]Size{NewSize(128, 64)}, 64, 128, true)
	require.NoError(t, err)
	require.Equal(t, 1, a.BinCount())
	p := a.Bin(0).Placements[0]
	assert.True(t, p.Rotated)
	assert.Equal(t, NewSize(64, 128), p.Footprint(NewSize(128, 64)))
	assert.Equal(t, NewSize(64, 128), a.Bin(0).Bounds)
	smoke(t, a)
}

func TestBinaryTree_RotatesLongestSideToWidth(t *testing.T) {
	a, err := BinaryTree([]Size{NewSize(10, 30), NewSize(20, 20)}, 100, 100, true)
	require.NoError(t, err)
	locations := a.Lookup()
	assert.True(t, locations[0].Rotated)
	assert.False(t, locations[1].Rotated, "squares keep their orientation")
	smoke(t, a)
}

func TestBinaryTree_FillsBinExactly(t *testing.T) {
	items := []Size{NewSize(64, 64), NewSize(64, 64), NewSize(64, 64), NewSize(64, 64)}
	a, err := BinaryTree(items, 128, 128, false)
	require.NoError(t, err)
	require.Equal(t, 1, a.BinCount())
	assert.Equal(t, []Placement{
		{Index: 0, X: 0, Y: 0},
		{Index: 1, X: 64, Y: 0},
		{Index: 2, X: 0, Y: 64},
		{Index: 3, X: 64, Y: 64},
	}, a.Bin(0).Placements)
	assert.Equal(t, NewSize(128, 128), a.Bin(0).Bounds)
	assert.InDelta(t, 1.0, a.Used(), 1e-9)
}

func TestBinaryTree_OrderAndSubdivision(t *testing.T) {
	items := []Size{
		NewSize(10, 20), // A
		NewSize(30, 20), // B
		NewSize(5, 40),  // C
		NewSize(30, 20), // D, same as B, must stay after it
	}
	a, err := BinaryTree(items, 100, 100, false)
	require.NoError(t, err)
	require.Equal(t, 1, a.BinCount())
	assert.Equal(t, []Placement{
		{Index: 2, X: 0, Y: 0},
		{Index: 1, X: 5, Y: 0},
		{Index: 3, X: 35, Y: 0},
		{Index: 0, X: 65, Y: 0},
	}, a.Bin(0).Placements)
	assert.Equal(t, NewSize(75, 40), a.Bin(0).Bounds)
}

func TestBinaryTree_ReusesRemainderOfEarlierBin(t *testing.T) {
	// the second large item opens bin 1, the small one still fits to the right of bin 0
	items := []Size{rectLarge, rectLarge, NewSize(64, 32)}
	a, err := BinaryTree(items, atlasWidth, atlasHeight, false)
	require.NoError(t, err)
	require.Equal(t, 2, a.BinCount())
	assert.Equal(t, Location{Bin: 0, Placement: Placement{Index: 2, X: 192, Y: 0}}, a.Lookup()[2])
	assert.Equal(t, NewSize(256, 96), a.Bin(0).Bounds)
}

func TestBinaryTree_DoesNotMutateItems(t *testing.T) {
	items := []Size{NewSize(5, 5), NewSize(50, 50), NewSize(10, 40)}
	orig := append([]Size(nil), items...)
	_, err := BinaryTree(items, 100, 100, true)
	require.NoError(t, err)
	assert.Equal(t, orig, items)
}

func TestBinaryTree_Preconditions(t *testing.T) {
	tests := []struct {
		name   string
		items  []Size
		w, h   int
		rotate bool
		want   error
	}{
		{"zero width", []Size{NewSize(1, 1)}, 0, 10, false, ErrInvalidMaxSize},
		{"negative height", []Size{NewSize(1, 1)}, 10, -1, false, ErrInvalidMaxSize},
		{"zero max with no items", nil, 0, 0, false, ErrInvalidMaxSize},
		{"empty item", []Size{NewSize(1, 1), NewSize(0, 5)}, 10, 10, false, ErrEmptyItem},
		{"too wide", []Size{NewSize(200, 10)}, 100, 100, true, ErrItemTooLarge},
		{"fits only rotated, rotation off", []Size{NewSize(120, 10)}, 100, 200, false, ErrItemTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := BinaryTree(tt.items, tt.w, tt.h, tt.rotate)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, a)
		})
	}

	_, err := BinaryTree([]Size{NewSize(120, 10)}, 100, 200, true)
	assert.NoError(t, err, "rotation makes the item fit")
}

func randomSizes(r *rand.Rand, n, minSide, maxSide int) []Size {
	sizes := make([]Size, n)
	for i := range sizes {
		sizes[i] = NewSize(r.IntN(maxSide-minSide)+minSide, r.IntN(maxSide-minSide)+minSide)
	}
	return sizes
}

func TestBinaryTree_RandomInputs(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 50; round++ {
		items := randomSizes(r, r.IntN(200), 1, 96)
		for _, rotate := range []bool{false, true} {
			a, err := BinaryTree(items, 256, 256, rotate)
			require.NoError(t, err)
			smoke(t, a)
		}
	}
}

func TestBinaryTree_Deterministic(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	items := randomSizes(r, 300, 8, 64)
	// many duplicates so the stable tie-break matters
	items = append(items, items[:100]...)

	first, err := BinaryTree(items, 512, 512, true)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := BinaryTree(items, 512, 512, true)
		require.NoError(t, err)
		assert.Equal(t, first.Bins(), again.Bins())
	}
}

func TestBinaryTree_UniformItemsPackDensely(t *testing.T) {
	items := make([]Size, 64)
	for i := range items {
		items[i] = NewSize(32, 32)
	}
	a, err := BinaryTree(items, 256, 256, false)
	require.NoError(t, err)
	assert.Equal(t, 1, a.BinCount())
	assert.Equal(t, NewSize(256, 256), a.Bin(0).Bounds)
}

func BenchmarkBinaryTree(b *testing.B) {
	r := rand.New(rand.NewPCG(3, 5))
	items := randomSizes(r, 1024, 32, 96)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BinaryTree(items, 1024, 1024, true); err != nil {
			b.Fatal(err)
		}
	}
}
