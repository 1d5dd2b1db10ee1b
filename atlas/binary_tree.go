package atlas

import (
	"slices"

	"go.uber.org/zap"
)

// leaf 是某个 bin 中一块可供后续条目使用的空闲矩形。
type leaf struct {
	bin  int
	x, y int
	Size
}

// subdivide 在叶子 i 的左上角放置尺寸为 size 的条目后拆分该叶子。
//
// 右侧条带不高于条目，底部条带占满叶子原有宽度。
// 两者都非空时右侧原地替换叶子，底部紧随其后插入。
func subdivide(leaves []leaf, i int, size Size) []leaf {
	l := leaves[i]
	right := leaf{bin: l.bin, x: l.x + size.W, y: l.y, Size: Size{W: l.W - size.W, H: size.H}}
	bottom := leaf{bin: l.bin, x: l.x, y: l.y + size.H, Size: Size{W: l.W, H: l.H - size.H}}

	switch {
	case !right.Empty() && !bottom.Empty():
		leaves[i] = right
		return slices.Insert(leaves, i+1, bottom)
	case !right.Empty():
		leaves[i] = right
	case !bottom.Empty():
		leaves[i] = bottom
	default:
		return slices.Delete(leaves, i, i+1)
	}
	return leaves
}

// BinaryTree 使用二叉划分的方式把条目打包进尽量少的 bin。
//
// 条目先按方向规范化后的高度降序、宽度降序稳定排序，然后依次
// 在空闲叶子列表中首次适配；找不到合适的叶子时开一个新 bin，
// 新 bin 的容量为 maxWidth x maxHeight，以便之后较小的条目复用剩余空间。
// 这个算法速度快，条目尺寸比较均匀时效果较好，否则会留下较多空隙。
//
// 任何条目在允许的方向上都放不进 maxWidth x maxHeight 时，
// 在打包开始前返回 ErrItemTooLarge。
func BinaryTree[T Item](items []T, maxWidth, maxHeight int, rotate bool) (*Atlas[T], error) {
	capacity := NewSize(maxWidth, maxHeight)
	order, err := sortedOrder(items, capacity, rotate)
	if err != nil {
		return nil, err
	}

	a := newAtlas(items, capacity, rotate)
	// 只关心叶子，不需要真正的二叉树。
	leaves := make([]leaf, 0, 2)
	maxLeaves := 0
	for _, e := range order {
		inserted := false
		for i := 0; i < len(leaves); i++ {
			l := leaves[i]
			if e.Fits(l.Size) {
				a.place(l.bin, e.index, l.x, l.y, e.Rotated)
				leaves = subdivide(leaves, i, e.Size)
				inserted = true
				break
			}
		}
		if !inserted {
			bin := a.openBin(e.index, e.Rotated)
			leaves = append(leaves, leaf{bin: bin, Size: capacity})
			leaves = subdivide(leaves, len(leaves)-1, e.Size)
			Logger().Debug("bin opened",
				zap.Int("bin", bin),
				zap.Int("item", e.index),
				zap.Stringer("size", e.OrientedSize))
		}
		maxLeaves = max(maxLeaves, len(leaves))
	}

	Logger().Debug("binary tree pass finished",
		zap.Int("items", len(items)),
		zap.Int("bins", a.BinCount()),
		zap.Int("max_leaves", maxLeaves),
		zap.Bool("rotate", rotate))
	return a, nil
}
