package atlas

import (
	"cmp"
	"fmt"
	"slices"
)

// entry 是排序后的一个待放置条目，方向在排序时一次确定。
type entry struct {
	index int
	OrientedSize
}

// byHeightDesc 按高度降序排序，高度相同时按宽度降序。
func byHeightDesc(a, b entry) int {
	if c := cmp.Compare(b.H, a.H); c != 0 {
		return c
	}
	return cmp.Compare(b.W, a.W)
}

// orient 确定条目的放置方向。允许旋转时优先把长边作为宽度；
// 如果这个方向放不进 capacity 而另一个方向可以，则改用另一个方向。
func orient[T Item](it T, capacity Size, rotateAllowed bool) (OrientedSize, bool) {
	o := DimensionsLongest(it, rotateAllowed)
	if o.Fits(capacity) {
		return o, true
	}
	if rotateAllowed {
		alt := OrientedSize{Size: o.Transposed(), Rotated: !o.Rotated}
		if alt.Fits(capacity) {
			return alt, true
		}
	}
	return o, false
}

// checkCapacity 校验最大 bin 尺寸。
func checkCapacity(capacity Size) error {
	if capacity.W <= 0 || capacity.H <= 0 {
		return fmt.Errorf("%w (given %s)", ErrInvalidMaxSize, capacity.String())
	}
	return nil
}

// checkItemSize 校验单个条目的尺寸。
func checkItemSize[T Item](index int, it T) error {
	if it.Width() <= 0 || it.Height() <= 0 {
		return fmt.Errorf("%w: item %d is %dx%d", ErrEmptyItem, index, it.Width(), it.Height())
	}
	return nil
}

// sortedOrder 为每个条目确定方向，并按高度降序、宽度降序稳定排序。
// 任何条目无法放入 capacity 时直接返回错误，不做任何打包。
func sortedOrder[T Item](items []T, capacity Size, rotateAllowed bool) ([]entry, error) {
	if err := checkCapacity(capacity); err != nil {
		return nil, err
	}
	entries := make([]entry, len(items))
	for i, it := range items {
		if err := checkItemSize(i, it); err != nil {
			return nil, err
		}
		o, ok := orient(it, capacity, rotateAllowed)
		if !ok {
			return nil, fmt.Errorf("%w: item %d is %dx%d, max is %s", ErrItemTooLarge, i, it.Width(), it.Height(), capacity.String())
		}
		entries[i] = entry{index: i, OrientedSize: o}
	}
	slices.SortStableFunc(entries, byHeightDesc)
	return entries, nil
}
