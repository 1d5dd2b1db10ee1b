package atlas

import (
	"fmt"
)

// Placement 记录一个条目在某个 bin 中的位置。
type Placement struct {
	// Index 是条目在输入序列中的下标。
	Index int `json:"index"`
	// X, Y 是条目左上角在 bin 中的坐标。
	X int `json:"x"`
	Y int `json:"y"`
	// Rotated 指示条目是否被旋转了90°放置。
	Rotated bool `json:"rotated,omitempty"`
}

// Right 返回放置后右边缘的 x 坐标，size 为条目的原始尺寸。
func (p Placement) Right(size Size) int {
	return p.X + p.Footprint(size).W
}

// Bottom 返回放置后下边缘的 y 坐标。
func (p Placement) Bottom(size Size) int {
	return p.Y + p.Footprint(size).H
}

// Footprint 返回条目在 bin 中实际占据的尺寸（已考虑旋转）。
func (p Placement) Footprint(size Size) Size {
	if p.Rotated {
		return size.Transposed()
	}
	return size
}

// Bin 是一个已打包的容器。
//
// Bounds 是包含所有放置条目的最小包围尺寸，而不是打包时的容量限制；
// 每追加一个放置时按分量取最大值增量更新。
type Bin struct {
	Bounds     Size        `json:"bounds"`
	Placements []Placement `json:"placements"`
}

// grow 追加一个放置，footprint 为旋转后的尺寸。
func (b *Bin) grow(p Placement, footprint Size) {
	b.Bounds.W = max(b.Bounds.W, p.X+footprint.W)
	b.Bounds.H = max(b.Bounds.H, p.Y+footprint.H)
	b.Placements = append(b.Placements, p)
}

// Location 描述单个条目最终落在哪个 bin 以及如何放置。
type Location struct {
	Bin int
	Placement
}

// Atlas 持有只读的输入条目序列和打包产生的 bin 列表。
//
// 条目序列由调用者拥有，Atlas 不会修改或重排它；
// 同一个条目序列可以同时被多个独立的 Atlas 读取。
type Atlas[T Item] struct {
	items   []T
	bins    []Bin
	maxSize Size
	rotate  bool
}

func newAtlas[T Item](items []T, maxSize Size, rotate bool) *Atlas[T] {
	return &Atlas[T]{
		items:   items,
		bins:    make([]Bin, 0, 1),
		maxSize: maxSize,
		rotate:  rotate,
	}
}

// ItemCount 返回待打包的条目数量。
func (a *Atlas[T]) ItemCount() int {
	return len(a.items)
}

// Item 返回指定下标的条目。
func (a *Atlas[T]) Item(index int) T {
	return a.items[index]
}

// Items 返回输入条目序列（由调用者拥有，请勿修改）。
func (a *Atlas[T]) Items() []T {
	return a.items
}

// BinCount 返回已创建的 bin 数量。
func (a *Atlas[T]) BinCount() int {
	return len(a.bins)
}

// Bins 返回 bin 列表（由内部管理，如需修改请复制）。
func (a *Atlas[T]) Bins() []Bin {
	return a.bins
}

// Bin 返回指定下标的 bin。
func (a *Atlas[T]) Bin(index int) Bin {
	return a.bins[index]
}

// MaxSize 返回打包时使用的最大 bin 尺寸。
func (a *Atlas[T]) MaxSize() Size {
	return a.maxSize
}

// RotateAllowed 返回打包时是否允许旋转。
func (a *Atlas[T]) RotateAllowed() bool {
	return a.rotate
}

// Lookup 按条目顺序返回每个条目的位置。
func (a *Atlas[T]) Lookup() []Location {
	locations := make([]Location, len(a.items))
	for i := range locations {
		locations[i].Bin = -1
	}
	for binIndex, bin := range a.bins {
		for _, p := range bin.Placements {
			locations[p.Index] = Location{Bin: binIndex, Placement: p}
		}
	}
	return locations
}

// Used 返回条目总面积与所有 bin 包围面积之比，在0.0到1.0之间。
func (a *Atlas[T]) Used() float64 {
	var used, total int
	for _, bin := range a.bins {
		total += bin.Bounds.Area()
		for _, p := range bin.Placements {
			used += Area(a.items[p.Index])
		}
	}
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total)
}

func (a *Atlas[T]) checkItem(index int) {
	if index < 0 || index >= len(a.items) {
		panic(fmt.Sprintf("atlas: item index %d out of range [0, %d)", index, len(a.items)))
	}
}

// openBin 创建一个只包含指定条目（位于0,0）的新 bin，返回 bin 下标。
func (a *Atlas[T]) openBin(index int, rotated bool) int {
	a.checkItem(index)
	a.bins = append(a.bins, Bin{Placements: make([]Placement, 0, 1)})
	binIndex := len(a.bins) - 1
	a.bins[binIndex].grow(Placement{Index: index, Rotated: rotated}, DimensionsRotated(a.items[index], rotated))
	return binIndex
}

// place 把条目追加到已存在的 bin 中，bin 的包围尺寸按需增长。
func (a *Atlas[T]) place(binIndex, index, x, y int, rotated bool) {
	a.checkItem(index)
	if binIndex < 0 || binIndex >= len(a.bins) {
		panic(fmt.Sprintf("atlas: bin index %d out of range [0, %d)", binIndex, len(a.bins)))
	}
	p := Placement{Index: index, X: x, Y: y, Rotated: rotated}
	a.bins[binIndex].grow(p, DimensionsRotated(a.items[index], rotated))
}

// Verify 检查打包结果是否满足全部不变量：
// 每个条目恰好出现一次、同一 bin 内互不重叠、bin 数量不超过条目数量、
// 包围尺寸恰好是所有放置的最小包围盒，以及禁用旋转时没有旋转的放置。
func (a *Atlas[T]) Verify() error {
	if len(a.bins) > len(a.items) {
		return fmt.Errorf("%w: %d bins for %d items", ErrInvariant, len(a.bins), len(a.items))
	}
	seen := make([]bool, len(a.items))
	for binIndex, bin := range a.bins {
		if len(bin.Placements) == 0 {
			return fmt.Errorf("%w: bin %d has no placements", ErrInvariant, binIndex)
		}
		var bounds Size
		for i, p := range bin.Placements {
			if p.Index < 0 || p.Index >= len(a.items) {
				return fmt.Errorf("%w: bin %d references item %d out of range", ErrInvariant, binIndex, p.Index)
			}
			if seen[p.Index] {
				return fmt.Errorf("%w: item %d placed more than once", ErrInvariant, p.Index)
			}
			seen[p.Index] = true
			if p.Rotated && !a.rotate {
				return fmt.Errorf("%w: item %d rotated while rotation is disabled", ErrInvariant, p.Index)
			}
			size := Dimensions(a.items[p.Index])
			bounds.W = max(bounds.W, p.Right(size))
			bounds.H = max(bounds.H, p.Bottom(size))
			for _, q := range bin.Placements[:i] {
				if overlaps(p, size, q, Dimensions(a.items[q.Index])) {
					return fmt.Errorf("%w: items %d and %d overlap in bin %d", ErrInvariant, q.Index, p.Index, binIndex)
				}
			}
		}
		if bounds != bin.Bounds {
			return fmt.Errorf("%w: bin %d bounds %s, placements need %s", ErrInvariant, binIndex, bin.Bounds.String(), bounds.String())
		}
	}
	for index, ok := range seen {
		if !ok {
			return fmt.Errorf("%w: item %d was not placed", ErrInvariant, index)
		}
	}
	return nil
}

func overlaps(p Placement, ps Size, q Placement, qs Size) bool {
	return p.X < q.Right(qs) && q.X < p.Right(ps) &&
		p.Y < q.Bottom(qs) && q.Y < p.Bottom(ps)
}
