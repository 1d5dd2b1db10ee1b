package atlas

import "fmt"

// Size 描述了二维空间中实体的尺寸。
type Size struct {
	// W 是在水平 x 轴上的尺寸。
	W int `json:"w"`
	// H 是在垂直 y 轴上的尺寸。
	H int `json:"h"`
}

// NewSize 创建具有指定尺寸的新尺寸对象。
func NewSize(width, height int) Size {
	return Size{W: width, H: height}
}

// Width 返回宽度，使 Size 本身满足 Item。
func (sz Size) Width() int {
	return sz.W
}

// Height 返回高度。
func (sz Size) Height() int {
	return sz.H
}

// Area 返回总面积（宽度 * 高度）。
func (sz Size) Area() int {
	return sz.W * sz.H
}

// Empty 测试宽度或高度是否为0。
func (sz Size) Empty() bool {
	return sz.W == 0 || sz.H == 0
}

// Transposed 返回宽高互换后的尺寸。
func (sz Size) Transposed() Size {
	return Size{W: sz.H, H: sz.W}
}

// Fits 判断 sz 能否放入 other 中（不旋转）。
func (sz Size) Fits(other Size) bool {
	return sz.W <= other.W && sz.H <= other.H
}

// String 返回尺寸的字符串表示形式。
func (sz Size) String() string {
	return fmt.Sprintf("%dx%d", sz.W, sz.H)
}

// OrientedSize 是经过"长边作为宽"规范化之后的尺寸，
// Rotated 记录宽高是否被交换。
type OrientedSize struct {
	Size
	Rotated bool
}

// String 返回带旋转标记的字符串表示形式。
func (o OrientedSize) String() string {
	if o.Rotated {
		return o.Size.String() + " (rotated)"
	}
	return o.Size.String()
}
