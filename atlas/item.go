package atlas

// Item 是任何可被放入图集的轴对齐矩形。
// 打包算法只需要宽度和高度。
type Item interface {
	Width() int
	Height() int
}

// Area 返回条目所占的总像素数。
func Area[T Item](it T) int {
	return it.Width() * it.Height()
}

// IsEmpty 测试条目的宽度或高度是否为0。
func IsEmpty[T Item](it T) bool {
	return it.Width() == 0 || it.Height() == 0
}

// Dimensions 返回条目原始方向的尺寸。
func Dimensions[T Item](it T) Size {
	return Size{W: it.Width(), H: it.Height()}
}

// DimensionsRotated 在 rotate 为 true 时返回宽高互换后的尺寸。
func DimensionsRotated[T Item](it T, rotate bool) Size {
	if rotate {
		return Size{W: it.Height(), H: it.Width()}
	}
	return Dimensions(it)
}

// DimensionsLongest 在允许旋转时把较长的边作为宽度返回。
// 宽高相等时保持原方向，不标记为旋转。
func DimensionsLongest[T Item](it T, rotateAllowed bool) OrientedSize {
	w, h := it.Width(), it.Height()
	if rotateAllowed && h > w {
		return OrientedSize{Size: Size{W: h, H: w}, Rotated: true}
	}
	return OrientedSize{Size: Size{W: w, H: h}}
}
