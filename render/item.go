// Package render 把打包好的图集绘制成图像。
package render

import (
	"image"
	"math/bits"
)

// Image 使任意 image.Image 满足 atlas.Item，尺寸取自 Bounds。
type Image struct {
	image.Image
}

// Width 返回图像宽度。
func (img Image) Width() int {
	return img.Bounds().Dx()
}

// Height 返回图像高度。
func (img Image) Height() int {
	return img.Bounds().Dy()
}

// NextPowerOfTwo 返回不小于 n 的最小2的幂。
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
