package render

import (
	"image"

	"github.com/disintegration/imaging"
)

// BBox 返回 alpha 大于 threshold 的像素的包围矩形。
// 图像完全透明时返回原始边界。
func BBox(img image.Image, threshold uint8) image.Rectangle {
	bounds := img.Bounds()
	if bounds.Empty() {
		return image.Rectangle{}
	}
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X, bounds.Min.Y
	found := false
	visit := func(x, y int, a uint8) {
		if a <= threshold {
			return
		}
		found = true
		minX = min(minX, x)
		minY = min(minY, y)
		maxX = max(maxX, x)
		maxY = max(maxY, y)
	}

	switch src := img.(type) {
	case *image.NRGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			i := src.PixOffset(bounds.Min.X, y)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				visit(x, y, src.Pix[i+3])
				i += 4
			}
		}
	case *image.RGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			i := src.PixOffset(bounds.Min.X, y)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				visit(x, y, src.Pix[i+3])
				i += 4
			}
		}
	default:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				visit(x, y, uint8(a>>8))
			}
		}
	}
	if !found {
		return bounds
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// Border 返回图像四周空白的宽度，顺序为左、右、上、下。
func Border(img image.Image, threshold uint8) (left, right, top, bottom int) {
	bounds := img.Bounds()
	box := BBox(img, threshold)
	return box.Min.X - bounds.Min.X, bounds.Max.X - box.Max.X,
		box.Min.Y - bounds.Min.Y, bounds.Max.Y - box.Max.Y
}

// Trim 裁掉图像四周的空白，返回从 (0,0) 开始的新图像。
func Trim(img image.Image, threshold uint8) *image.NRGBA {
	return imaging.Crop(img, BBox(img, threshold))
}
