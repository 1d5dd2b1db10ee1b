package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"

	"texatlas/atlas"
)

// hsv 转换为不透明的 NRGBA 颜色，h 取值 [0, 360)，s 和 v 取值 [0, 1]。
func hsv(h, s, v float64) color.NRGBA {
	chroma := v * s
	hp := h / 60
	x := chroma * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r, g, b float64
	switch int(hp) {
	case 0:
		r, g, b = chroma, x, 0
	case 1:
		r, g, b = x, chroma, 0
	case 2:
		r, g, b = 0, chroma, x
	case 3:
		r, g, b = 0, x, chroma
	case 4:
		r, g, b = x, 0, chroma
	default:
		r, g, b = chroma, 0, x
	}
	m := v - chroma
	return color.NRGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

// ItemColor 返回第 index 个条目（共 count 个）在调试图像中的颜色，
// 色相按下标均匀分布。
func ItemColor(index, count int) color.NRGBA {
	if count <= 0 {
		count = 1
	}
	hue := math.Mod(float64(index)*360/float64(count), 360)
	return hsv(hue, 1, 1)
}

// Colored 为每个 bin 生成一张调试图像，每个条目的占位区域用各自的颜色填充，
// 其余区域透明。条目本身不需要是图像。
func Colored[T atlas.Item](a *atlas.Atlas[T]) []*image.NRGBA {
	images := make([]*image.NRGBA, 0, a.BinCount())
	for _, bin := range a.Bins() {
		img := imaging.New(bin.Bounds.W, bin.Bounds.H, color.NRGBA{0, 0, 0, 0})
		for _, p := range bin.Placements {
			fp := p.Footprint(atlas.Dimensions(a.Item(p.Index)))
			r := image.Rect(p.X, p.Y, p.X+fp.W, p.Y+fp.H)
			draw.Draw(img, r, &image.Uniform{ItemColor(p.Index, a.ItemCount())}, image.Point{}, draw.Src)
		}
		images = append(images, img)
	}
	return images
}
