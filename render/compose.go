package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"runtime"
	"sync"

	"github.com/disintegration/imaging"

	"texatlas/atlas"
)

// LoadFunc 返回第 index 个条目的像素。返回图像的 Bounds 尺寸必须与条目一致，
// Bounds.Min 可以不为零（例如 SubImage）。
type LoadFunc func(index int) (image.Image, error)

// Compose 按 bin 中的放置绘制出该 bin 的图像。
// 旋转的放置按顺时针90°绘制。size 为零时使用 bin 的包围尺寸，
// 否则使用 size（例如向上取整到2的幂之后的尺寸），不得小于包围尺寸。
func Compose[T atlas.Item](a *atlas.Atlas[T], binIndex int, size image.Point, load LoadFunc) (*image.NRGBA, error) {
	bin := a.Bin(binIndex)
	if size == (image.Point{}) {
		size = image.Pt(bin.Bounds.W, bin.Bounds.H)
	}
	if size.X < bin.Bounds.W || size.Y < bin.Bounds.H {
		return nil, fmt.Errorf("render: canvas %v smaller than bin %d bounds %s", size, binIndex, bin.Bounds.String())
	}
	dst := imaging.New(size.X, size.Y, color.NRGBA{0, 0, 0, 0})

	var mu sync.Mutex
	var wg sync.WaitGroup
	errChan := make(chan error, len(bin.Placements))
	semaphore := make(chan struct{}, runtime.NumCPU())
	for _, p := range bin.Placements {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(p atlas.Placement) {
			defer wg.Done()
			defer func() { <-semaphore }()

			src, err := load(p.Index)
			if err != nil {
				errChan <- fmt.Errorf("render: load item %d: %w", p.Index, err)
				return
			}
			want := atlas.Dimensions(a.Item(p.Index))
			got := atlas.NewSize(src.Bounds().Dx(), src.Bounds().Dy())
			if got != want {
				errChan <- fmt.Errorf("render: item %d image is %s, expected %s", p.Index, got.String(), want.String())
				return
			}
			if p.Rotated {
				src = imaging.Rotate270(src)
			}
			fp := p.Footprint(want)
			r := image.Rect(p.X, p.Y, p.X+fp.W, p.Y+fp.H)

			mu.Lock()
			draw.Draw(dst, r, src, src.Bounds().Min, draw.Src)
			mu.Unlock()
		}(p)
	}
	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// Images 绘制由图像条目组成的图集中的全部 bin。
func Images(a *atlas.Atlas[Image]) ([]*image.NRGBA, error) {
	load := func(index int) (image.Image, error) {
		return a.Item(index).Image, nil
	}
	images := make([]*image.NRGBA, 0, a.BinCount())
	for i := range a.Bins() {
		img, err := Compose(a, i, image.Point{}, load)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}
