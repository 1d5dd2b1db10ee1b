package main

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/maruel/natural"
	"go.uber.org/zap"

	"texatlas/atlas"
	"texatlas/render"
)

// Sprite 是一张待打包的输入图片。
type Sprite struct {
	Path       string
	SourceSize atlas.Size      // 原图尺寸
	Region     image.Rectangle // 修剪透明部分后在原图中的区域，未修剪时为整张图
}

// Width 返回修剪后的宽度。
func (s Sprite) Width() int {
	return s.Region.Dx()
}

// Height 返回修剪后的高度。
func (s Sprite) Height() int {
	return s.Region.Dy()
}

// Trimmed 判断是否裁掉了透明边。
func (s Sprite) Trimmed() bool {
	return s.Region != image.Rect(0, 0, s.SourceSize.W, s.SourceSize.H)
}

// Load 解码图片并返回 Region 部分。
func (s Sprite) Load() (image.Image, error) {
	img, err := imaging.Open(s.Path)
	if err != nil {
		return nil, err
	}
	if !s.Trimmed() {
		return img, nil
	}
	return imaging.Crop(img, s.Region), nil
}

// Parallel 把 [start, end) 分批并行地交给 fn 处理。
func Parallel(start, end int, fn func(i int)) {
	numGoroutines := runtime.NumCPU()
	if end-start < numGoroutines {
		// 如果任务数量少于CPU核心数，直接顺序执行
		for i := start; i < end; i++ {
			fn(i)
		}
		return
	}
	var wg sync.WaitGroup
	batchSize := (end - start + numGoroutines - 1) / numGoroutines
	for i := start; i < end; i += batchSize {
		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			for j := from; j < to && j < end; j++ {
				fn(j)
			}
		}(i, i+batchSize)
	}
	wg.Wait()
}

func loadSprites(paths []string, opts *Options) ([]Sprite, error) {
	sprites := make([]Sprite, len(paths))
	errs := make([]error, len(paths))
	Parallel(0, len(paths), func(i int) {
		path := paths[i]
		if opts.IsTrimTransparent {
			// 完全解码图片以分析透明区域
			src, err := imaging.Open(path)
			if err != nil {
				errs[i] = fmt.Errorf("无法解码图片 %s: %w", path, err)
				return
			}
			b := src.Bounds()
			sprites[i] = Sprite{
				Path:       path,
				SourceSize: atlas.NewSize(b.Dx(), b.Dy()),
				Region:     render.BBox(src, uint8(opts.TransparencyThreshold)).Sub(b.Min),
			}
			return
		}
		// 只解码图片头部以获取尺寸信息
		file, err := os.Open(path)
		if err != nil {
			errs[i] = err
			return
		}
		cfg, _, err := image.DecodeConfig(file)
		file.Close()
		if err != nil {
			errs[i] = fmt.Errorf("无法解码图片 %s: %w", path, err)
			return
		}
		sprites[i] = Sprite{
			Path:       path,
			SourceSize: atlas.NewSize(cfg.Width, cfg.Height),
			Region:     image.Rect(0, 0, cfg.Width, cfg.Height),
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return sprites, nil
}

// readSprites 读取输入目录中的所有 PNG 图片。
func readSprites(opts *Options, log *zap.Logger) ([]Sprite, error) {
	if _, err := os.Stat(opts.InputDir); err != nil {
		return nil, fmt.Errorf("输入目录 %s 不可用: %w", opts.InputDir, err)
	}
	paths, err := filepath.Glob(filepath.Join(opts.InputDir, "*.png"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("输入目录 %s 中没有找到任何图片文件", opts.InputDir)
	}
	// 是否按文件名排序
	if opts.IsFilesSort {
		sort.Sort(natural.StringSlice(paths))
	}
	log.Info("找到图片文件", zap.Int("count", len(paths)), zap.Bool("trim", opts.IsTrimTransparent))
	return loadSprites(paths, opts)
}
