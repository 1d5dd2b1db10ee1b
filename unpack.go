package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/disintegration/imaging"
	"github.com/maruel/natural"
	"go.uber.org/zap"
)

// unpack 根据图集 JSON 把每个精灵图还原成原始尺寸和方向的图片
func unpack(jsonPath, outputDir string, log *zap.Logger) error {
	start := time.Now()
	data, err := readMultiAtlasJSON(jsonPath)
	if err != nil {
		return fmt.Errorf("读取图集JSON文件失败: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	count := 0
	for _, info := range data.Atlases {
		atlasImagePath := filepath.Join(filepath.Dir(jsonPath), info.Name)
		atlasImg, err := imaging.Open(atlasImagePath)
		if err != nil {
			return fmt.Errorf("打开图集图片失败: %w", err)
		}

		names := make([]string, 0, len(info.SpriteList))
		for name := range info.SpriteList {
			names = append(names, name)
		}
		sort.Sort(natural.StringSlice(names))

		for _, name := range names {
			sprite := info.SpriteList[name]
			r := sprite.Region
			subImg := imaging.Crop(atlasImg, image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H))
			// 打包时顺时针旋转了90°，这里转回来
			if sprite.Rotated {
				subImg = imaging.Rotate90(subImg)
			}
			if sprite.Trimmed && sprite.SourceRect != nil {
				finalImg := imaging.New(sprite.SourceSize.W, sprite.SourceSize.H, image.Transparent)
				subImg = imaging.Paste(finalImg, subImg, image.Pt(sprite.SourceRect.X, sprite.SourceRect.Y))
			}
			outputPath := filepath.Join(outputDir, filepath.Base(name))
			if err := imaging.Save(subImg, outputPath); err != nil {
				return fmt.Errorf("保存 %s 失败: %w", outputPath, err)
			}
			count++
		}
	}
	log.Info("图集解包完成",
		zap.String("output", outputDir),
		zap.Int("sprites", count),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}
