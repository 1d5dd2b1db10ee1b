package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"texatlas/atlas"
)

const VERSION = "0.2.0"

type rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// SpriteInfo 存储精灵图的信息
type SpriteInfo struct {
	Filename   string     `json:"filename"`
	Region     rect       `json:"region"` // 在图集中的区域（旋转后的尺寸）
	SourceSize atlas.Size `json:"sourceSize"`
	SourceRect *rect      `json:"sourceRect,omitempty"` // 修剪后在原图中的区域，未修剪时省略
	Trimmed    bool       `json:"trimmed"`
	Rotated    bool       `json:"rotated"`
}

// AtlasInfo 存储单个图集的信息
type AtlasInfo struct {
	Name       string                `json:"atlasName"`
	SpriteList map[string]SpriteInfo `json:"spriteList"`
	TotalSize  atlas.Size            `json:"totalSize"`
}

// MultiAtlasData 存储多个图集的信息
type MultiAtlasData struct {
	Meta struct {
		Version   string     `json:"version"`
		Build     string     `json:"build"`
		Timestamp string     `json:"timestamp"`
		Strategy  string     `json:"strategy"`
		MaxSize   atlas.Size `json:"maxSize"`
		Rotate    bool       `json:"rotate"`
	} `json:"meta"`
	Atlases []AtlasInfo `json:"atlases"`
}

// newMultiAtlasData 根据打包结果生成元数据，imagePaths 和 canvases 与 bin 一一对应。
func newMultiAtlasData(a *atlas.Atlas[Sprite], strategy atlas.Strategy, imagePaths []string, canvases []atlas.Size) MultiAtlasData {
	var data MultiAtlasData
	data.Meta.Version = VERSION
	data.Meta.Build = uuid.NewString()
	data.Meta.Timestamp = time.Now().Format("2006-01-02 15:04:05")
	data.Meta.Strategy = strategy.String()
	data.Meta.MaxSize = a.MaxSize()
	data.Meta.Rotate = a.RotateAllowed()
	data.Atlases = make([]AtlasInfo, a.BinCount())

	for i, bin := range a.Bins() {
		info := &data.Atlases[i]
		info.Name = filepath.Base(imagePaths[i])
		info.TotalSize = canvases[i]
		info.SpriteList = make(map[string]SpriteInfo, len(bin.Placements))
		for _, p := range bin.Placements {
			sprite := a.Item(p.Index)
			fp := p.Footprint(atlas.Dimensions(sprite))
			spriteInfo := SpriteInfo{
				Filename:   filepath.Base(sprite.Path),
				Region:     rect{X: p.X, Y: p.Y, W: fp.W, H: fp.H},
				SourceSize: sprite.SourceSize,
				Trimmed:    sprite.Trimmed(),
				Rotated:    p.Rotated,
			}
			if spriteInfo.Trimmed {
				spriteInfo.SourceRect = &rect{
					X: sprite.Region.Min.X,
					Y: sprite.Region.Min.Y,
					W: sprite.Region.Dx(),
					H: sprite.Region.Dy(),
				}
			}
			info.SpriteList[spriteInfo.Filename] = spriteInfo
		}
	}
	return data
}

// writeMultiAtlasJSON 将元数据写入文件
func writeMultiAtlasJSON(data MultiAtlasData, outputPath string) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, jsonData, 0644)
}

// readMultiAtlasJSON 读取元数据文件
func readMultiAtlasJSON(path string) (MultiAtlasData, error) {
	var data MultiAtlasData
	jsonData, err := os.ReadFile(path)
	if err != nil {
		return data, err
	}
	err = json.Unmarshal(jsonData, &data)
	return data, err
}
