package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"texatlas/atlas"
	"texatlas/render"
)

type DebugInfo struct {
	LoadTime     time.Duration
	PackTime     time.Duration
	ComposeTime  time.Duration
	MetadataTime time.Duration
	TotalTime    time.Duration
}

func (d DebugInfo) fields() []zap.Field {
	return []zap.Field{
		zap.Duration("load", d.LoadTime),
		zap.Duration("pack", d.PackTime),
		zap.Duration("compose", d.ComposeTime),
		zap.Duration("metadata", d.MetadataTime),
		zap.Duration("total", d.TotalTime),
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return cfg.Build()
}

// packSprites 使用配置的算法打包，"best" 时比较全部算法
func packSprites(sprites []Sprite, opts *Options) (*atlas.Atlas[Sprite], atlas.Strategy, error) {
	if strings.EqualFold(opts.Strategy, strategyBest) {
		return atlas.Best(sprites, opts.AtlasMaxWidth, opts.AtlasMaxHeight, opts.IsAllowRotate)
	}
	strategy, err := atlas.ParseStrategy(opts.Strategy)
	if err != nil {
		return nil, 0, err
	}
	a, err := atlas.Pack(strategy, sprites, opts.AtlasMaxWidth, opts.AtlasMaxHeight, opts.IsAllowRotate)
	return a, strategy, err
}

// atlasImageName 只有一个图集时为 atlas.png，否则按序号命名
func atlasImageName(prefix string, index, count int) string {
	if count == 1 {
		return prefix + ".png"
	}
	return fmt.Sprintf("%s_%d.png", prefix, index)
}

// build 读取输入目录，打包并写出图集图片与 JSON 元数据
func build(opts *Options, log *zap.Logger) error {
	var debugInfo DebugInfo
	start := time.Now()
	defer func() {
		debugInfo.TotalTime = time.Since(start)
		log.Debug("耗时统计", debugInfo.fields()...)
	}()

	sprites, err := readSprites(opts, log)
	if err != nil {
		return err
	}
	debugInfo.LoadTime = time.Since(start)

	packStart := time.Now()
	a, strategy, err := packSprites(sprites, opts)
	if err != nil {
		return fmt.Errorf("打包失败: %w", err)
	}
	debugInfo.PackTime = time.Since(packStart)
	log.Info("打包完成",
		zap.Stringer("strategy", strategy),
		zap.Int("sprites", a.ItemCount()),
		zap.Int("atlases", a.BinCount()),
		zap.Float64("used", a.Used()))

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	composeStart := time.Now()
	load := func(index int) (image.Image, error) {
		return a.Item(index).Load()
	}
	imagePaths := make([]string, a.BinCount())
	canvases := make([]atlas.Size, a.BinCount())
	for i, bin := range a.Bins() {
		canvas := bin.Bounds
		if opts.PowerOfTwo {
			canvas = atlas.NewSize(render.NextPowerOfTwo(canvas.W), render.NextPowerOfTwo(canvas.H))
		}
		img, err := render.Compose(a, i, image.Pt(canvas.W, canvas.H), load)
		if err != nil {
			return fmt.Errorf("生成图集 #%d 失败: %w", i, err)
		}
		imagePaths[i] = filepath.Join(opts.OutputDir, atlasImageName("atlas", i, a.BinCount()))
		canvases[i] = canvas
		if err := imaging.Save(img, imagePaths[i]); err != nil {
			return fmt.Errorf("保存图集 #%d 失败: %w", i, err)
		}
		log.Debug("图集已写入",
			zap.String("path", imagePaths[i]),
			zap.Stringer("size", canvas),
			zap.Int("sprites", len(bin.Placements)))
	}
	if opts.IsDebug {
		for i, img := range render.Colored(a) {
			path := filepath.Join(opts.OutputDir, atlasImageName("debug", i, a.BinCount()))
			if err := imaging.Save(img, path); err != nil {
				return fmt.Errorf("保存调试图 #%d 失败: %w", i, err)
			}
		}
	}
	debugInfo.ComposeTime = time.Since(composeStart)

	metadataStart := time.Now()
	multiAtlasJsonPath := filepath.Join(opts.OutputDir, "atlases.json")
	data := newMultiAtlasData(a, strategy, imagePaths, canvases)
	if err := writeMultiAtlasJSON(data, multiAtlasJsonPath); err != nil {
		return fmt.Errorf("生成JSON元数据失败: %w", err)
	}
	debugInfo.MetadataTime = time.Since(metadataStart)
	log.Info("图集元数据已写入", zap.String("path", multiAtlasJsonPath), zap.String("build", data.Meta.Build))
	return nil
}

func run(args []string) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}
	log, err := newLogger(opts.Verbose)
	if err != nil {
		return err
	}
	defer log.Sync()
	atlas.SetLogger(log.Named("atlas"))

	if opts.UnpackPath != "" {
		return unpack(opts.UnpackPath, opts.OutputDir, log)
	}
	return build(&opts, log)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
