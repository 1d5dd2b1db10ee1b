package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"texatlas/atlas"
)

// strategyBest 表示比较全部打包算法并保留 bin 最少的结果。
const strategyBest = "best"

type Options struct {
	ConfigPath            string `json:"-"`                 // JSON 配置文件路径
	UnpackPath            string `json:"unpack,omitempty"`  // 解包路径
	InputDir              string `json:"input"`             // 输入目录
	OutputDir             string `json:"output"`            // 输出目录
	AtlasMaxWidth         int    `json:"width"`             // 最大宽度
	AtlasMaxHeight        int    `json:"height"`            // 最大高度
	IsFilesSort           bool   `json:"sort"`              // 是否按文件名自然排序
	IsAllowRotate         bool   `json:"rotate"`            // 是否允许旋转
	IsTrimTransparent     bool   `json:"trim"`              // 是否修剪透明部分
	TransparencyThreshold uint   `json:"threshold"`         // 透明度阈值
	Strategy              string `json:"strategy"`          // 打包算法
	PowerOfTwo            bool   `json:"powerOfTwo"`        // 是否使用2的幂
	IsDebug               bool   `json:"debug"`             // 是否输出彩色调试图
	Verbose               bool   `json:"verbose,omitempty"` // 是否输出调试日志
}

func defaultOptions() Options {
	return Options{
		InputDir:          "input",
		OutputDir:         "output",
		AtlasMaxWidth:     4096,
		AtlasMaxHeight:    4096,
		IsFilesSort:       true,
		IsAllowRotate:     true,
		IsTrimTransparent: true,
		Strategy:          strategyBest,
	}
}

func newFlagSet(opts *Options) *flag.FlagSet {
	fs := flag.NewFlagSet("texatlas", flag.ContinueOnError)
	fs.StringVar(&opts.ConfigPath, "config", "", "JSON 配置文件，命令行参数优先")
	fs.StringVar(&opts.UnpackPath, "unpack", opts.UnpackPath, "解包的图集 JSON 路径")
	fs.StringVar(&opts.InputDir, "input", opts.InputDir, "输入目录")
	fs.StringVar(&opts.OutputDir, "output", opts.OutputDir, "输出目录")
	fs.IntVar(&opts.AtlasMaxWidth, "width", opts.AtlasMaxWidth, "图集最大宽度")
	fs.IntVar(&opts.AtlasMaxHeight, "height", opts.AtlasMaxHeight, "图集最大高度")
	fs.BoolVar(&opts.IsFilesSort, "sort", opts.IsFilesSort, "按文件名自然排序")
	fs.BoolVar(&opts.IsAllowRotate, "rotate", opts.IsAllowRotate, "允许矩形旋转")
	fs.BoolVar(&opts.IsTrimTransparent, "trim", opts.IsTrimTransparent, "修剪透明部分")
	fs.UintVar(&opts.TransparencyThreshold, "threshold", opts.TransparencyThreshold, "透明度阈值 (0-255)")
	fs.StringVar(&opts.Strategy, "strategy", opts.Strategy, "打包算法 (BinaryTree, Passthrough, best)")
	fs.BoolVar(&opts.PowerOfTwo, "pow-of-two", opts.PowerOfTwo, "图集尺寸向上取整到2的幂")
	fs.BoolVar(&opts.IsDebug, "debug", opts.IsDebug, "额外输出彩色调试图")
	fs.BoolVar(&opts.Verbose, "v", opts.Verbose, "输出调试日志")
	return fs
}

// parseOptions 解析命令行参数。指定 -config 时先读取配置文件，
// 再重新应用命令行参数，使显式给出的参数覆盖文件中的值。
func parseOptions(args []string) (Options, error) {
	opts := defaultOptions()
	fs := newFlagSet(&opts)
	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if opts.ConfigPath != "" {
		if err := loadConfig(opts.ConfigPath, &opts); err != nil {
			return Options{}, err
		}
		if err := fs.Parse(args); err != nil {
			return Options{}, err
		}
	}
	if err := opts.validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// loadConfig 读取 JSON 配置文件，文件中没有的字段保持原值。
func loadConfig(path string, opts *Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, opts); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (o *Options) validate() error {
	if o.UnpackPath != "" {
		return nil
	}
	if o.InputDir == "" {
		return errors.New("options: input directory is required")
	}
	if o.AtlasMaxWidth <= 0 || o.AtlasMaxHeight <= 0 {
		return fmt.Errorf("options: %w (given %dx%d)", atlas.ErrInvalidMaxSize, o.AtlasMaxWidth, o.AtlasMaxHeight)
	}
	if o.TransparencyThreshold > 255 {
		return fmt.Errorf("options: threshold must be in [0, 255] (given %d)", o.TransparencyThreshold)
	}
	if !strings.EqualFold(o.Strategy, strategyBest) {
		if _, err := atlas.ParseStrategy(o.Strategy); err != nil {
			return fmt.Errorf("options: %w", err)
		}
	}
	return nil
}
