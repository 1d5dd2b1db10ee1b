package atlas

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Strategy 选择打包算法。
type Strategy uint8

const (
	StrategyBinaryTree Strategy = iota
	StrategyPassthrough
)

// Strategies 列出所有可用的打包算法，顺序即 Best 的默认比较顺序。
var Strategies = []Strategy{StrategyBinaryTree, StrategyPassthrough}

func (s Strategy) String() string {
	switch s {
	case StrategyBinaryTree:
		return "BinaryTree"
	case StrategyPassthrough:
		return "Passthrough"
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// ParseStrategy 根据名称解析打包算法，忽略大小写以及 "-"、"_"。
func ParseStrategy(name string) (Strategy, error) {
	normalized := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
	switch normalized {
	case "binarytree", "tree":
		return StrategyBinaryTree, nil
	case "passthrough":
		return StrategyPassthrough, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Pack 使用指定的算法打包条目。
func Pack[T Item](s Strategy, items []T, maxWidth, maxHeight int, rotate bool) (*Atlas[T], error) {
	switch s {
	case StrategyBinaryTree:
		return BinaryTree(items, maxWidth, maxHeight, rotate)
	case StrategyPassthrough:
		return Passthrough(items, maxWidth, maxHeight, rotate)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, s.String())
}

// Best 并行运行多个算法，返回 bin 数量最少的结果。
// bin 数量相同时选择利用率更高的，仍相同时选择靠前的算法。
// 返回错误的算法不参与比较，只有全部算法都失败时才返回合并后的错误。
// 不指定算法时比较 Strategies 中的全部算法。
//
// 每次运行都有各自的 Atlas，只共享只读的条目序列。
func Best[T Item](items []T, maxWidth, maxHeight int, rotate bool, strategies ...Strategy) (*Atlas[T], Strategy, error) {
	if len(strategies) == 0 {
		strategies = Strategies
	}
	atlases := make([]*Atlas[T], len(strategies))
	errs := make([]error, len(strategies))

	var wg sync.WaitGroup
	for i, s := range strategies {
		wg.Add(1)
		go func() {
			defer wg.Done()
			atlases[i], errs[i] = Pack(s, items, maxWidth, maxHeight, rotate)
		}()
	}
	wg.Wait()

	best := -1
	for i, a := range atlases {
		if errs[i] != nil {
			Logger().Debug("strategy skipped",
				zap.Stringer("strategy", strategies[i]),
				zap.Error(errs[i]))
			continue
		}
		if best < 0 || better(a, atlases[best]) {
			best = i
		}
	}
	if best < 0 {
		return nil, 0, errors.Join(errs...)
	}
	Logger().Debug("best strategy selected",
		zap.Stringer("strategy", strategies[best]),
		zap.Int("bins", atlases[best].BinCount()),
		zap.Float64("used", atlases[best].Used()))
	return atlases[best], strategies[best], nil
}

func better[T Item](a, b *Atlas[T]) bool {
	if a.BinCount() != b.BinCount() {
		return a.BinCount() < b.BinCount()
	}
	return a.Used() > b.Used()
}
