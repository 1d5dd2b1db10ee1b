package atlas

import "errors"

// atlas 包返回的哨兵错误，可用 errors.Is 判断。
var (
	// ErrInvalidMaxSize 表示最大 bin 宽度或高度不是正数。
	ErrInvalidMaxSize = errors.New("atlas: max bin width and height must be greater than 0")

	// ErrEmptyItem 表示条目的宽度或高度为零或负数。
	ErrEmptyItem = errors.New("atlas: item has an empty dimension")

	// ErrItemTooLarge 表示条目在任何允许的方向上都放不进最大 bin。
	ErrItemTooLarge = errors.New("atlas: item does not fit the max bin size")

	// ErrUnknownStrategy 表示无法识别的打包算法。
	ErrUnknownStrategy = errors.New("atlas: unknown packing strategy")

	// ErrInvariant 由 Verify 在打包结果不一致时返回。
	ErrInvariant = errors.New("atlas: invariant violated")
)
