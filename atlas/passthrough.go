package atlas

import "fmt"

// Passthrough 为每个条目单独创建一个 bin，按原始顺序、原始方向放在 (0,0)。
// 总是产生与条目数量相同的 bin，用于对比和验证 bin 的公共约定。
// rotate 被忽略。
//
// 与只要求每个条目单独成 bin 的基础约定相比，这里更严格：每个条目都必须
// 不旋转地放进 maxWidth x maxHeight，否则返回 ErrItemTooLarge。
// 因此只有旋转后才放得下的条目会被拒绝，Best 会跳过这种失败的结果。
func Passthrough[T Item](items []T, maxWidth, maxHeight int, rotate bool) (*Atlas[T], error) {
	capacity := NewSize(maxWidth, maxHeight)
	if err := checkCapacity(capacity); err != nil {
		return nil, err
	}
	for i, it := range items {
		if err := checkItemSize(i, it); err != nil {
			return nil, err
		}
		if !Dimensions(it).Fits(capacity) {
			return nil, fmt.Errorf("%w: item %d is %dx%d, max is %s", ErrItemTooLarge, i, it.Width(), it.Height(), capacity.String())
		}
	}

	a := newAtlas(items, capacity, false)
	for i := range items {
		a.openBin(i, false)
	}
	return a, nil
}
