// Package atlas 把轴对齐的矩形打包进尽量少的、有尺寸上限的 bin 中。
//
// 调用者提供任意具有 Width 和 Height 的值的切片，得到每个条目所在的 bin、
// 偏移量以及是否旋转了90°。这里不处理像素，见 render 包。
package atlas
