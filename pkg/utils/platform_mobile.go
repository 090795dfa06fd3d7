//go:build mobile

package utils

// IsMobile 移动端构建（-tags mobile）恒为 true，提示文字改为触屏说法
func IsMobile() bool {
	return true
}
