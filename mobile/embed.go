//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需要先把 data/ 复制到此目录：
//
//	cp -r data mobile/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/scene.yaml data/text.yaml
var dataFS embed.FS
