// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的场景配置与文案。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrNotInitialized 在 Init() 之前访问资源时返回
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化数据文件系统
// 必须在 main() 开始时、任何配置加载之前调用
// 参数使用 fs.FS，测试中可以直接传入 fstest.MapFS
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径并检查前缀
func normalize(path string) (string, error) {
	// 标准化路径分隔符为正斜杠（embed.FS 使用正斜杠）
	path = filepath.ToSlash(path)

	// 移除可能的 "./" 前缀
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// Open 打开嵌入的文件
// 路径必须以 "data/" 开头
func Open(path string) (fs.File, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(p)
}

// ReadFile 读取嵌入文件的全部内容
// 路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	p, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, p)
}

// Exists 检查文件是否存在于嵌入文件系统中
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}
