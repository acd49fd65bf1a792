// Package embedded 提供嵌入配置数据的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让 config 包可以访问嵌入的 data/ 目录。
//
// 未以 "data/" 开头的路径（或未初始化时）回退到本地文件系统，
// 测试和 cmd 工具可以直接传入临时文件路径。
package embedded

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化数据文件系统
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// Reset 清除初始化状态（仅用于测试隔离）
func Reset() {
	dataFS = nil
	initialized = false
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径分隔符并移除 "./" 前缀
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// ReadFile 读取配置文件内容
// "data/" 前缀的路径优先从嵌入文件系统读取
func ReadFile(path string) ([]byte, error) {
	p := normalize(path)
	if initialized && strings.HasPrefix(p, "data/") {
		data, err := fs.ReadFile(dataFS, p)
		if err != nil {
			return nil, fmt.Errorf("embedded read %s: %w", p, err)
		}
		return data, nil
	}
	return os.ReadFile(path)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	p := normalize(path)
	if initialized && strings.HasPrefix(p, "data/") {
		_, err := fs.Stat(dataFS, p)
		return err == nil
	}
	_, err := os.Stat(path)
	return err == nil
}
