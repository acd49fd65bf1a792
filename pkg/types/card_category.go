// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import (
	"fmt"
	"strings"
)

// CardCategory 卡片的投射物系统类型
type CardCategory int

const (
	// CategoryUnknown 未配置类别（无卡片的预制体投射物）
	CategoryUnknown CardCategory = iota
	// CategoryActive 主动卡：由攻击速度循环驱动发射
	CategoryActive
	// CategoryPassive 被动卡：按内部冷却自行触发
	CategoryPassive
)

// String 返回类别的字符串表示
func (c CardCategory) String() string {
	switch c {
	case CategoryActive:
		return "Active"
	case CategoryPassive:
		return "Passive"
	default:
		return "Unknown"
	}
}

// ParseCardCategory 从配置字符串解析卡片类别（不区分大小写）
func ParseCardCategory(s string) (CardCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return CategoryActive, nil
	case "passive":
		return CategoryPassive, nil
	default:
		return CategoryUnknown, fmt.Errorf("unknown card category %q", s)
	}
}
