package game

// VariantStorage 卡片已选强化变体的存储方式
type VariantStorage int

const (
	// StorageSingle 新选择覆盖当前变体
	StorageSingle VariantStorage = iota
	// StorageBitmask 变体按位或叠加：变体 1/2/3 分别对应位 1/2/4
	StorageBitmask
)

// VariantSelection 当前选中的强化变体
//
// 两种存储方式是显式的类型标签而不是按卡片类别隐式分支：
//   - Single(index): Value 为变体编号 0..3（0 表示基础形态）
//   - Bitmask(flags): Value 为已选变体位的按位或
type VariantSelection struct {
	Storage VariantStorage
	Value   int
}

// Single 构造覆盖式变体选择
func Single(index int) VariantSelection {
	return VariantSelection{Storage: StorageSingle, Value: index}
}

// Bitmask 构造按位叠加的变体选择
func Bitmask(flags int) VariantSelection {
	return VariantSelection{Storage: StorageBitmask, Value: flags}
}

// VariantBit 返回变体编号对应的位，非法编号返回 0
func VariantBit(index int) int {
	if index < 1 || index > 3 {
		return 0
	}
	return 1 << (index - 1)
}

// With 返回记录了新选择后的变体值
// 变体编号不在 1..3 时不改变选择
func (v VariantSelection) With(index int) VariantSelection {
	if VariantBit(index) == 0 {
		return v
	}
	if v.Storage == StorageBitmask {
		return Bitmask(v.Value | VariantBit(index))
	}
	return Single(index)
}

// Includes 当前选择是否包含指定变体
// 覆盖式仅比较当前编号；历史叠加请使用 CardProgressionLedger.HasChosenVariant
func (v VariantSelection) Includes(index int) bool {
	if index <= 0 {
		return false
	}
	if v.Storage == StorageBitmask {
		bit := VariantBit(index)
		return bit != 0 && v.Value&bit != 0
	}
	return v.Value == index
}
