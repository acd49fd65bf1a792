package types

// StatusFamily 次要状态效果族
type StatusFamily int

const (
	StatusBurn StatusFamily = iota
	StatusSlow
	StatusStatic
	// StatusSpecial 卡片自定义的特殊判定（如撕咬、触发类效果）
	StatusSpecial
)

// StatusFamilyCount 状态效果族的数量，用于定长数组
const StatusFamilyCount = 4

// AllStatusFamilies 按固定顺序列出所有状态效果族
var AllStatusFamilies = [StatusFamilyCount]StatusFamily{
	StatusBurn,
	StatusSlow,
	StatusStatic,
	StatusSpecial,
}

// String 返回状态效果族的配置名
func (f StatusFamily) String() string {
	switch f {
	case StatusBurn:
		return "burn"
	case StatusSlow:
		return "slow"
	case StatusStatic:
		return "static"
	case StatusSpecial:
		return "special"
	default:
		return "unknown"
	}
}
