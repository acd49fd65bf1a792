package components

// LifetimeComponent 管理投射物实例的生命周期
// 存在时间超过上限后由 LifetimeSystem 标记删除
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生命周期(秒)，<= 0 表示不限时
	CurrentLifetime float64 // 当前已存在时间(秒)，按暂停安全增量累计
	IsExpired       bool    // 是否已过期
}
