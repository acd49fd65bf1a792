package game

// TierIncreasedEvent 卡片阶位提升事件
// 由 CardProgressionLedger.AddLevels 入队，选择界面收到后提供强化变体选择
type TierIncreasedEvent struct {
	Card  string // 卡片名
	Tier  int    // 新达到的最高阶位（1..3）
	Level int    // 升级后的等级
}

// TierListener 阶位提升事件的监听者（外部选择界面实现）
type TierListener interface {
	OnTierIncreased(ev TierIncreasedEvent)
}

// TierListenerFunc 让普通函数实现 TierListener
type TierListenerFunc func(ev TierIncreasedEvent)

// OnTierIncreased 实现 TierListener
func (f TierListenerFunc) OnTierIncreased(ev TierIncreasedEvent) {
	f(ev)
}
