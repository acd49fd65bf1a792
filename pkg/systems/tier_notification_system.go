package systems

import (
	"log"

	"github.com/gonewx/spellcore/pkg/game"
)

// TierNotificationSystem 每帧把账本中排队的阶位提升事件投递给监听者
//
// 事件在 AddLevels 返回后、本系统 Update 时统一投递，顺序与 AddLevels 调用顺序一致。
type TierNotificationSystem struct {
	ledger    *game.CardProgressionLedger
	listeners []game.TierListener
}

// NewTierNotificationSystem 创建阶位通知系统
func NewTierNotificationSystem(ledger *game.CardProgressionLedger) *TierNotificationSystem {
	return &TierNotificationSystem{ledger: ledger}
}

// AddListener 注册监听者
func (s *TierNotificationSystem) AddListener(listener game.TierListener) {
	if listener == nil {
		return
	}
	s.listeners = append(s.listeners, listener)
}

// Update 投递所有待处理事件
// 暂停时也会投递，选择界面通常就在暂停期间弹出
func (s *TierNotificationSystem) Update(deltaTime float64) {
	delivered := s.ledger.FlushEvents(func(ev game.TierIncreasedEvent) {
		for _, l := range s.listeners {
			l.OnTierIncreased(ev)
		}
	})
	if delivered > 0 {
		log.Printf("[TierNotificationSystem] Delivered %d tier event(s) to %d listener(s)", delivered, len(s.listeners))
	}
}
