package game

import (
	"sync"
	"testing"
)

func TestTryFire(t *testing.T) {
	gate := NewCooldownGate()

	if !gate.TryFire("bolt", 0, 1) {
		t.Fatal("First fire should always pass")
	}
	if gate.TryFire("bolt", 0.5, 1) {
		t.Error("Fire within cooldown should be rejected")
	}
	if !gate.TryFire("bolt", 1.0, 1) {
		t.Error("Fire exactly at cooldown should pass")
	}
	if last, ok := gate.LastFire("bolt"); !ok || last != 1.0 {
		t.Errorf("Expected last fire 1.0, got %f (ok=%v)", last, ok)
	}

	// 冷却按投射物族计时，不同族互不影响
	if !gate.TryFire("orbital", 1.1, 5) {
		t.Error("Different archetype should not share cooldown")
	}
}

func TestBypassIsSingleUse(t *testing.T) {
	gate := NewCooldownGate()
	gate.TryFire("orbital", 0, 5)
	gate.ArmBypass("frost_orbital")

	fired, bypassed := gate.TryFireCard("frost_orbital", "orbital", 1, 5)
	if !fired || !bypassed {
		t.Fatalf("Expected bypassed fire, got fired=%v bypassed=%v", fired, bypassed)
	}
	// 跳过检查时仍然记录发射时间
	if last, _ := gate.LastFire("orbital"); last != 1 {
		t.Errorf("Expected fire time recorded at 1, got %f", last)
	}

	fired, bypassed = gate.TryFireCard("frost_orbital", "orbital", 2, 5)
	if fired || bypassed {
		t.Errorf("Bypass must not persist, got fired=%v bypassed=%v", fired, bypassed)
	}
}

func TestConsumeBypassNotRestored(t *testing.T) {
	gate := NewCooldownGate()
	gate.ArmBypass("frost_orbital")

	if !gate.ConsumeBypass("frost_orbital") {
		t.Fatal("Expected bypass to be consumed")
	}
	// 调用方随后因法力不足失败，标记不恢复
	if gate.HasBypass("frost_orbital") {
		t.Error("Bypass must stay consumed")
	}
	if gate.ConsumeBypass("frost_orbital") {
		t.Error("Second consume must fail")
	}
}

func TestGateReset(t *testing.T) {
	gate := NewCooldownGate()
	gate.TryFire("bolt", 0, 10)
	gate.ArmBypass("card")
	gate.ArmBypass("")

	gate.Reset()

	if !gate.Ready("bolt", 0, 10) {
		t.Error("Reset should clear fire history")
	}
	if gate.HasBypass("card") || gate.HasBypass("") {
		t.Error("Reset should clear bypass flags")
	}
}

// TestGateConcurrentArmAndFire 选择变体与生成在不同 goroutine 中进行
func TestGateConcurrentArmAndFire(t *testing.T) {
	session := newTestSession(t)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			session.Ledger.SetEnhancedVariant("frost_orbital", i%3+1)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			session.Gate.TryFireCard("frost_orbital", "orbital", float64(i), 5)
			session.Gate.HasBypass("frost_orbital")
		}
	}()
	wg.Wait()

	// 最后一次选择之后没有新的发射时，标记可能仍然存在；再消费一次后必定清空
	session.Gate.ConsumeBypass("frost_orbital")
	if session.Gate.HasBypass("frost_orbital") {
		t.Error("Bypass should be cleared after consumption")
	}
}
