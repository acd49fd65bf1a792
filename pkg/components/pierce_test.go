package components

import (
	"testing"

	"github.com/gonewx/spellcore/pkg/ecs"
)

func TestPierceOneHitsTwoTargets(t *testing.T) {
	pierce := NewPierceComponent(1)
	a, b := ecs.EntityID(1), ecs.EntityID(2)

	if !pierce.OnHit(a) {
		t.Fatal("First hit should keep the projectile alive")
	}
	if pierce.GetRemainingPierces() != 0 {
		t.Errorf("Expected 0 remaining pierces, got %d", pierce.GetRemainingPierces())
	}
	if pierce.OnHit(b) {
		t.Error("Second distinct hit should destroy the projectile")
	}
	if pierce.HitCounter != 2 {
		t.Errorf("Expected hit counter 2, got %d", pierce.HitCounter)
	}
}

func TestPierceDuplicateTargetIdempotent(t *testing.T) {
	pierce := NewPierceComponent(0)
	a := ecs.EntityID(7)

	// 穿透数为 0 时第一次命中即销毁
	if pierce.OnHit(a) {
		t.Error("Zero pierce projectile should be destroyed on first hit")
	}
	for i := 0; i < 3; i++ {
		if !pierce.OnHit(a) {
			t.Error("Re-hitting the same target must return true")
		}
	}
	if pierce.HitCounter != 1 {
		t.Errorf("Duplicate hits must not count, got %d", pierce.HitCounter)
	}
	if !pierce.HasHitEnemy(a) || pierce.HasHitEnemy(8) {
		t.Error("HasHitEnemy mismatch")
	}
}

func TestPierceSetMaxPierces(t *testing.T) {
	pierce := NewPierceComponent(-3)
	if pierce.PierceCount != 0 {
		t.Errorf("Negative pierce should clamp to 0, got %d", pierce.PierceCount)
	}
	pierce.SetMaxPierces(3)
	pierce.OnHit(1)
	if pierce.GetRemainingPierces() != 2 {
		t.Errorf("Expected 2 remaining, got %d", pierce.GetRemainingPierces())
	}

	// 零值组件也可以直接使用
	var zero PierceComponent
	if zero.OnHit(1) {
		t.Error("Zero-value component has no pierces")
	}
}
