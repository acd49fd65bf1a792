package components

import (
	"testing"

	"github.com/gonewx/spellcore/pkg/types"
)

// countingRoller 固定返回结果并记录调用次数
type countingRoller struct {
	result bool
	calls  int
	chance float64
	source types.CardCategory
}

func (r *countingRoller) Roll(family types.StatusFamily, baseChance float64, source types.CardCategory) bool {
	r.calls++
	r.chance = baseChance
	r.source = source
	return r.result
}

func TestStatusRollIdempotent(t *testing.T) {
	roll := NewStatusRollComponent(StatusCapabilities{
		Burn: &StatusCapability{BaseChance: 40},
	}, types.CategoryActive)
	roller := &countingRoller{result: true}

	for i := 0; i < 3; i++ {
		will, ok := roll.EnsureRolled(types.StatusBurn, roller)
		if !ok || !will {
			t.Fatalf("Hit %d: expected (true, true), got (%v, %v)", i, will, ok)
		}
	}

	if roller.calls != 1 {
		t.Errorf("Expected exactly one draw, got %d", roller.calls)
	}
	if roller.chance != 40 || roller.source != types.CategoryActive {
		t.Errorf("Roller received chance=%f source=%v", roller.chance, roller.source)
	}
	if !roll.IsRolled(types.StatusBurn) || !roll.WillApply(types.StatusBurn) {
		t.Error("Expected cached burn outcome")
	}
}

func TestStatusRollSkipsMissingCapability(t *testing.T) {
	roll := NewStatusRollComponent(StatusCapabilities{
		Slow: &StatusCapability{BaseChance: 100},
	}, types.CategoryPassive)
	roller := &countingRoller{result: true}

	will, ok := roll.EnsureRolled(types.StatusBurn, roller)
	if ok || will {
		t.Errorf("Expected missing capability to be skipped, got (%v, %v)", will, ok)
	}
	if roller.calls != 0 {
		t.Errorf("Missing capability must not draw, got %d draws", roller.calls)
	}
	if roll.IsRolled(types.StatusBurn) {
		t.Error("Missing capability must not be marked as rolled")
	}
}

func TestStatusRollEnsureAllRolled(t *testing.T) {
	tests := []struct {
		name     string
		result   bool
		expected int
	}{
		{"全部命中", true, 2},
		{"全部未命中", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roll := NewStatusRollComponent(StatusCapabilities{
				Burn:    &StatusCapability{BaseChance: 10},
				Special: &StatusCapability{BaseChance: 10},
			}, types.CategoryUnknown)
			roller := &countingRoller{result: tt.result}

			apply := roll.EnsureAllRolled(roller)
			if len(apply) != tt.expected {
				t.Errorf("Expected %d families, got %v", tt.expected, apply)
			}
			// 第二次命中复用缓存
			roll.EnsureAllRolled(roller)
			if roller.calls != 2 {
				t.Errorf("Expected 2 draws total, got %d", roller.calls)
			}
		})
	}
}

func TestStatusCapabilitiesCount(t *testing.T) {
	caps := StatusCapabilities{Static: &StatusCapability{}, Special: &StatusCapability{}}
	if caps.Count() != 2 {
		t.Errorf("Expected 2 capabilities, got %d", caps.Count())
	}
	if caps.Get(types.StatusBurn) != nil {
		t.Error("Expected nil burn capability")
	}
}
