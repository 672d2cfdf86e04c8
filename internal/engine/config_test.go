package engine

import (
	"math"
	"testing"
)

func TestSanitizeReordersInvertedThresholds(t *testing.T) {
	config := DefaultConfig()
	config.Tension.WeakHitThreshold = 80
	config.Resistance.StrongHitThreshold = 15

	got := config.Sanitize()

	if got.Tension.WeakHitThreshold != 15 || got.Resistance.StrongHitThreshold != 80 {
		t.Fatalf("thresholds not reordered: weak=%v strong=%v",
			got.Tension.WeakHitThreshold, got.Resistance.StrongHitThreshold)
	}
}

func TestSanitizeReordersTimingWindows(t *testing.T) {
	config := DefaultConfig()
	config.Tension.PerfectTimingWindow = 3.0
	config.Tension.ComboTimeWindow = 1.5

	got := config.Sanitize()

	if got.Tension.PerfectTimingWindow != 1.5 || got.Tension.ComboTimeWindow != 3.0 {
		t.Fatalf("windows not reordered: perfect=%v combo=%v",
			got.Tension.PerfectTimingWindow, got.Tension.ComboTimeWindow)
	}
}

func TestSanitizeReplacesNonFiniteValues(t *testing.T) {
	def := DefaultConfig()
	config := DefaultConfig()
	config.BaseForceMultiplier = math.NaN()
	config.MaxForceLimit = math.Inf(1)

	got := config.Sanitize()

	if got.BaseForceMultiplier != def.BaseForceMultiplier {
		t.Fatalf("NaN multiplier = %v, want default %v", got.BaseForceMultiplier, def.BaseForceMultiplier)
	}
	if got.MaxForceLimit != def.MaxForceLimit {
		t.Fatalf("Inf force limit = %v, want default %v", got.MaxForceLimit, def.MaxForceLimit)
	}
}

func TestSanitizeClampsPercentages(t *testing.T) {
	config := DefaultConfig()
	config.Resistance.StrongHitsReductionPct = 150
	config.Resistance.SumExceededReductionPct = -10

	got := config.Sanitize()

	if got.Resistance.StrongHitsReductionPct != 100 {
		t.Fatalf("reduction pct = %v, want 100", got.Resistance.StrongHitsReductionPct)
	}
	if got.Resistance.SumExceededReductionPct != 0 {
		t.Fatalf("reduction pct = %v, want 0", got.Resistance.SumExceededReductionPct)
	}
}

func TestSanitizeFixesDegenerateLimits(t *testing.T) {
	def := DefaultConfig()
	config := DefaultConfig()
	config.MaxForceLimit = 0
	config.MaxHistory = 0
	config.HitTTL = -1
	config.MaxHitsWithoutSuccess = 0
	config.ResetProgressValue = 500

	got := config.Sanitize()

	if got.MaxForceLimit != def.MaxForceLimit {
		t.Fatalf("zero force limit = %v, want default", got.MaxForceLimit)
	}
	if got.MaxHistory != def.MaxHistory {
		t.Fatalf("MaxHistory = %v, want default", got.MaxHistory)
	}
	if got.HitTTL != def.HitTTL {
		t.Fatalf("HitTTL = %v, want default", got.HitTTL)
	}
	if got.MaxHitsWithoutSuccess != def.MaxHitsWithoutSuccess {
		t.Fatalf("MaxHitsWithoutSuccess = %v, want default", got.MaxHitsWithoutSuccess)
	}
	if got.ResetProgressValue != 100 {
		t.Fatalf("ResetProgressValue = %v, want clamped 100", got.ResetProgressValue)
	}
}

func TestSanitizeClampsMinForceToLimit(t *testing.T) {
	config := DefaultConfig()
	config.MinForceThreshold = 500
	config.MaxForceLimit = 100

	got := config.Sanitize()

	if got.MinForceThreshold != 100 {
		t.Fatalf("MinForceThreshold = %v, want 100", got.MinForceThreshold)
	}
}
