package scoring

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestEffectivenessScalesWithForce(t *testing.T) {
	eff := Effectiveness(75, 100, -1, 0.5, 1.5)
	if math.Abs(eff-0.875) > tolerance {
		t.Fatalf("effectiveness for force 75/100 = %v, want 0.875", eff)
	}

	if got := Effectiveness(0, 100, -1, 0.5, 1.5); math.Abs(got-0.5) > tolerance {
		t.Fatalf("zero force effectiveness = %v, want 0.5", got)
	}
	if got := Effectiveness(100, 100, -1, 0.5, 1.5); math.Abs(got-1.0) > tolerance {
		t.Fatalf("max force effectiveness = %v, want 1.0", got)
	}
}

func TestEffectivenessPerfectTimingMultiplier(t *testing.T) {
	eff := Effectiveness(75, 100, 0.3, 0.5, 1.5)
	if math.Abs(eff-0.875*1.2) > tolerance {
		t.Fatalf("perfect timing effectiveness = %v, want %v", eff, 0.875*1.2)
	}
}

func TestEffectivenessComboTimingMultiplier(t *testing.T) {
	eff := Effectiveness(75, 100, 1.0, 0.5, 1.5)
	if math.Abs(eff-0.875*1.1) > tolerance {
		t.Fatalf("combo timing effectiveness = %v, want %v", eff, 0.875*1.1)
	}
}

func TestEffectivenessNoTimingRewardOutsideWindows(t *testing.T) {
	eff := Effectiveness(75, 100, 2.0, 0.5, 1.5)
	if math.Abs(eff-0.875) > tolerance {
		t.Fatalf("late hit effectiveness = %v, want 0.875", eff)
	}
}

func TestEffectivenessClampedToBounds(t *testing.T) {
	// Degenerate max force returns the floor rather than dividing by zero.
	if got := Effectiveness(50, 0, -1, 0.5, 1.5); got != EffectivenessMin {
		t.Fatalf("degenerate max force effectiveness = %v, want %v", got, EffectivenessMin)
	}
}

func TestDelta(t *testing.T) {
	got := Delta(75, 0.8, 0.875)
	if math.Abs(got-52.5) > tolerance {
		t.Fatalf("delta = %v, want 52.5", got)
	}
}

func TestClampProgress(t *testing.T) {
	if got := ClampProgress(120); got != ProgressMax {
		t.Fatalf("ClampProgress(120) = %v", got)
	}
	if got := ClampProgress(-5); got != ProgressMin {
		t.Fatalf("ClampProgress(-5) = %v", got)
	}
	if got := ClampProgress(42.5); got != 42.5 {
		t.Fatalf("ClampProgress(42.5) = %v", got)
	}
}

func TestLerpClampsT(t *testing.T) {
	if got := Lerp(0.5, 1.0, 1.7); got != 1.0 {
		t.Fatalf("Lerp with t>1 = %v, want 1.0", got)
	}
	if got := Lerp(0.5, 1.0, -0.2); got != 0.5 {
		t.Fatalf("Lerp with t<0 = %v, want 0.5", got)
	}
}
