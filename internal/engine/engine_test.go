package engine

import (
	"fmt"
	"math"
	"testing"

	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/fsm"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/hit"
)

const tolerance = 1e-9

// recorder captures every emitted event in order.
type recorder struct {
	events   []string
	achieved int
	resets   []string
	progress []float64
}

func (r *recorder) StateChanged(prev, next fsm.State) {
	r.events = append(r.events, fmt.Sprintf("state:%s->%s", prev, next))
}

func (r *recorder) RecognitionAchieved() {
	r.achieved++
	r.events = append(r.events, "achieved")
}

func (r *recorder) ResistanceTriggered() {
	r.events = append(r.events, "resistance")
}

func (r *recorder) TensionTriggered() {
	r.events = append(r.events, "tension")
}

func (r *recorder) ProgressChanged(value float64) {
	r.progress = append(r.progress, value)
	r.events = append(r.events, "progress")
}

func (r *recorder) EngineReset(reason string) {
	r.resets = append(r.resets, reason)
	r.events = append(r.events, "reset")
}

func newTestEngine() (*Engine, *recorder) {
	eng := New(DefaultConfig())
	rec := &recorder{}
	eng.AddListener(rec)
	return eng, rec
}

func TestRejectsWeakAndMalformedHits(t *testing.T) {
	eng, _ := newTestEngine()

	if out := eng.ProcessHit(0.5, 0, "fist"); out != nil {
		t.Fatal("hit below the minimum threshold should be rejected")
	}
	if out := eng.ProcessHit(math.NaN(), 0, "fist"); out != nil {
		t.Fatal("NaN force should be rejected")
	}
	if out := eng.ProcessHit(50, math.Inf(1), "fist"); out != nil {
		t.Fatal("non-finite timestamp should be rejected")
	}
	if eng.Progress() != 0 || eng.Statistics().TotalHits != 0 {
		t.Fatal("rejected hits must not mutate the engine")
	}
}

func TestFirstHitScoringScenario(t *testing.T) {
	eng, _ := newTestEngine()

	out := eng.ProcessHit(75, 0, "fist")
	if out == nil {
		t.Fatal("hit should be accepted")
	}
	if math.Abs(out.Effectiveness-0.875) > tolerance {
		t.Fatalf("effectiveness = %v, want 0.875", out.Effectiveness)
	}
	if math.Abs(out.Delta-52.5) > tolerance {
		t.Fatalf("delta = %v, want 52.5", out.Delta)
	}
	if math.Abs(eng.Progress()-52.5) > tolerance {
		t.Fatalf("progress = %v, want 52.5", eng.Progress())
	}
	if eng.State() != fsm.Building {
		t.Fatalf("state = %v, want building", eng.State())
	}
}

func TestStrongFollowUpLandsInResistance(t *testing.T) {
	config := DefaultConfig()
	config.Resistance.StrongHitsReductionPct = 30
	eng := New(config)
	rec := &recorder{}
	eng.AddListener(rec)

	eng.ProcessHit(75, 0, "fist")
	out := eng.ProcessHit(85, 0.3, "fist")

	if out == nil || !out.ResistanceFired {
		t.Fatalf("expected resistance to fire, got %+v", out)
	}
	// 52.5 + 85*0.8*(0.925*1.2) clamps to 100, then the 30% penalty.
	if math.Abs(eng.Progress()-70) > tolerance {
		t.Fatalf("progress = %v, want 70", eng.Progress())
	}
	if eng.State() != fsm.Resistance {
		t.Fatalf("state = %v, want resistance", eng.State())
	}
}

func TestResistanceDeterminism(t *testing.T) {
	eng, _ := newTestEngine()

	eng.ProcessHit(80, 0, "fist")
	afterFirst := eng.Progress()

	out := eng.ProcessHit(85, 10, "fist") // outside timing windows
	if out == nil || !out.ResistanceFired {
		t.Fatal("expected resistance on the second strong hit")
	}

	prePenalty := math.Min(100, afterFirst+out.Delta)
	want := prePenalty * (1 - 0.15)
	if math.Abs(eng.Progress()-want) > tolerance {
		t.Fatalf("progress = %v, want %v", eng.Progress(), want)
	}
}

func TestTensionEscalationSequence(t *testing.T) {
	eng, rec := newTestEngine()

	eng.ProcessHit(10, 0, "fist")
	eng.ProcessHit(30, 2, "fist")
	before := eng.Progress()
	out := eng.ProcessHit(60, 4, "fist")

	if out == nil || !out.TensionFired || out.PerfectTiming {
		t.Fatalf("expected plain series bonus, got %+v", out)
	}
	want := math.Min(100, before+out.Delta+10)
	if math.Abs(eng.Progress()-want) > tolerance {
		t.Fatalf("progress = %v, want %v", eng.Progress(), want)
	}
	if len(rec.events) == 0 {
		t.Fatal("expected events to be recorded")
	}
}

func TestTensionPerfectTimingBonus(t *testing.T) {
	eng, _ := newTestEngine()

	eng.ProcessHit(10, 0, "fist")
	eng.ProcessHit(30, 2, "fist")
	before := eng.Progress()
	out := eng.ProcessHit(60, 2.4, "fist")

	if out == nil || !out.PerfectTiming {
		t.Fatalf("expected perfect timing, got %+v", out)
	}
	want := math.Min(100, before+out.Delta+10+5)
	if math.Abs(eng.Progress()-want) > tolerance {
		t.Fatalf("progress = %v, want %v", eng.Progress(), want)
	}
	if eng.Statistics().PerfectTimings != 1 {
		t.Fatalf("perfect timing counter = %d, want 1", eng.Statistics().PerfectTimings)
	}
}

func TestBoundednessUnderMixedSequence(t *testing.T) {
	eng, _ := newTestEngine()

	ts := 0.0
	for i := 0; i < 200; i++ {
		force := float64((i*37)%120) - 5 // includes rejected and clamped values
		eng.ProcessHit(force, ts, "fist")
		if p := eng.Progress(); p < 0 || p > 100 {
			t.Fatalf("progress out of bounds after hit %d: %v", i, p)
		}
		if len(eng.RecentHits()) > hit.RecentWindowSize {
			t.Fatalf("recent window exceeded bound: %d", len(eng.RecentHits()))
		}
		eng.Tick(0.25)
		if p := eng.Progress(); p < 0 || p > 100 {
			t.Fatalf("progress out of bounds after tick %d: %v", i, p)
		}
		ts += 0.5
	}
}

func TestDecayMonotonicityToZero(t *testing.T) {
	eng, _ := newTestEngine()
	eng.SetProgress(12)

	last := eng.Progress()
	for i := 0; i < 10; i++ {
		eng.Tick(0.5)
		if eng.Progress() > last {
			t.Fatalf("tick increased progress: %v -> %v", last, eng.Progress())
		}
		last = eng.Progress()
	}
	if last != 0 {
		t.Fatalf("progress = %v, want exactly 0", last)
	}
	if eng.State() != fsm.Idle {
		t.Fatalf("state = %v, want idle", eng.State())
	}
}

func TestDecayPausedInsideComboWindow(t *testing.T) {
	eng, _ := newTestEngine()

	eng.ProcessHit(50, 0, "fist")
	before := eng.Progress()
	eng.Tick(1.0) // still inside the 1.5s combo window
	if eng.Progress() != before {
		t.Fatalf("decay should pause during combo: %v -> %v", before, eng.Progress())
	}

	eng.Tick(1.0) // now past the window
	if eng.Progress() >= before {
		t.Fatalf("decay should resume after combo: %v", eng.Progress())
	}
}

func TestAchievedEdgeTrigger(t *testing.T) {
	eng, rec := newTestEngine()

	eng.SetProgress(99)
	eng.ProcessHit(50, 0, "fist")
	if eng.State() != fsm.Achieved {
		t.Fatalf("state = %v, want achieved", eng.State())
	}
	if rec.achieved != 1 {
		t.Fatalf("achieved fired %d times, want 1", rec.achieved)
	}

	// More moderate hits at full progress: no re-fire.
	eng.ProcessHit(50, 5, "fist")
	eng.ProcessHit(50, 10, "fist")
	eng.Tick(0.1)
	if rec.achieved != 1 {
		t.Fatalf("achieved re-fired at full progress: %d", rec.achieved)
	}

	// Drop below and cross again: fires once more.
	eng.SetProgress(50)
	eng.SetProgress(100)
	if rec.achieved != 2 {
		t.Fatalf("achieved after second crossing = %d, want 2", rec.achieved)
	}
}

func TestAutoResetOnHitLimit(t *testing.T) {
	config := DefaultConfig()
	config.MaxHitsWithoutSuccess = 5
	config.ResetProgressValue = 10
	eng := New(config)
	rec := &recorder{}
	eng.AddListener(rec)

	ts := 0.0
	var out *Outcome
	for i := 0; i < 5; i++ {
		out = eng.ProcessHit(5, ts, "fist")
		ts += 3
	}

	if out == nil || !out.AutoReset {
		t.Fatalf("expected auto reset on the limit hit, got %+v", out)
	}
	if len(rec.resets) != 1 || rec.resets[0] != AutoResetReason {
		t.Fatalf("reset events = %v", rec.resets)
	}
	if eng.Progress() != 10 {
		t.Fatalf("progress = %v, want reset value 10", eng.Progress())
	}
	if eng.Statistics().TotalHits != 0 {
		t.Fatalf("hit counter = %d, want 0 after reset", eng.Statistics().TotalHits)
	}
	if eng.Statistics().ConsecutiveFailures != 1 {
		t.Fatalf("consecutive failures = %d, want 1", eng.Statistics().ConsecutiveFailures)
	}
	if len(eng.RecentHits()) != 0 {
		t.Fatal("history should be cleared by reset")
	}
}

func TestConsecutiveFailuresClearOnAchievement(t *testing.T) {
	config := DefaultConfig()
	config.MaxHitsWithoutSuccess = 3
	eng := New(config)

	for i := 0; i < 3; i++ {
		eng.ProcessHit(5, float64(i*3), "fist")
	}
	if eng.Statistics().ConsecutiveFailures != 1 {
		t.Fatalf("consecutive failures = %d, want 1", eng.Statistics().ConsecutiveFailures)
	}

	eng.SetProgress(100)
	if eng.Statistics().ConsecutiveFailures != 0 {
		t.Fatalf("achievement should clear failures, got %d", eng.Statistics().ConsecutiveFailures)
	}
}

func TestResetRenewsGeneration(t *testing.T) {
	eng, _ := newTestEngine()
	gen := eng.Generation()

	eng.Reset("manual", 0)

	if eng.Generation() == gen {
		t.Fatal("reset should renew the generation ID")
	}
	if eng.State() != fsm.Idle {
		t.Fatalf("state = %v, want idle after zero reset", eng.State())
	}
}

func TestNonMonotonicTimestampClamps(t *testing.T) {
	eng, _ := newTestEngine()

	eng.ProcessHit(50, 5, "fist")
	out := eng.ProcessHit(50, 3, "fist") // clock cannot run backwards

	if out == nil {
		t.Fatal("hit should be accepted with a clamped timestamp")
	}
	recent := eng.RecentHits()
	if recent[len(recent)-1].Timestamp != 5 {
		t.Fatalf("timestamp = %v, want clamped to 5", recent[len(recent)-1].Timestamp)
	}
	if got := eng.Statistics().TimeSinceLastHit; got != 0 {
		t.Fatalf("time since last hit = %v, want 0", got)
	}
}

func TestForceClampedToLimit(t *testing.T) {
	eng, _ := newTestEngine()

	eng.ProcessHit(1000, 0, "fist")
	recent := eng.RecentHits()
	if recent[0].Force != 100 {
		t.Fatalf("force = %v, want clamped to 100", recent[0].Force)
	}
}

func TestSetProgressReevaluatesState(t *testing.T) {
	eng, rec := newTestEngine()

	eng.SetProgress(85)
	if eng.State() != fsm.Critical {
		t.Fatalf("state = %v, want critical", eng.State())
	}
	if len(rec.progress) != 1 || rec.progress[0] != 85 {
		t.Fatalf("progress events = %v", rec.progress)
	}

	eng.SetProgress(math.NaN())
	if eng.Progress() != 85 {
		t.Fatalf("NaN override changed progress: %v", eng.Progress())
	}
}

func TestHistoryExpiresByAge(t *testing.T) {
	eng, _ := newTestEngine()

	eng.ProcessHit(50, 0, "fist")
	eng.ProcessHit(50, 1, "fist")
	eng.Tick(15) // past the 10 unit TTL

	if len(eng.RecentHits()) != 0 {
		t.Fatalf("expected fully expired history, got %d records", len(eng.RecentHits()))
	}
}

func TestStatisticsAverageForce(t *testing.T) {
	eng, _ := newTestEngine()

	eng.ProcessHit(40, 0, "fist")
	eng.ProcessHit(60, 3, "boot")

	stats := eng.Statistics()
	if stats.TotalHits != 2 {
		t.Fatalf("total hits = %d, want 2", stats.TotalHits)
	}
	if math.Abs(stats.AverageForce-50) > tolerance {
		t.Fatalf("average force = %v, want 50", stats.AverageForce)
	}
}

func TestReplaceConfigSanitizes(t *testing.T) {
	eng, _ := newTestEngine()

	config := DefaultConfig()
	config.Resistance.StrongHitsReductionPct = 500
	eng.ReplaceConfig(config)

	if got := eng.Config().Resistance.StrongHitsReductionPct; got != 100 {
		t.Fatalf("reduction pct = %v, want sanitized 100", got)
	}
}
