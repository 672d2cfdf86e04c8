package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/audit"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/engine"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/journal"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/replay"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to recognition.db (journal mode)")
	sessionID := flag.String("session", "", "session ID to replay (journal mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	tolerance := flag.Float64("tolerance", 1e-6, "progress comparison tolerance")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/recognition.db --session <id>")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath, *tolerance)
	} else {
		exitCode = runJournalMode(*dbPath, *sessionID, *tolerance)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string, tolerance float64) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	steps := make([]replay.Step, len(f.Steps))
	for i := range f.Steps {
		steps[i] = f.Steps[i].ToStep()
	}

	results := replay.Run(f.Config.ToConfig(), steps)
	return report(results, f.Expected, tolerance)
}

// #endregion fixture-mode

// #region journal-mode

func runJournalMode(dbPath, sessionID string, tolerance float64) int {
	store, err := journal.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open journal: %v\n", err)
		return 2
	}
	defer store.Close()

	if sessionID == "" {
		// Default to the most recent session.
		sessions, err := store.Sessions(1)
		if err != nil || len(sessions) == 0 {
			fmt.Fprintln(os.Stderr, "no sessions found; pass --session")
			return 2
		}
		sessionID = sessions[0].SessionID
	}

	info, err := store.Session(sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load session %s: %v\n", sessionID, err)
		return 2
	}
	entries, err := store.Entries(sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load entries: %v\n", err)
		return 2
	}

	config := engine.DefaultConfig()
	if info.ConfigJSON != "" {
		var fc replay.FixtureConfig
		if err := json.Unmarshal([]byte(info.ConfigJSON), &fc); err != nil {
			fmt.Fprintf(os.Stderr, "parse session config: %v\n", err)
			return 2
		}
		config = fc.ToConfig()
	}

	steps, expected, err := stepsFromEntries(entries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode entries: %v\n", err)
		return 2
	}
	if len(steps) == 0 {
		fmt.Fprintln(os.Stderr, "session has no hit or tick entries")
		return 2
	}

	results := replay.Run(config, steps)
	return report(results, expected, tolerance)
}

// stepsFromEntries rebuilds the input steps and per-step expectations from
// journaled hit and tick entries. Rejected hits are replayed too; they must
// stay rejected.
func stepsFromEntries(entries []journal.Entry) ([]replay.Step, []replay.FixtureExpectation, error) {
	var steps []replay.Step
	var expected []replay.FixtureExpectation

	for _, e := range entries {
		switch e.Kind {
		case journal.KindHit:
			var p journal.HitPayload
			if err := json.Unmarshal([]byte(e.PayloadJSON), &p); err != nil {
				return nil, nil, fmt.Errorf("hit entry seq %d: %w", e.Seq, err)
			}
			progress := p.Progress
			steps = append(steps, replay.Step{
				Kind:      replay.StepHit,
				Force:     p.Force,
				Timestamp: p.Timestamp,
				Origin:    p.Origin,
			})
			expected = append(expected, replay.FixtureExpectation{
				Step:     len(steps) - 1,
				State:    p.State,
				Progress: &progress,
			})
		case journal.KindTick:
			var p journal.TickPayload
			if err := json.Unmarshal([]byte(e.PayloadJSON), &p); err != nil {
				return nil, nil, fmt.Errorf("tick entry seq %d: %w", e.Seq, err)
			}
			progress := p.Progress
			steps = append(steps, replay.Step{Kind: replay.StepTick, Delta: p.Delta})
			expected = append(expected, replay.FixtureExpectation{
				Step:     len(steps) - 1,
				State:    p.State,
				Progress: &progress,
			})
		}
	}
	return steps, expected, nil
}

// #endregion journal-mode

// #region output

// report prints the per-step comparison table, runs the invariant audit, and
// returns the process exit code.
func report(results []replay.StepResult, expected []replay.FixtureExpectation, tolerance float64) int {
	mismatches := replay.Compare(results, expected, tolerance)
	byStep := make(map[int][]replay.Mismatch)
	for _, m := range mismatches {
		byStep[m.Step] = append(byStep[m.Step], m)
	}

	fmt.Printf("%-6s| %-6s| %-10s| %-12s| %s\n", "Step", "Kind", "Progress", "State", "Match")
	fmt.Printf("%-6s+%-7s+%-11s+%-13s+%s\n", "------", "-------", "-----------", "-------------", "------")
	for _, r := range results {
		match := "OK"
		if len(byStep[r.Index]) > 0 {
			match = "DIFF"
		}
		fmt.Printf("%-6d| %-6s| %-10.2f| %-12s| %s\n", r.Index, r.Kind, r.Progress, r.State, match)
	}
	for _, m := range mismatches {
		fmt.Printf("  step %d: %s: expected %s, got %s\n", m.Step, m.Field, m.Want, m.Got)
	}

	summary := replay.Summarize(results)
	fmt.Printf("\nSummary: %d steps, %d hits (%d accepted), %d ticks, %d transitions, %d achievements, %d resets\n",
		summary.Steps, summary.Hits, summary.AcceptedHits, summary.Ticks,
		summary.Transitions, summary.Achievements, summary.Resets)
	fmt.Printf("Final: progress=%.2f state=%s\n", summary.FinalProgress, summary.FinalState)

	auditResult := audit.NewHarness(audit.DefaultConfig()).Run(results)
	fmt.Printf("Audit: %s\n", auditResult.Reason)

	if len(mismatches) > 0 || !auditResult.Passed {
		return 1
	}
	return 0
}

// #endregion output
