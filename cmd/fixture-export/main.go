package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/engine"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/journal"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/replay"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to recognition.db")
	sessionID := flag.String("session", "", "session ID to export (default: most recent)")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/recognition.db --out path/to/fixture.json [--session id]")
		os.Exit(2)
	}

	if err := run(*dbPath, *sessionID, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region extract

func run(dbPath, sessionID, outPath string) error {
	store, err := journal.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	if sessionID == "" {
		sessions, err := store.Sessions(1)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(sessions) == 0 {
			return fmt.Errorf("no sessions in %s", dbPath)
		}
		sessionID = sessions[0].SessionID
	}

	info, err := store.Session(sessionID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	entries, err := store.Entries(sessionID)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	fixture, err := buildFixture(info, entries)
	if err != nil {
		return err
	}
	if len(fixture.Steps) == 0 {
		return fmt.Errorf("session %s has no hit or tick entries", sessionID)
	}

	if err := replay.WriteFixture(outPath, fixture); err != nil {
		return err
	}
	fmt.Printf("Wrote fixture to %s (%d steps, %d expectations)\n",
		outPath, len(fixture.Steps), len(fixture.Expected))
	return nil
}

// buildFixture converts journaled hit and tick entries into replayable steps,
// carrying the recorded progress and state as expectations.
func buildFixture(info journal.SessionInfo, entries []journal.Entry) (*replay.Fixture, error) {
	config := replay.FixtureConfigFrom(engine.DefaultConfig())
	if info.ConfigJSON != "" {
		if err := json.Unmarshal([]byte(info.ConfigJSON), &config); err != nil {
			return nil, fmt.Errorf("parse session config: %w", err)
		}
	}

	fixture := &replay.Fixture{
		Description: fmt.Sprintf("Session export: %s (%s)", info.Label, info.SessionID),
		Config:      config,
	}

	for _, e := range entries {
		switch e.Kind {
		case journal.KindHit:
			var p journal.HitPayload
			if err := json.Unmarshal([]byte(e.PayloadJSON), &p); err != nil {
				return nil, fmt.Errorf("hit entry seq %d: %w", e.Seq, err)
			}
			progress := p.Progress
			fixture.Steps = append(fixture.Steps, replay.FixtureStep{
				Kind:      string(replay.StepHit),
				Force:     p.Force,
				Timestamp: p.Timestamp,
				Origin:    p.Origin,
			})
			fixture.Expected = append(fixture.Expected, replay.FixtureExpectation{
				Step:     len(fixture.Steps) - 1,
				State:    p.State,
				Progress: &progress,
			})
		case journal.KindTick:
			var p journal.TickPayload
			if err := json.Unmarshal([]byte(e.PayloadJSON), &p); err != nil {
				return nil, fmt.Errorf("tick entry seq %d: %w", e.Seq, err)
			}
			progress := p.Progress
			fixture.Steps = append(fixture.Steps, replay.FixtureStep{
				Kind:  string(replay.StepTick),
				Delta: p.Delta,
			})
			fixture.Expected = append(fixture.Expected, replay.FixtureExpectation{
				Step:     len(fixture.Steps) - 1,
				State:    p.State,
				Progress: &progress,
			})
		}
	}

	return fixture, nil
}

// #endregion extract
