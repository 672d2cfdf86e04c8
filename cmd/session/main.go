package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/engine"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/journal"
	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/replay"
)

// #region main
func main() {
	dbPath := envOr("RECOGNITION_DB", "recognition.db")
	label := envOr("SESSION_LABEL", "interactive")

	store, err := journal.NewStore(dbPath)
	if err != nil {
		log.Fatalf("failed to open journal: %v", err)
	}
	defer store.Close()

	config := engine.DefaultConfig()
	configJSON, _ := json.Marshal(replay.FixtureConfigFrom(config))

	recorder, err := journal.NewRecorder(store, label, string(configJSON))
	if err != nil {
		log.Fatalf("failed to create session: %v", err)
	}

	eng := engine.New(config)
	eng.AddListener(recorder)

	fmt.Println("Recognition engine session ready.")
	fmt.Printf("  DB: %s | Session: %s\n", dbPath, recorder.SessionID())
	fmt.Println("Commands: hit <force> [timestamp] [origin] | tick <dt> | set <progress> | reset | stats | quit")

	scanner := bufio.NewScanner(os.Stdin)
	clock := 0.0

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd := fields[0]
		if cmd == "quit" || cmd == "exit" {
			break
		}

		switch cmd {
		case "hit":
			if len(fields) < 2 {
				fmt.Println("usage: hit <force> [timestamp] [origin]")
				continue
			}
			force, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				fmt.Printf("bad force: %v\n", err)
				continue
			}
			timestamp := clock
			if len(fields) >= 3 {
				if ts, err := strconv.ParseFloat(fields[2], 64); err == nil {
					timestamp = ts
				} else {
					fmt.Printf("bad timestamp: %v\n", err)
					continue
				}
			}
			origin := ""
			if len(fields) >= 4 {
				origin = fields[3]
			}

			outcome := eng.ProcessHit(force, timestamp, origin)
			recorder.RecordHit(force, timestamp, origin, outcome, eng.Progress())
			if outcome == nil {
				fmt.Println("rejected")
				continue
			}
			if timestamp > clock {
				clock = timestamp
			}
			fmt.Printf("effectiveness=%.3f delta=%.2f progress=%.2f state=%s\n",
				outcome.Effectiveness, outcome.Delta, outcome.Progress, outcome.State)
			if outcome.AutoReset {
				fmt.Println("hit limit reached, engine reset")
			}

		case "tick":
			if len(fields) < 2 {
				fmt.Println("usage: tick <dt>")
				continue
			}
			dt, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				fmt.Printf("bad dt: %v\n", err)
				continue
			}
			eng.Tick(dt)
			recorder.RecordTick(dt, eng.Progress(), eng.State())
			if dt > 0 {
				clock += dt
			}
			fmt.Printf("progress=%.2f state=%s\n", eng.Progress(), eng.State())

		case "set":
			if len(fields) < 2 {
				fmt.Println("usage: set <progress>")
				continue
			}
			value, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				fmt.Printf("bad progress: %v\n", err)
				continue
			}
			eng.SetProgress(value)
			fmt.Printf("progress=%.2f state=%s\n", eng.Progress(), eng.State())

		case "reset":
			eng.Reset("manual", config.ResetProgressValue)
			fmt.Printf("progress=%.2f state=%s generation=%s\n", eng.Progress(), eng.State(), eng.Generation())

		case "stats":
			stats := eng.Statistics()
			fmt.Printf("state=%s progress=%.2f hits=%d avg_force=%.2f since_last=%.2f perfect=%d failures=%d\n",
				eng.State(), eng.Progress(), stats.TotalHits, stats.AverageForce,
				stats.TimeSinceLastHit, stats.PerfectTimings, stats.ConsecutiveFailures)

		default:
			fmt.Printf("unknown command: %s\n", cmd)
		}
	}

	fmt.Printf("Session %s recorded.\n", recorder.SessionID())
}

// #endregion main

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
