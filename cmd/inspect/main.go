package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/philshamzin/Batman-Break-The-Silence/go-engine/internal/journal"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to recognition.db")
	last := flag.Int("last", 20, "show N most recent sessions")
	session := flag.String("session", "", "show single session detail")
	kind := flag.String("kind", "", "filter event timeline to one kind")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/recognition.db [--last N] [--session id] [--kind name] [--json]")
		os.Exit(2)
	}

	store, err := journal.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *session != "" {
		if err := runDetailMode(store, *session, *kind, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := runListMode(store, *last, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	SessionID  string `json:"session_id"`
	Label      string `json:"label"`
	EventCount int    `json:"event_count"`
	Hits       int    `json:"hits"`
	Achieved   int    `json:"achieved"`
	CreatedAt  string `json:"created_at"`
}

func runListMode(store *journal.Store, last int, jsonOut bool) error {
	sessions, err := store.Sessions(last)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "no sessions found")
		return nil
	}

	rows := make([]listRow, len(sessions))
	for i, s := range sessions {
		counts, err := kindCounts(store, s.SessionID)
		if err != nil {
			return err
		}
		rows[i] = listRow{
			SessionID:  s.SessionID,
			Label:      s.Label,
			EventCount: s.EventCount,
			Hits:       counts[journal.KindHit],
			Achieved:   counts[journal.KindAchieved],
			CreatedAt:  s.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-10s  %-16s  %7s  %5s  %9s  %s\n",
		"Session", "Label", "Events", "Hits", "Achieved", "Created")
	fmt.Printf("%-10s+-%-16s+-%7s+-%5s+-%9s+-%s\n",
		"----------", "----------------", "-------", "-----", "---------", "--------------------")
	for _, r := range rows {
		fmt.Printf("%-10s  %-16s  %7d  %5d  %9d  %s\n",
			shortID(r.SessionID), r.Label, r.EventCount, r.Hits, r.Achieved, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	SessionID  string         `json:"session_id"`
	Label      string         `json:"label"`
	CreatedAt  string         `json:"created_at"`
	EventCount int            `json:"event_count"`
	Kinds      map[string]int `json:"kinds"`
	Events     []eventRow     `json:"events"`
}

type eventRow struct {
	Seq     int    `json:"seq"`
	Kind    string `json:"kind"`
	Summary string `json:"summary,omitempty"`
}

func runDetailMode(store *journal.Store, sessionID, kindFilter string, jsonOut bool) error {
	info, err := store.Session(sessionID)
	if err != nil {
		return err
	}
	entries, err := store.Entries(sessionID)
	if err != nil {
		return err
	}

	out := detailOutput{
		SessionID:  info.SessionID,
		Label:      info.Label,
		CreatedAt:  info.CreatedAt.Format("2006-01-02T15:04:05Z"),
		EventCount: len(entries),
		Kinds:      make(map[string]int),
	}
	for _, e := range entries {
		out.Kinds[e.Kind]++
		if kindFilter != "" && e.Kind != kindFilter {
			continue
		}
		out.Events = append(out.Events, eventRow{
			Seq:     e.Seq,
			Kind:    e.Kind,
			Summary: summarizePayload(e),
		})
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Session: %s\n", out.SessionID)
	fmt.Printf("Label:   %s\n", out.Label)
	fmt.Printf("Created: %s\n", out.CreatedAt)
	fmt.Printf("Events:  %d\n", out.EventCount)

	fmt.Printf("\nEvent kinds:\n")
	for _, kind := range []string{
		journal.KindHit, journal.KindTick, journal.KindProgress,
		journal.KindStateChanged, journal.KindResistance, journal.KindTension,
		journal.KindAchieved, journal.KindReset,
	} {
		if n := out.Kinds[kind]; n > 0 {
			fmt.Printf("  %-14s %d\n", kind, n)
		}
	}

	fmt.Printf("\nTimeline:\n")
	for _, e := range out.Events {
		fmt.Printf("  %4d  %-14s %s\n", e.Seq, e.Kind, e.Summary)
	}
	return nil
}

// summarizePayload renders the interesting payload fields as one line.
func summarizePayload(e journal.Entry) string {
	switch e.Kind {
	case journal.KindHit:
		var p journal.HitPayload
		if json.Unmarshal([]byte(e.PayloadJSON), &p) != nil {
			return ""
		}
		if !p.Accepted {
			return fmt.Sprintf("force=%.1f rejected", p.Force)
		}
		return fmt.Sprintf("force=%.1f t=%.2f eff=%.3f progress=%.2f state=%s",
			p.Force, p.Timestamp, p.Effectiveness, p.Progress, p.State)
	case journal.KindTick:
		var p journal.TickPayload
		if json.Unmarshal([]byte(e.PayloadJSON), &p) != nil {
			return ""
		}
		return fmt.Sprintf("dt=%.2f progress=%.2f state=%s", p.Delta, p.Progress, p.State)
	case journal.KindStateChanged:
		var p journal.StateChangedPayload
		if json.Unmarshal([]byte(e.PayloadJSON), &p) != nil {
			return ""
		}
		return fmt.Sprintf("%s -> %s", p.Prev, p.Next)
	case journal.KindProgress:
		var p journal.ProgressPayload
		if json.Unmarshal([]byte(e.PayloadJSON), &p) != nil {
			return ""
		}
		return fmt.Sprintf("value=%.2f", p.Value)
	case journal.KindReset:
		var p journal.ResetPayload
		if json.Unmarshal([]byte(e.PayloadJSON), &p) != nil {
			return ""
		}
		return fmt.Sprintf("reason=%s", p.Reason)
	default:
		return ""
	}
}

// #endregion detail-mode

// #region helpers

func kindCounts(store *journal.Store, sessionID string) (map[string]int, error) {
	entries, err := store.Entries(sessionID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Kind]++
	}
	return counts, nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion helpers
