package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// HealthResult is the health check response
type HealthResult struct {
	Status string `json:"status"`
}

// StatusResult is the matchmaking status response
type StatusResult struct {
	Status string `json:"status"`
	RoomID string `json:"roomId,omitempty"`
}

// MatchResult is a live or archived match snapshot. Archived matches carry
// a finished_at stamp and no pool fields.
type MatchResult struct {
	RoomID         string         `json:"room_id"`
	Status         string         `json:"status"`
	Players        []MatchPlayer  `json:"players"`
	PoolSize       int            `json:"pool_size"`
	GoodDiceCounts map[string]int `json:"good_dice_counts"`
	CreatedAt      time.Time      `json:"created_at"`
	FinishedAt     *time.Time     `json:"finished_at,omitempty"`
}

// MatchPlayer is one seat in a match snapshot
type MatchPlayer struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	DealtOut bool   `json:"dealt_out"`
}

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

// PrintEvent outputs one received session event
func (o *Output) PrintEvent(event string, data json.RawMessage) {
	if o.format == "json" {
		line, _ := json.Marshal(map[string]any{
			"time":  time.Now().Format(time.RFC3339),
			"event": event,
			"data":  data,
		})
		fmt.Println(string(line))
		return
	}

	if len(data) > 0 && string(data) != "null" {
		fmt.Printf("[%s] %s %s\n", time.Now().Format("15:04:05"), event, string(data))
	} else {
		fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05"), event)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		fmt.Printf("Server status: %s\n", v.Status)
	case StatusResult:
		o.printStatus(v)
	case MatchResult:
		o.printMatch(v)
	default:
		o.printJSON(data)
	}
}

func (o *Output) printStatus(s StatusResult) {
	switch s.Status {
	case "waiting":
		fmt.Println("Waiting in the matchmaking queue")
	case "matched":
		fmt.Printf("Matched in room %s\n", s.RoomID)
	default:
		fmt.Println("Not queued and not in a match")
	}
}

func (o *Output) printMatch(m MatchResult) {
	fmt.Printf("Room:    %s\n", m.RoomID)
	fmt.Printf("Status:  %s\n", m.Status)
	fmt.Printf("Created: %s\n", m.CreatedAt.Format(time.RFC3339))
	if m.FinishedAt != nil {
		fmt.Printf("Finished: %s\n", m.FinishedAt.Format(time.RFC3339))
	}

	fmt.Println("Players:")
	for _, p := range m.Players {
		marker := ""
		if p.DealtOut {
			marker = " (hand dealt)"
		}
		fmt.Printf("  %s  %s%s\n", p.ID, p.Nickname, marker)
	}

	if m.Status == "active" {
		fmt.Printf("Pool size: %d\n", m.PoolSize)
		fmt.Println("Good dice remaining:")
		kinds := make([]string, 0, len(m.GoodDiceCounts))
		for kind := range m.GoodDiceCounts {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			fmt.Printf("  %-14s %d\n", kind, m.GoodDiceCounts[kind])
		}
	}
}
