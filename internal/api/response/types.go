package response

import (
	"time"

	"github.com/hyeok-dev/dicearena/internal/model"
)

// MatchPlayer represents one seat in a match in API responses
type MatchPlayer struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	DealtOut bool   `json:"dealt_out"`
}

// Match represents a live match snapshot
type Match struct {
	RoomID         string                `json:"room_id"`
	Status         string                `json:"status"`
	Players        []MatchPlayer         `json:"players"`
	PoolSize       int                   `json:"pool_size"`
	GoodDiceCounts map[model.DieKind]int `json:"good_dice_counts"`
	CreatedAt      time.Time             `json:"created_at"`
	LastActivity   time.Time             `json:"last_activity"`
}

// MatchFromModel converts a match snapshot to a response Match
func MatchFromModel(m *model.Match) Match {
	players := make([]MatchPlayer, len(m.Players))
	for i, p := range m.Players {
		players[i] = MatchPlayer{
			ID:       string(p.ID),
			Nickname: p.Nickname,
			DealtOut: len(m.DrawPools[i]) > 0,
		}
	}
	return Match{
		RoomID:         string(m.RoomID),
		Status:         string(m.Status),
		Players:        players,
		PoolSize:       m.PoolSize(),
		GoodDiceCounts: m.GoodDiceCounts,
		CreatedAt:      m.CreatedAt,
		LastActivity:   m.LastActivity,
	}
}

// ArchivedMatch represents a finished match pulled from the result sink
type ArchivedMatch struct {
	ID         string        `json:"id"`
	RoomID     string        `json:"room_id"`
	Status     string        `json:"status"`
	Players    []MatchPlayer `json:"players"`
	CreatedAt  time.Time     `json:"created_at"`
	FinishedAt time.Time     `json:"finished_at"`
}

// ArchivedMatchFromModel converts a stored match result
func ArchivedMatchFromModel(r *model.MatchResult) ArchivedMatch {
	players := make([]MatchPlayer, len(r.Players))
	for i, p := range r.Players {
		players[i] = MatchPlayer{ID: string(p.ID), Nickname: p.Nickname}
	}
	return ArchivedMatch{
		ID:         r.ID,
		RoomID:     string(r.RoomID),
		Status:     string(model.MatchStatusFinished),
		Players:    players,
		CreatedAt:  r.CreatedAt,
		FinishedAt: r.FinishedAt,
	}
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
