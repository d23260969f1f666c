package storage

import (
	"context"

	"github.com/hyeok-dev/dicearena/internal/model"
)

// Storage defines the interface for data persistence. The match core only
// touches it through two narrow collaborators: the identity lookup and the
// write-once result sink. Live match state never goes through here.
type Storage interface {
	// Player identity operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Result sink operations. SaveMatchResult is write-once per room:
	// saving a result for a room that already has one is a no-op.
	SaveMatchResult(ctx context.Context, result *model.MatchResult) error
	GetMatchResult(ctx context.Context, roomID model.RoomID) (*model.MatchResult, error)
}
