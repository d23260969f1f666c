package identity

import (
	"context"

	"github.com/hyeok-dev/dicearena/internal/model"
	"github.com/hyeok-dev/dicearena/internal/storage"
)

// Service is the narrow stand-in for the external auth collaborator: it
// resolves a player id to a display identity and records the identity seen
// on the wire. It performs no authentication of its own.
type Service struct {
	storage storage.Storage
}

// New creates a new identity service
func New(store storage.Storage) *Service {
	return &Service{storage: store}
}

// Upsert records the identity a connection presented
func (s *Service) Upsert(ctx context.Context, player *model.Player) error {
	return s.storage.SavePlayer(ctx, player)
}

// Lookup resolves a player id to its recorded identity, or
// model.ErrPlayerNotFound
func (s *Service) Lookup(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}
