package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hyeok-dev/dicearena/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) joinRequest(id, nickname string) model.JoinQueuePayload {
	return model.JoinQueuePayload{
		PlayerID: model.PlayerID(id),
		Nickname: nickname,
		GoodDiceRecord: model.DiceRecord{
			"456Dice":  2,
			"WildDice": 2,
		},
	}
}

// Test: complete session flow from matchmaking to archived result
func (s *IntegrationSuite) TestCompleteSessionFlow() {
	// Setup: room code for the match that will form
	s.app.MockRandom.QueueString("ROOMCODE0001")

	// Step 1: three players queue up, no match yet
	for _, id := range []string{"p1", "p2", "p3"} {
		s.Require().NoError(s.app.Coordinator.JoinQueue(s.ctx, s.joinRequest(id, "Player "+id)))
	}
	s.Equal(3, s.app.QueueController.Len())
	s.Equal("waiting", s.app.Coordinator.Status(s.ctx, "p1").Status)

	// Step 2: fourth player completes the group
	s.Require().NoError(s.app.Coordinator.JoinQueue(s.ctx, s.joinRequest("p4", "Player p4")))
	s.Equal(0, s.app.QueueController.Len())

	status := s.app.Coordinator.Status(s.ctx, "p1")
	s.Equal("matched", status.Status)
	s.Equal(model.RoomID("room_ROOMCODE0001"), status.RoomID)

	// Step 3: the seeded pool holds 4 good dice per player, 4 commons
	// per player, and 2 bads per player
	m, err := s.app.MatchRegistry.GetByRoom(status.RoomID)
	s.Require().NoError(err)
	s.Equal(40, m.PoolSize())
	s.Equal(8, m.GoodDiceCounts["456Dice"])
	s.Equal(8, m.GoodDiceCounts["WildDice"])

	// Step 4: first player draws a hand
	reply := s.app.Coordinator.GetDice(s.ctx, status.RoomID, "p1")
	s.Empty(reply.Error)
	s.Len(reply.SelectedPool, 6)

	m, err = s.app.MatchRegistry.GetByRoom(status.RoomID)
	s.Require().NoError(err)
	s.Equal(34, m.PoolSize())

	// Step 5: selecting a good die consumes it; the rest of the hand
	// returns to the pool
	s.Require().Contains(reply.SelectedPool, model.DieKind("456Dice"))
	err = s.app.Coordinator.SelectDice(s.ctx, model.SelectDicePayload{
		RoomID:      status.RoomID,
		PlayerID:    "p1",
		SelectedDie: "456Dice",
	})
	s.Require().NoError(err)

	m, err = s.app.MatchRegistry.GetByRoom(status.RoomID)
	s.Require().NoError(err)
	s.Equal(39, m.PoolSize())
	s.Equal(7, m.GoodDiceCounts["456Dice"])

	// Step 6: with no live connections, a disconnect dissolves the match
	// and archives the result
	s.app.Coordinator.PlayerDisconnected(s.ctx, "p1")

	_, err = s.app.MatchRegistry.GetByRoom(status.RoomID)
	s.ErrorIs(err, model.ErrMatchNotFound)
	s.Equal("idle", s.app.Coordinator.Status(s.ctx, "p2").Status)

	result, err := s.app.Storage.GetMatchResult(s.ctx, status.RoomID)
	s.Require().NoError(err)
	s.Equal(status.RoomID, result.RoomID)
	s.Len(result.Players, 4)
	s.NotEmpty(result.ID)
}

// Test: players registered through matchmaking are persisted
func (s *IntegrationSuite) TestIdentityPersistedOnJoin() {
	s.Require().NoError(s.app.Coordinator.JoinQueue(s.ctx, s.joinRequest("solo", "Solo")))

	p, err := s.app.Storage.GetPlayer(s.ctx, "solo")
	s.Require().NoError(err)
	s.Equal("Solo", p.Nickname)
	s.Equal(s.app.MockClock.Now(), p.JoinedAt)
}

// Test: leaving the queue before a match forms
func (s *IntegrationSuite) TestLeaveQueueBeforeMatch() {
	s.Require().NoError(s.app.Coordinator.JoinQueue(s.ctx, s.joinRequest("p1", "One")))
	s.True(s.app.Coordinator.LeaveQueue(s.ctx, "p1"))
	s.Equal("idle", s.app.Coordinator.Status(s.ctx, "p1").Status)
	s.False(s.app.Coordinator.LeaveQueue(s.ctx, "p1"))
}
