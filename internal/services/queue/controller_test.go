package queue

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hyeok-dev/dicearena/internal/model"
)

type ControllerSuite struct {
	suite.Suite
	controller *Controller
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.controller = NewController()
}

func player(id string) model.Player {
	return model.Player{ID: model.PlayerID(id), Nickname: "nick-" + id}
}

func (s *ControllerSuite) TestEnqueueAddsPlayer() {
	s.controller.Enqueue(player("a"))

	s.True(s.controller.IsWaiting("a"))
	s.Equal(1, s.controller.Len())
}

func (s *ControllerSuite) TestEnqueueIsIdempotentOnPlayerID() {
	s.controller.Enqueue(player("a"))
	s.controller.Enqueue(player("a"))

	s.Equal(1, s.controller.Len())
}

func (s *ControllerSuite) TestTryFormReturnsNilWhenQueueTooShort() {
	s.controller.Enqueue(player("a"))
	s.controller.Enqueue(player("b"))
	s.controller.Enqueue(player("c"))

	s.Nil(s.controller.TryForm(4))
	s.Equal(3, s.controller.Len())
}

func (s *ControllerSuite) TestTryFormTakesEarliestArrivalsInOrder() {
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		s.controller.Enqueue(player(id))
	}

	formed := s.controller.TryForm(4)
	s.Require().Len(formed, 4)
	s.Equal(model.PlayerID("a"), formed[0].ID)
	s.Equal(model.PlayerID("b"), formed[1].ID)
	s.Equal(model.PlayerID("c"), formed[2].ID)
	s.Equal(model.PlayerID("d"), formed[3].ID)

	// The fifth arrival stays queued alone
	s.Equal(1, s.controller.Len())
	s.True(s.controller.IsWaiting("e"))
}

func (s *ControllerSuite) TestTryFormTwoPlayerMode() {
	s.controller.Enqueue(player("a"))
	s.controller.Enqueue(player("b"))

	formed := s.controller.TryForm(2)
	s.Require().Len(formed, 2)
	s.Equal(0, s.controller.Len())
}

func (s *ControllerSuite) TestDequeueRemovesWaitingPlayer() {
	s.controller.Enqueue(player("a"))
	s.controller.Enqueue(player("b"))

	s.True(s.controller.Dequeue("a"))
	s.False(s.controller.IsWaiting("a"))
	s.Equal(1, s.controller.Len())
}

func (s *ControllerSuite) TestDequeueUnknownPlayerReturnsFalse() {
	s.False(s.controller.Dequeue("ghost"))
}

func (s *ControllerSuite) TestDequeuePreservesOrderOfRemaining() {
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		s.controller.Enqueue(player(id))
	}

	s.True(s.controller.Dequeue("b"))

	formed := s.controller.TryForm(4)
	s.Require().Len(formed, 4)
	s.Equal(model.PlayerID("a"), formed[0].ID)
	s.Equal(model.PlayerID("c"), formed[1].ID)
	s.Equal(model.PlayerID("d"), formed[2].ID)
	s.Equal(model.PlayerID("e"), formed[3].ID)
}
