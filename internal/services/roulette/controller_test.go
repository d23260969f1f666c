package roulette

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/hyeok-dev/dicearena/internal/dependencies/mocks"
	"github.com/hyeok-dev/dicearena/internal/model"
	"github.com/hyeok-dev/dicearena/internal/services/match"
	"github.com/hyeok-dev/dicearena/internal/storage/memory"
	"github.com/hyeok-dev/dicearena/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	registry   *match.Registry
	controller *Controller
	ctx        context.Context
	roomID     model.RoomID
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.registry = match.NewRegistry(match.DefaultConfig(), s.storage, s.clock, s.random, testutil.NopLogger())
	s.controller = NewController(s.registry, s.random, testutil.NopLogger())
	s.ctx = context.Background()

	s.random.QueueString("ROOMCODE0001")
	record := model.DiceRecord{"456Dice": 2, "WildDice": 2}
	m, err := s.registry.CreateMatch(s.ctx, []model.Player{
		{ID: "p1", Nickname: "Alice", GoodDiceRecord: record},
		{ID: "p2", Nickname: "Bob", GoodDiceRecord: record},
		{ID: "p3", Nickname: "Carol", GoodDiceRecord: record},
		{ID: "p4", Nickname: "Dave", GoodDiceRecord: record},
	})
	s.Require().NoError(err)
	s.roomID = m.RoomID
}

// setMainPool overwrites the room's main pool with a known sequence
func (s *ControllerSuite) setMainPool(pool ...model.DieKind) {
	err := s.registry.Locked(s.roomID, func(m *model.Match) error {
		m.MainPool = pool
		return nil
	})
	s.Require().NoError(err)
}

// liveTokens returns main pool size + all draw pool sizes
func (s *ControllerSuite) liveTokens() int {
	m, err := s.registry.GetByRoom(s.roomID)
	s.Require().NoError(err)
	return m.PoolSize()
}

// goodRemaining sums the room's good dice counts
func (s *ControllerSuite) goodRemaining() int {
	m, err := s.registry.GetByRoom(s.roomID)
	s.Require().NoError(err)
	total := 0
	for _, n := range m.GoodDiceCounts {
		total += n
	}
	return total
}

func (s *ControllerSuite) TestDrawDealsSixAndRemovesThemFromThePool() {
	dealt, err := s.controller.Draw(s.ctx, s.roomID, "p1")
	s.Require().NoError(err)

	s.Len(dealt, 6)
	m, _ := s.registry.GetByRoom(s.roomID)
	s.Len(m.MainPool, 34)
	s.Equal(dealt, m.DrawPools[0])
	s.Equal(40, s.liveTokens())
}

func (s *ControllerSuite) TestDrawIsIdempotentBeforeSelect() {
	first, err := s.controller.Draw(s.ctx, s.roomID, "p1")
	s.Require().NoError(err)
	second, err := s.controller.Draw(s.ctx, s.roomID, "p1")
	s.Require().NoError(err)

	s.Equal(first, second)
	m, _ := s.registry.GetByRoom(s.roomID)
	s.Len(m.MainPool, 34)
}

func (s *ControllerSuite) TestDrawFailsWhenPoolTooSmall() {
	s.setMainPool("1or6Dice", "OddDice", "123Dice", "456Dice", "EvenDice")

	_, err := s.controller.Draw(s.ctx, s.roomID, "p1")
	s.ErrorIs(err, model.ErrInsufficientPool)

	// Error path left the pool untouched
	m, _ := s.registry.GetByRoom(s.roomID)
	s.Len(m.MainPool, 5)
	s.Empty(m.DrawPools[0])
}

func (s *ControllerSuite) TestDrawUnknownRoomOrPlayer() {
	_, err := s.controller.Draw(s.ctx, "room_GHOST", "p1")
	s.ErrorIs(err, model.ErrMatchNotFound)

	_, err = s.controller.Draw(s.ctx, s.roomID, "ghost")
	s.ErrorIs(err, model.ErrPlayerNotInMatch)
}

func (s *ControllerSuite) TestConcurrentDrawsForDifferentPlayersDoNotOverlap() {
	players := []model.PlayerID{"p1", "p2", "p3", "p4"}
	results := make([][]model.DieKind, len(players))

	var wg sync.WaitGroup
	for i, id := range players {
		wg.Add(1)
		go func(i int, id model.PlayerID) {
			defer wg.Done()
			dealt, err := s.controller.Draw(s.ctx, s.roomID, id)
			s.NoError(err)
			results[i] = dealt
		}(i, id)
	}
	wg.Wait()

	m, _ := s.registry.GetByRoom(s.roomID)
	s.Len(m.MainPool, 40-4*6)
	s.Equal(40, s.liveTokens())
	for i := range players {
		s.Len(results[i], 6)
	}
}

func (s *ControllerSuite) TestSelectGoodDieConsumesIt() {
	s.setMainPool("WildDice", "1or6Dice", "OddDice", "123Dice", "EvenDice", "ConstantDice",
		"456Dice", "456Dice")
	dealt, err := s.controller.Draw(s.ctx, s.roomID, "p1")
	s.Require().NoError(err)
	s.Require().Contains(dealt, model.DieKind("WildDice"))

	before := s.goodRemaining()
	result, err := s.controller.Select(s.ctx, s.roomID, "p1", "WildDice")
	s.Require().NoError(err)

	s.True(result.ConsumedGood)
	s.Equal(before-1, s.goodRemaining())
	s.Equal(7, result.GoodDiceCounts["WildDice"])

	m, _ := s.registry.GetByRoom(s.roomID)
	// 5 returned + the 2 never dealt; the consumed die is gone for good
	s.Len(m.MainPool, 7)
	s.Empty(m.DrawPools[0])
	s.NotContains(m.MainPool, model.DieKind("WildDice"))
}

func (s *ControllerSuite) TestSelectCommonDieReturnsAllSix() {
	s.setMainPool("WildDice", "1or6Dice", "OddDice", "123Dice", "EvenDice", "ConstantDice",
		"456Dice", "456Dice")
	_, err := s.controller.Draw(s.ctx, s.roomID, "p1")
	s.Require().NoError(err)

	before := s.goodRemaining()
	result, err := s.controller.Select(s.ctx, s.roomID, "p1", "OddDice")
	s.Require().NoError(err)

	s.False(result.ConsumedGood)
	s.Equal(before, s.goodRemaining())

	m, _ := s.registry.GetByRoom(s.roomID)
	s.Len(m.MainPool, 8)
	s.Empty(m.DrawPools[0])
}

func (s *ControllerSuite) TestSelectDieNotHeldLeavesStateUnchanged() {
	s.setMainPool("1or6Dice", "OddDice", "123Dice", "EvenDice", "ConstantDice", "1or6Dice",
		"456Dice")
	dealt, err := s.controller.Draw(s.ctx, s.roomID, "p1")
	s.Require().NoError(err)
	s.Require().NotContains(dealt, model.DieKind("456Dice"))

	_, err = s.controller.Select(s.ctx, s.roomID, "p1", "456Dice")
	s.ErrorIs(err, model.ErrDieNotHeld)

	m, _ := s.registry.GetByRoom(s.roomID)
	s.Equal(dealt, m.DrawPools[0])
	s.Len(m.MainPool, 1)
	s.Equal(7, s.liveTokens())
}

func (s *ControllerSuite) TestSelectWithoutDealIsAnError() {
	_, err := s.controller.Select(s.ctx, s.roomID, "p1", "456Dice")
	s.ErrorIs(err, model.ErrEmptyDrawPool)
}

func (s *ControllerSuite) TestSelectTwiceRequiresFreshDeal() {
	_, err := s.controller.Draw(s.ctx, s.roomID, "p1")
	s.Require().NoError(err)
	m, _ := s.registry.GetByRoom(s.roomID)
	first := m.DrawPools[0][0]

	_, err = s.controller.Select(s.ctx, s.roomID, "p1", first)
	s.Require().NoError(err)

	_, err = s.controller.Select(s.ctx, s.roomID, "p1", first)
	s.ErrorIs(err, model.ErrEmptyDrawPool)
}

func (s *ControllerSuite) TestConservationAcrossFullCycle() {
	initialGood := s.goodRemaining()
	s.Equal(16, initialGood)

	dealt, err := s.controller.Draw(s.ctx, s.roomID, "p1")
	s.Require().NoError(err)
	s.Equal(40, s.liveTokens())

	result, err := s.controller.Select(s.ctx, s.roomID, "p1", dealt[0])
	s.Require().NoError(err)

	consumed := 0
	if result.ConsumedGood {
		consumed = 1
	}
	s.Equal(40-consumed, s.liveTokens())
	s.Equal(initialGood-consumed, s.goodRemaining())
}
