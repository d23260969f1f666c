package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyeok-dev/dicearena/internal/api"
	"github.com/hyeok-dev/dicearena/internal/api/apierr"
	"github.com/hyeok-dev/dicearena/internal/api/response"
	"github.com/hyeok-dev/dicearena/internal/factory"
	"github.com/hyeok-dev/dicearena/internal/model"
	"github.com/hyeok-dev/dicearena/internal/testutil"
)

// testServer bundles the router with the app behind it
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:      testutil.NopLogger(),
		Coordinator: app.Coordinator,
		Registry:    app.MatchRegistry,
		Storage:     app.Storage,
		WSHandler:   app.WSHandler,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

// fillMatch queues four players so a match forms
func (ts *testServer) fillMatch(t *testing.T) model.RoomID {
	t.Helper()

	ts.app.MockRandom.QueueString("ROOMCODE0001")
	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		err := ts.app.Coordinator.JoinQueue(context.Background(), model.JoinQueuePayload{
			PlayerID:       model.PlayerID(id),
			Nickname:       "Player " + id,
			GoodDiceRecord: model.DiceRecord{"456Dice": 2, "WildDice": 2},
		})
		require.NoError(t, err)
	}
	return "room_ROOMCODE0001"
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get("/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	health := decode[response.Health](t, rec)
	assert.Equal(t, "ok", health.Status)
}

func TestMatchmakingStatus(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get("/api/matchmaking/status/nobody")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "idle", decode[map[string]string](t, rec)["status"])

	roomID := ts.fillMatch(t)

	rec = ts.get("/api/matchmaking/status/p1")
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[map[string]string](t, rec)
	assert.Equal(t, "matched", status["status"])
	assert.Equal(t, string(roomID), status["roomId"])
}

func TestGetMatch(t *testing.T) {
	ts := newTestServer(t)
	roomID := ts.fillMatch(t)

	rec := ts.get("/api/matches/" + string(roomID))
	require.Equal(t, http.StatusOK, rec.Code)

	m := decode[response.Match](t, rec)
	assert.Equal(t, string(roomID), m.RoomID)
	assert.Equal(t, "active", m.Status)
	assert.Len(t, m.Players, 4)
	assert.Equal(t, 40, m.PoolSize)
	assert.Equal(t, 8, m.GoodDiceCounts["456Dice"])
}

func TestGetMatchNotFound(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get("/api/matches/room_MISSING")
	require.Equal(t, http.StatusNotFound, rec.Code)

	errResp := decode[apierr.ErrorResponse](t, rec)
	assert.Equal(t, apierr.CodeResultNotFound, errResp.Error.Code)
}

func TestGetMatchFallsBackToArchivedResult(t *testing.T) {
	ts := newTestServer(t)
	roomID := ts.fillMatch(t)

	// Dissolving the match moves it from the registry to the result sink
	require.NoError(t, ts.app.MatchRegistry.Dissolve(context.Background(), roomID))

	rec := ts.get("/api/matches/" + string(roomID))
	require.Equal(t, http.StatusOK, rec.Code)

	archived := decode[response.ArchivedMatch](t, rec)
	assert.Equal(t, string(roomID), archived.RoomID)
	assert.Equal(t, "finished", archived.Status)
	assert.Len(t, archived.Players, 4)
}
