package web

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"protocol-zero/internal/oracle"
	"protocol-zero/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.Store) {
	t.Helper()
	store, err := storage.Open("", filepath.Join(t.TempDir(), "web_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.EnsureSchema(context.Background()))

	// AI provider nil: summon responses use canned roasts, no network.
	return New(store, oracle.NewWithSource(rand.NewSource(1)), nil, 10), store
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	parsed := map[string]json.RawMessage{}
	if strings.Contains(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	}
	return rec, parsed
}

func TestRootStatus(t *testing.T) {
	srv, _ := newTestServer(t)
	rec, parsed := doJSON(t, srv.Router(), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"Protocol Zero API is Online"`, string(parsed["status"]))
}

func TestStatsCountsEvents(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.AppendEvent(ctx, "A", "Ann", "verdict"))
	}

	rec, parsed := doJSON(t, srv.Router(), http.MethodGet, "/stats", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", string(parsed["total_punishments_served"]))
}

func TestHistoryCapsAtFive(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		require.NoError(t, store.AppendEvent(ctx, "A", "Ann", "verdict"))
	}

	rec, parsed := doJSON(t, srv.Router(), http.MethodGet, "/history", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var items []historyItem
	require.NoError(t, json.Unmarshal(parsed["recent_punishments"], &items))
	assert.Len(t, items, 5)
}

func TestLeaderboardOrderingAndCap(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()

	seed := []struct {
		id, name string
		xp       int
	}{
		{"a", "Ann", 250}, {"b", "Bob", 120}, {"c", "Cat", 180},
		{"d", "Dee", 40}, {"e", "Eve", 90}, {"f", "Fay", 10},
	}
	for _, s := range seed {
		_, err := store.RegisterSuccess(ctx, s.id, s.name, s.xp, 0)
		require.NoError(t, err)
	}

	rec, parsed := doJSON(t, srv.Router(), http.MethodGet, "/leaderboard", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var items []leaderboardItem
	require.NoError(t, json.Unmarshal(parsed["leaderboard"], &items))
	require.Len(t, items, 5)
	assert.Equal(t, "Ann", items[0].Username)
	assert.Equal(t, "Cat", items[1].Username)
	assert.Equal(t, "Bob", items[2].Username)
}

func TestSummonRecordsEventAndGrantsPityXP(t *testing.T) {
	srv, store := newTestServer(t)

	rec, parsed := doJSON(t, srv.Router(), http.MethodPost, "/summon", `{"name":"Ann"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var verdict, roast string
	require.NoError(t, json.Unmarshal(parsed["verdict"], &verdict))
	require.NoError(t, json.Unmarshal(parsed["roast"], &roast))
	assert.True(t, strings.HasPrefix(verdict, "["))
	assert.NotEmpty(t, roast)

	ctx := context.Background()
	n, err := store.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stats, err := store.SubjectStats(ctx, "web:ann")
	require.NoError(t, err)
	assert.Equal(t, storage.SubjectStats{Level: 1, XP: 10, Streak: 0}, stats)
}

func TestSummonAnonymous(t *testing.T) {
	srv, store := newTestServer(t)

	rec, _ := doJSON(t, srv.Router(), http.MethodPost, "/summon", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	events, err := store.RecentEvents(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Anonymous", events[0].DisplayName)
	assert.True(t, strings.HasPrefix(events[0].SubjectID, "web:"))
}

func TestDashboardRenders(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, store.AppendEvent(ctx, "A", "Ann", "20 Push-ups. Now."))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "PROTOCOL ZERO")
	assert.Contains(t, body, "20 Push-ups. Now.")
	assert.Contains(t, body, "hourChart")

	// 1 event, so the counter renders as 1
	assert.Contains(t, body, `<div class="counter">1</div>`)
}

func TestSummonVerdictIsWellFormed(t *testing.T) {
	srv, _ := newTestServer(t)

	for i := 0; i < 10; i++ {
		rec, parsed := doJSON(t, srv.Router(), http.MethodPost, "/summon", `{"name":"Bob"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		var verdict string
		require.NoError(t, json.Unmarshal(parsed["verdict"], &verdict))
		ok := strings.HasPrefix(verdict, "[MILD] ") ||
			strings.HasPrefix(verdict, "[STANDARD] ") ||
			strings.HasPrefix(verdict, "[BRUTAL] ")
		assert.True(t, ok, "unexpected verdict %q", verdict)
	}
}
