package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mwiater/steam-mcp/internal/appconfig"
	"github.com/mwiater/steam-mcp/internal/steam"
)

const (
	testSteamID = "76561197960287930"
	testKey     = "0123456789ABCDEF0123456789ABCDEF"

	friendListPath      = "/ISteamUser/GetFriendList/v0001/"
	playerSummariesPath = "/ISteamUser/GetPlayerSummaries/v0002/"
	ownedGamesPath      = "/IPlayerService/GetOwnedGames/v0001/"
)

// fakeSteam serves canned bodies per API path and counts requests.
type fakeSteam struct {
	routes map[string]http.HandlerFunc
	hits   atomic.Int32
}

func newFakeSteam(t *testing.T, routes map[string]http.HandlerFunc) (*Service, *fakeSteam) {
	t.Helper()
	fake := &fakeSteam{routes: routes}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fake.hits.Add(1)
		h, ok := fake.routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(server.Close)

	cfg := appconfig.Config{SteamID: testSteamID, SteamKey: testKey, SteamBaseURL: server.URL}
	return NewService(cfg, steam.WithHTTPClient(server.Client())), fake
}

func body(s string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(s))
	}
}

func status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}
}

// testContext mirrors testing.T.Context for toolchains that predate it: the
// returned context is canceled when the test's cleanup runs.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
