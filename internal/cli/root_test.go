package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwiater/steam-mcp/internal/appconfig"
	"github.com/mwiater/steam-mcp/internal/logging"
	"github.com/mwiater/steam-mcp/internal/steam"
)

const (
	testSteamID = "76561197960287930"
	testKey     = "0123456789ABCDEF0123456789ABCDEF"
)

func resetFlags() {
	reset := func(flag *pflag.Flag) {
		_ = flag.Value.Set(flag.DefValue)
		flag.Changed = false
	}
	var walk func(cmd *cobra.Command)
	walk = func(cmd *cobra.Command) {
		cmd.PersistentFlags().VisitAll(reset)
		cmd.LocalNonPersistentFlags().VisitAll(reset)
		for _, sub := range cmd.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content = strings.Replace(content, "{", fmt.Sprintf(`{"logFile":%q,`, filepath.Join(dir, "steam-mcp.log")), 1)
	content = strings.Replace(content, ",}", "}", 1)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MY_STEAM_ID", "")
	t.Setenv("MY_STEAM_KEY", "")
	t.Setenv("STEAM_MCP_STEAMID", "")
	t.Setenv("STEAM_MCP_STEAMKEY", "")

	resetFlags()
	currentConfig = nil
	t.Cleanup(func() {
		resetFlags()
		_ = logging.Close()
	})

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestServeAnswersToolsList(t *testing.T) {
	path := writeTempConfig(t, fmt.Sprintf(`{"steamId":%q,"steamKey":%q}`, testSteamID, testKey))

	out, err := runCLI(t, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`+"\n", "serve", "-c", path)
	require.NoError(t, err)
	for _, name := range []string{"list_steam_friends", "list_steam_games", "get_my_steam_id"} {
		assert.Contains(t, out, name)
	}
}

func TestServeFailsWithoutCredentials(t *testing.T) {
	path := writeTempConfig(t, `{}`)

	out, err := runCLI(t, "", "serve", "-c", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, appconfig.ErrMissingSteamID)
	assert.ErrorIs(t, err, appconfig.ErrMissingSteamKey)
	assert.Empty(t, out)
}

func TestServeFailsWithMalformedKey(t *testing.T) {
	path := writeTempConfig(t, fmt.Sprintf(`{"steamId":%q,"steamKey":"nope"}`, testSteamID))

	_, err := runCLI(t, "", "serve", "-c", path)
	assert.ErrorIs(t, err, steam.ErrInvalidKey)
}

func TestServeFailsWithBadBaseURL(t *testing.T) {
	path := writeTempConfig(t, fmt.Sprintf(`{"steamId":%q,"steamKey":%q,"steamBaseUrl":"http://bad host"}`, testSteamID, testKey))

	_, err := runCLI(t, "", "serve", "-c", path)
	assert.ErrorIs(t, err, steam.ErrInvalidBaseURL)
	assert.NotContains(t, err.Error(), testKey)
}

func TestExplicitMissingConfigFails(t *testing.T) {
	_, err := runCLI(t, "", "show", "config", "-c", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestCallMySteamID(t *testing.T) {
	path := writeTempConfig(t, fmt.Sprintf(`{"steamId":%q,"steamKey":%q}`, testSteamID, testKey))

	out, err := runCLI(t, "", "call", "get_my_steam_id", "-c", path)
	require.NoError(t, err)
	assert.Equal(t, testSteamID+"\n", out)
}

func TestCallGamesAgainstFakeSteam(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/IPlayerService/GetOwnedGames/v0001/", r.URL.Path)
		assert.Equal(t, "111", r.URL.Query().Get("steamid"))
		_, _ = w.Write([]byte(`{"response":{"games":[{"appid":1,"name":"Dota 2","playtime_forever":9000}]}}`))
	}))
	defer api.Close()

	path := writeTempConfig(t, fmt.Sprintf(`{"steamId":%q,"steamKey":%q,"steamBaseUrl":%q}`, testSteamID, testKey, api.URL))

	out, err := runCLI(t, "", "call", "list_steam_games", `{"steam_id":"111"}`, "-c", path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Dota 2","playtime_minutes":9000}]`, out)
}

func TestCallRejectsBadArguments(t *testing.T) {
	path := writeTempConfig(t, fmt.Sprintf(`{"steamId":%q,"steamKey":%q}`, testSteamID, testKey))

	_, err := runCLI(t, "", "call", "list_steam_games", `not json`, "-c", path)
	assert.ErrorContains(t, err, "arguments must be a JSON object")

	_, err = runCLI(t, "", "call", "list_steam_games", `{}`, "-c", path)
	assert.ErrorContains(t, err, "invalid arguments")
}

func TestEnvAndFlagPrecedence(t *testing.T) {
	path := writeTempConfig(t, fmt.Sprintf(`{"steamId":"from-file","steamKey":%q}`, testKey))

	_, err := runCLI(t, "", "show", "config", "-c", path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", GetConfig().SteamID)

	resetFlags()
	t.Setenv("MY_STEAM_ID", "from-env")
	rootCmd.SetArgs([]string{"show", "config", "-c", path})
	rootCmd.SetOut(&bytes.Buffer{})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Equal(t, "from-env", GetConfig().SteamID)

	resetFlags()
	rootCmd.SetArgs([]string{"show", "config", "-c", path, "--steamId", "from-flag"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Equal(t, "from-flag", GetConfig().SteamID)
}

func TestShowConfigMasksKey(t *testing.T) {
	path := writeTempConfig(t, fmt.Sprintf(`{"steamId":%q,"steamKey":%q}`, testSteamID, testKey))

	out, err := runCLI(t, "", "show", "config", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, testSteamID)
	assert.Contains(t, out, "CDEF")
	assert.NotContains(t, out, testKey)
}

func TestShowConfigRawDumpsMaskedStruct(t *testing.T) {
	path := writeTempConfig(t, fmt.Sprintf(`{"steamId":%q,"steamKey":%q,"timeout":7}`, testSteamID, testKey))

	out, err := runCLI(t, "", "show", "config", "--raw", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "appconfig.Config")
	assert.Contains(t, out, "TimeoutSeconds")
	assert.Contains(t, out, testSteamID)
	assert.Contains(t, out, "CDEF")
	assert.NotContains(t, out, testKey)
	assert.NotContains(t, out, "Current configuration:")
}

func TestListToolsAndCommands(t *testing.T) {
	path := writeTempConfig(t, `{}`)

	out, err := runCLI(t, "", "list", "tools", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "list_steam_friends")
	assert.Contains(t, out, "Get my steam id.")
	assert.Contains(t, out, "steam_id")

	out, err = runCLI(t, "", "list", "commands", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "steam-mcp serve")
	assert.Contains(t, out, "steam-mcp list tools")
	assert.NotContains(t, out, "completion")
}
