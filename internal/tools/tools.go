// Package tools implements the Steam tools exposed to agent hosts and the
// registry that describes them for discovery.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
)

const (
	// ListSteamFriendsName is the canonical name for the friends tool.
	ListSteamFriendsName = "list_steam_friends"
	// ListSteamGamesName is the canonical name for the games tool.
	ListSteamGamesName = "list_steam_games"
	// GetMySteamIDName is the canonical name for the account id tool.
	GetMySteamIDName = "get_my_steam_id"

	// MaxGames caps the number of games returned by the games tool.
	MaxGames = 100
)

// Definition describes the metadata the MCP server exposes for a tool.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// Handler executes a tool using the provided arguments and returns its text result.
type Handler func(ctx context.Context, args map[string]any) (string, error)

// FriendView is one entry of the friends tool output.
type FriendView struct {
	SteamID string `json:"steam_id"`
	Name    string `json:"name"`
	State   string `json:"state"`
}

// GameView is one entry of the games tool output.
type GameView struct {
	Name            string `json:"name"`
	PlaytimeMinutes int64  `json:"playtime_minutes"`
}

// encodeJSON renders v compactly without HTML escaping, so persona names
// like "<3" survive untouched.
func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func steamIDSchema(description string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"steam_id": map[string]any{
				"type":        "string",
				"description": description,
			},
		},
		"required": []string{"steam_id"},
	}
}
