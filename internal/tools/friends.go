package tools

import (
	"context"
	"fmt"

	"github.com/mwiater/steam-mcp/internal/steam"
)

// ListFriends joins the friend list of steamID with the presence of each
// friend. The result follows the order of the summaries response, and its
// length matches that response rather than the friend list.
func (s *Service) ListFriends(ctx context.Context, steamID string) ([]FriendView, error) {
	client, err := s.Client()
	if err != nil {
		return nil, err
	}

	friends, err := client.GetFriendList(ctx, steamID)
	if err != nil {
		return nil, fmt.Errorf("get friend list: %w", err)
	}

	views := make([]FriendView, 0, len(friends))
	if len(friends) == 0 {
		return views, nil
	}

	ids := make([]string, 0, len(friends))
	for _, f := range friends {
		ids = append(ids, f.SteamID)
	}

	players, err := client.GetPlayerSummaries(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get player summaries: %w", err)
	}

	for _, p := range players {
		views = append(views, FriendView{
			SteamID: p.SteamID,
			Name:    p.PersonaName,
			State:   steam.PersonaState(p.PersonaState),
		})
	}
	return views, nil
}
