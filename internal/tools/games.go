package tools

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/mwiater/steam-mcp/internal/steam"
)

// ListGames returns the MaxGames most played games of steamID, most played
// first. Games with equal playtime keep the order the API returned them in.
func (s *Service) ListGames(ctx context.Context, steamID string) ([]GameView, error) {
	client, err := s.Client()
	if err != nil {
		return nil, err
	}

	games, err := client.GetOwnedGames(ctx, steamID, true)
	if err != nil {
		return nil, fmt.Errorf("get owned games: %w", err)
	}
	return rankGames(games), nil
}

func rankGames(games []steam.OwnedGame) []GameView {
	sorted := slices.Clone(games)
	slices.SortStableFunc(sorted, func(a, b steam.OwnedGame) int {
		return cmp.Compare(b.PlaytimeForever, a.PlaytimeForever)
	})
	if len(sorted) > MaxGames {
		sorted = sorted[:MaxGames]
	}

	views := make([]GameView, 0, len(sorted))
	for _, g := range sorted {
		views = append(views, GameView{Name: g.Name, PlaytimeMinutes: g.PlaytimeForever})
	}
	return views
}
