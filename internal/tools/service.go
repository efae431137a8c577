package tools

import (
	"sync"

	"github.com/mwiater/steam-mcp/internal/appconfig"
	"github.com/mwiater/steam-mcp/internal/steam"
)

// Service is the per-process handle passed to every tool. It owns the
// configured credential and the lazily built Steam client.
type Service struct {
	steamID string
	client  func() (*steam.Client, error)
}

// NewService binds a Service to cfg. The Steam client is not built until the
// first call to Client or Warm; extra options are applied at that point.
func NewService(cfg appconfig.Config, opts ...steam.Option) *Service {
	key := cfg.SteamKey
	all := append([]steam.Option{
		steam.WithBaseURL(cfg.BaseURL()),
		steam.WithTimeout(cfg.RequestTimeout()),
	}, opts...)

	return &Service{
		steamID: cfg.SteamID,
		client: sync.OnceValues(func() (*steam.Client, error) {
			return steam.New(key, all...)
		}),
	}
}

// Client returns the Steam client, building it on first use. Every call,
// concurrent or not, observes the same client or the same construction error.
func (s *Service) Client() (*steam.Client, error) {
	return s.client()
}

// Warm builds the client eagerly so a malformed key fails at startup.
func (s *Service) Warm() error {
	_, err := s.client()
	return err
}

// MySteamID returns the configured default account identifier.
func (s *Service) MySteamID() string {
	return s.steamID
}
