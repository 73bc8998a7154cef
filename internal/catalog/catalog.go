// Package catalog caches the CoinGecko coin list and vs-currency set and
// resolves free-text tokens against them.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/whatcoin/whatcoin/internal/coingecko"
	"github.com/whatcoin/whatcoin/pkg/metrics"
)

// Coin is one catalog entry. All fields are lowercase.
type Coin struct {
	ID     string
	Symbol string
	Name   string
}

// Source provides the raw catalog data. *coingecko.Client satisfies it.
type Source interface {
	ListCoins(ctx context.Context) ([]coingecko.CoinListEntry, error)
	SupportedVsCurrencies(ctx context.Context) ([]string, error)
}

// Service owns the lazily-populated catalog caches. Both caches are fetched
// at most once per process: concurrent first callers share a single in-flight
// fetch and every later caller reads the cache without locking writes.
type Service struct {
	source Source
	log    *slog.Logger

	// VsCoinFallback lets ResolveVsCurrency fall back to resolving the token
	// as a coin and accepting its symbol when that symbol is a supported
	// vs-currency (e.g. "dogecoin" as a settlement currency).
	VsCoinFallback bool

	group singleflight.Group

	mu     sync.RWMutex
	coins  []Coin
	vsSet  map[string]struct{}
}

// NewService creates a catalog service backed by source.
func NewService(source Source, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{source: source, log: log}
}

// Coins returns the cached coin catalog, fetching it on first use.
func (s *Service) Coins(ctx context.Context) ([]Coin, error) {
	s.mu.RLock()
	cached := s.coins
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := s.group.Do("coins", func() (any, error) {
		s.log.Info("fetching coins list...")
		entries, err := s.source.ListCoins(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch coins list: %w", err)
		}

		coins := make([]Coin, 0, len(entries))
		for _, e := range entries {
			coins = append(coins, Coin{
				ID:     strings.ToLower(e.ID),
				Symbol: strings.ToLower(e.Symbol),
				Name:   strings.ToLower(e.Name),
			})
		}

		s.mu.Lock()
		s.coins = coins
		s.mu.Unlock()

		s.log.Info("got coins list", slog.Int("count", len(coins)))
		metrics.SetCatalogSize("coins", len(coins))
		return coins, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Coin), nil
}

// VsCurrencies returns the cached vs-currency set, fetching it on first use.
func (s *Service) VsCurrencies(ctx context.Context) (map[string]struct{}, error) {
	s.mu.RLock()
	cached := s.vsSet
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := s.group.Do("vs_currencies", func() (any, error) {
		s.log.Info("fetching supported vs currencies...")
		codes, err := s.source.SupportedVsCurrencies(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch vs currencies: %w", err)
		}

		set := make(map[string]struct{}, len(codes))
		for _, code := range codes {
			set[strings.ToLower(code)] = struct{}{}
		}

		s.mu.Lock()
		s.vsSet = set
		s.mu.Unlock()

		s.log.Info("got vs currencies", slog.Int("count", len(set)))
		metrics.SetCatalogSize("vs_currencies", len(set))
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]struct{}), nil
}
