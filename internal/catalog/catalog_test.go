package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whatcoin/whatcoin/internal/coingecko"
)

type countingSource struct {
	coinCalls int32
	vsCalls   int32
	err       error
}

func (s *countingSource) ListCoins(context.Context) ([]coingecko.CoinListEntry, error) {
	atomic.AddInt32(&s.coinCalls, 1)
	time.Sleep(10 * time.Millisecond) // widen the race window
	if s.err != nil {
		return nil, s.err
	}
	return []coingecko.CoinListEntry{{ID: "Bitcoin", Symbol: "BTC", Name: "Bitcoin"}}, nil
}

func (s *countingSource) SupportedVsCurrencies(context.Context) ([]string, error) {
	atomic.AddInt32(&s.vsCalls, 1)
	if s.err != nil {
		return nil, s.err
	}
	return []string{"USD", "eur"}, nil
}

func TestCoins_SingleFetchUnderConcurrency(t *testing.T) {
	source := &countingSource{}
	svc := NewService(source, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			coins, err := svc.Coins(context.Background())
			assert.NoError(t, err)
			assert.Len(t, coins, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&source.coinCalls))

	// A later call must hit the cache, not the source.
	_, err := svc.Coins(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&source.coinCalls))
}

func TestCoins_Lowercased(t *testing.T) {
	svc := NewService(&countingSource{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	coins, err := svc.Coins(context.Background())
	require.NoError(t, err)
	require.Len(t, coins, 1)
	assert.Equal(t, Coin{ID: "bitcoin", Symbol: "btc", Name: "bitcoin"}, coins[0])
}

func TestVsCurrencies_LowercasedSet(t *testing.T) {
	svc := NewService(&countingSource{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	set, err := svc.VsCurrencies(context.Background())
	require.NoError(t, err)
	assert.Contains(t, set, "usd")
	assert.Contains(t, set, "eur")
	assert.NotContains(t, set, "USD")
}

func TestCoins_FetchErrorNotCached(t *testing.T) {
	source := &countingSource{err: errors.New("boom")}
	svc := NewService(source, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := svc.Coins(context.Background())
	require.Error(t, err)

	// The failure must not poison the cache: a retry hits the source again.
	source.err = nil
	coins, err := svc.Coins(context.Background())
	require.NoError(t, err)
	assert.Len(t, coins, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&source.coinCalls))
}
