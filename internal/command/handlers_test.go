package command

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whatcoin/whatcoin/internal/catalog"
	"github.com/whatcoin/whatcoin/internal/coingecko"
)

// fakeCatalog resolves against a small fixed universe: exact id or exact
// symbol for coins, set membership for vs-currencies.
type fakeCatalog struct {
	coins []catalog.Coin
	vs    map[string]struct{}
}

func (f *fakeCatalog) ResolveCoin(_ context.Context, token string) (*catalog.Coin, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	for i := range f.coins {
		if f.coins[i].ID == token || f.coins[i].Symbol == token {
			return &f.coins[i], nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) ResolveVsCurrency(_ context.Context, token string) (string, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if _, ok := f.vs[token]; ok {
		return token, nil
	}
	return "", nil
}

type fakeMarket struct {
	markets      []coingecko.Market
	prices       coingecko.SimplePrices
	chart        *coingecko.MarketChart
	candles      []coingecko.Candle
	err          error
	marketsCalls [][]string
	chartDays    int
	ohlcDays     int
}

func (f *fakeMarket) Markets(_ context.Context, ids []string, _, _ string, _ int) ([]coingecko.Market, error) {
	f.marketsCalls = append(f.marketsCalls, ids)
	return f.markets, f.err
}

func (f *fakeMarket) SimplePrice(context.Context, []string, []string) (coingecko.SimplePrices, error) {
	return f.prices, f.err
}

func (f *fakeMarket) MarketChart(_ context.Context, _, _ string, days int) (*coingecko.MarketChart, error) {
	f.chartDays = days
	return f.chart, f.err
}

func (f *fakeMarket) OHLC(_ context.Context, _, _ string, days int) ([]coingecko.Candle, error) {
	f.ohlcDays = days
	return f.candles, f.err
}

type fakeCharts struct{}

func (fakeCharts) MarketChart(string, string, int, *coingecko.MarketChart) ([]byte, error) {
	return []byte("market-png"), nil
}

func (fakeCharts) OHLCChart(string, string, int, []coingecko.Candle) ([]byte, error) {
	return []byte("ohlc-png"), nil
}

func testRequest() *Request {
	return NewRequest("en", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		coins: []catalog.Coin{
			{ID: "bitcoin", Symbol: "btc", Name: "bitcoin"},
			{ID: "dogecoin", Symbol: "doge", Name: "dogecoin"},
			{ID: "shiba-inu", Symbol: "shib", Name: "shiba inu"},
		},
		vs: map[string]struct{}{"usd": {}, "eur": {}, "gbp": {}, "btc": {}},
	}
}

func dogecoin(t *testing.T, c *fakeCatalog) *catalog.Coin {
	t.Helper()
	coin, err := c.ResolveCoin(context.Background(), "dogecoin")
	require.NoError(t, err)
	require.NotNil(t, coin)
	return coin
}

func TestVersion(t *testing.T) {
	h := NewHandlers(&fakeMarket{}, fakeCharts{}, "1.2.3")

	reply, err := h.Version(context.Background(), testRequest(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Whatcoin v1.2.3", reply.Text)
}

func TestPrice_RendersMarketSummary(t *testing.T) {
	pct := func(v float64) *float64 { return &v }
	market := &fakeMarket{markets: []coingecko.Market{{
		Name:                               "Dogecoin",
		Symbol:                             "doge",
		CurrentPrice:                       0.25,
		MarketCap:                          32000000,
		TotalVolume:                        1500000,
		LastUpdated:                        "2021-05-01T10:00:00.000Z",
		PriceChangePercentage1hInCurrency:  pct(1.5),
		PriceChangePercentage24hInCurrency: pct(-2.25),
		PriceChangePercentage7dInCurrency:  nil,
		PriceChangePercentage30dInCurrency: pct(10),
	}}}
	h := NewHandlers(market, fakeCharts{}, "dev")
	cat := testCatalog()

	reply, err := h.Price(context.Background(), testRequest(), []any{dogecoin(t, cat), "usd"})
	require.NoError(t, err)
	require.NotNil(t, reply)
	assert.True(t, reply.Markdown)
	assert.Contains(t, reply.Text, "*Dogecoin (DOGE)* in USD")
	assert.Contains(t, reply.Text, "$0.25")
	assert.Contains(t, reply.Text, "`1.5%` / `-2.25%` / `?` / `10%`")
	assert.Contains(t, reply.Text, "Sat, 01 May 2021 10:00:00 UTC")
	assert.Equal(t, [][]string{{"dogecoin"}}, market.marketsCalls)
}

func TestPrice_NoData(t *testing.T) {
	h := NewHandlers(&fakeMarket{}, fakeCharts{}, "dev")
	cat := testCatalog()

	reply, err := h.Price(context.Background(), testRequest(), []any{dogecoin(t, cat), "usd"})
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I couldn't look up the price for dogecoin in usd", reply.Text)
}

func TestPrice_UpstreamError(t *testing.T) {
	h := NewHandlers(&fakeMarket{err: errors.New("upstream down")}, fakeCharts{}, "dev")
	cat := testCatalog()

	_, err := h.Price(context.Background(), testRequest(), []any{dogecoin(t, cat), "usd"})
	assert.Error(t, err)
}

func TestConvertCoinToVs(t *testing.T) {
	market := &fakeMarket{prices: coingecko.SimplePrices{"dogecoin": {"usd": 0.2}}}
	h := NewHandlers(market, fakeCharts{}, "dev")
	cat := testCatalog()

	reply, err := h.ConvertCoinToVs(context.Background(), testRequest(), []any{5.0, dogecoin(t, cat), "usd"})
	require.NoError(t, err)
	assert.Equal(t, "5 DOGE = $1", reply.Text)
}

func TestConvertVsToCoin(t *testing.T) {
	market := &fakeMarket{prices: coingecko.SimplePrices{"dogecoin": {"usd": 0.2}}}
	h := NewHandlers(market, fakeCharts{}, "dev")
	cat := testCatalog()

	reply, err := h.ConvertVsToCoin(context.Background(), testRequest(), []any{1.0, "usd", dogecoin(t, cat)})
	require.NoError(t, err)
	assert.Equal(t, "$1 = 5 DOGE", reply.Text)
}

func TestConvertCoinToCoin_PivotsThroughUSD(t *testing.T) {
	market := &fakeMarket{prices: coingecko.SimplePrices{
		"dogecoin":  {"usd": 30},
		"shiba-inu": {"usd": 10},
	}}
	h := NewHandlers(market, fakeCharts{}, "dev")
	cat := testCatalog()

	from := dogecoin(t, cat)
	to, err := cat.ResolveCoin(context.Background(), "shib")
	require.NoError(t, err)

	reply, err := h.ConvertCoinToCoin(context.Background(), testRequest(), []any{2.0, from, to})
	require.NoError(t, err)
	assert.Equal(t, "2 DOGE = 6 SHIB", reply.Text)
}

func TestConvertVsToVs_PivotsThroughBitcoin(t *testing.T) {
	market := &fakeMarket{prices: coingecko.SimplePrices{
		"bitcoin": {"usd": 50000, "eur": 40000},
	}}
	h := NewHandlers(market, fakeCharts{}, "dev")

	reply, err := h.ConvertVsToVs(context.Background(), testRequest(), []any{10.0, "usd", "eur"})
	require.NoError(t, err)
	assert.Equal(t, "$10 = €8", reply.Text)
}

func TestConvertVsToVs_MissingRate(t *testing.T) {
	market := &fakeMarket{prices: coingecko.SimplePrices{"bitcoin": {"usd": 50000}}}
	h := NewHandlers(market, fakeCharts{}, "dev")

	reply, err := h.ConvertVsToVs(context.Background(), testRequest(), []any{10.0, "usd", "eur"})
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I couldn't look up the exchange rate for usd to eur", reply.Text)
}

func TestRegret_MissedProfit(t *testing.T) {
	market := &fakeMarket{prices: coingecko.SimplePrices{"dogecoin": {"usd": 0.05}}}
	h := NewHandlers(market, fakeCharts{}, "dev")
	cat := testCatalog()

	reply, err := h.Regret(context.Background(), testRequest(), []any{10000.0, dogecoin(t, cat), 41.0, "usd"})
	require.NoError(t, err)
	assert.Equal(t, "If you hadn't sold your 10,000 DOGE for $41, you'd be $459 richer now 🚀! ... fuck!", reply.Text)
}

func TestRegret_SmallMissedProfitOmitsExpletive(t *testing.T) {
	// missed profit 9, below the 41 sale price
	market := &fakeMarket{prices: coingecko.SimplePrices{"dogecoin": {"usd": 0.005}}}
	h := NewHandlers(market, fakeCharts{}, "dev")
	cat := testCatalog()

	reply, err := h.Regret(context.Background(), testRequest(), []any{10000.0, dogecoin(t, cat), 41.0, "usd"})
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "you'd be $9 richer now 🚀!")
	assert.NotContains(t, reply.Text, "fuck")
}

func TestRegret_NoRegrets(t *testing.T) {
	market := &fakeMarket{prices: coingecko.SimplePrices{"dogecoin": {"usd": 0.001}}}
	h := NewHandlers(market, fakeCharts{}, "dev")
	cat := testCatalog()

	reply, err := h.Regret(context.Background(), testRequest(), []any{1000.0, dogecoin(t, cat), 41.0, "usd"})
	require.NoError(t, err)
	assert.Equal(t, "Wow, No Ragerts 💥! Your 1,000 DOGE would be worth $40 less today than the $41 you sold it for!", reply.Text)
}

func topMarkets(n int) []coingecko.Market {
	pct := 2.5
	out := make([]coingecko.Market, n)
	for i := range out {
		out[i] = coingecko.Market{
			Name:                     "Coin",
			MarketCapRank:            i + 1,
			CurrentPrice:             100,
			MarketCap:                1000000,
			PriceChangePercentage24h: &pct,
			LastUpdated:              "2021-05-01T10:00:00.000Z",
		}
	}
	return out
}

func TestTopN_TenIncludesMarketCap(t *testing.T) {
	h := NewHandlers(&fakeMarket{markets: topMarkets(10)}, fakeCharts{}, "dev")

	reply, err := h.TopN(10)(context.Background(), testRequest(), []any{"usd"})
	require.NoError(t, err)
	assert.True(t, reply.Markdown)
	assert.Contains(t, reply.Text, "*Top 10 Cryptocurrencies*")
	assert.Contains(t, reply.Text, "Market $1,000,000")
	assert.Contains(t, reply.Text, "_(updated Sat, 01 May 2021 10:00:00 UTC)_")
	// header + 10 entries + footer
	assert.Len(t, strings.Split(reply.Text, "\n"), 12)
}

func TestTopN_TwentyOmitsMarketCap(t *testing.T) {
	h := NewHandlers(&fakeMarket{markets: topMarkets(20)}, fakeCharts{}, "dev")

	reply, err := h.TopN(20)(context.Background(), testRequest(), []any{"usd"})
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "*Top 20 Cryptocurrencies*")
	assert.NotContains(t, reply.Text, "Market $")
	assert.Len(t, strings.Split(reply.Text, "\n"), 22)
}

func TestChart_SendsPhotoAndNotifies(t *testing.T) {
	market := &fakeMarket{chart: &coingecko.MarketChart{
		Prices:       []coingecko.Point{{1, 10}, {2, 12}},
		TotalVolumes: []coingecko.Point{{1, 1e6}, {2, 2e6}},
	}}
	h := NewHandlers(market, fakeCharts{}, "dev")
	cat := testCatalog()

	req := testRequest()
	var notified []string
	req.Notify = func(action string) { notified = append(notified, action) }

	reply, err := h.Chart(context.Background(), req, []any{dogecoin(t, cat), "usd", 6.7})
	require.NoError(t, err)
	assert.Equal(t, []byte("market-png"), reply.Photo)
	assert.Equal(t, "dogecoin-7d.png", reply.Filename)
	assert.Equal(t, 7, market.chartDays)
	assert.Equal(t, []string{ActionUploadPhoto}, notified)
}

func TestChart_DayFloorIsOne(t *testing.T) {
	market := &fakeMarket{chart: &coingecko.MarketChart{Prices: []coingecko.Point{{1, 10}}}}
	h := NewHandlers(market, fakeCharts{}, "dev")
	cat := testCatalog()

	_, err := h.Chart(context.Background(), testRequest(), []any{dogecoin(t, cat), "usd", 0.2})
	require.NoError(t, err)
	assert.Equal(t, 1, market.chartDays)
}

func TestOHLC_MaxWindowFilename(t *testing.T) {
	market := &fakeMarket{candles: []coingecko.Candle{{1, 1, 2, 0.5, 1.5}}}
	h := NewHandlers(market, fakeCharts{}, "dev")
	cat := testCatalog()

	reply, err := h.OHLC(context.Background(), testRequest(), []any{dogecoin(t, cat), "usd", coingecko.DaysMax})
	require.NoError(t, err)
	assert.Equal(t, []byte("ohlc-png"), reply.Photo)
	assert.Equal(t, "dogecoin-ohlc-max.png", reply.Filename)
	assert.Equal(t, coingecko.DaysMax, market.ohlcDays)
}
