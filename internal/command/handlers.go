package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/whatcoin/whatcoin/internal/coingecko"
)

// MarketData is the market-data collaborator the handlers consume.
// *coingecko.Client satisfies it.
type MarketData interface {
	Markets(ctx context.Context, ids []string, vsCurrency, pctWindows string, perPage int) ([]coingecko.Market, error)
	SimplePrice(ctx context.Context, ids, vsCurrencies []string) (coingecko.SimplePrices, error)
	MarketChart(ctx context.Context, id, vsCurrency string, days int) (*coingecko.MarketChart, error)
	OHLC(ctx context.Context, id, vsCurrency string, days int) ([]coingecko.Candle, error)
}

// ChartRenderer renders chart replies to PNG bytes.
type ChartRenderer interface {
	MarketChart(name, vsCurrency string, days int, data *coingecko.MarketChart) ([]byte, error)
	OHLCChart(name, vsCurrency string, days int, candles []coingecko.Candle) ([]byte, error)
}

// Handlers holds the business functions behind the command table.
type Handlers struct {
	market  MarketData
	charts  ChartRenderer
	version string
}

// NewHandlers wires the handlers to their collaborators.
func NewHandlers(market MarketData, charts ChartRenderer, version string) *Handlers {
	return &Handlers{market: market, charts: charts, version: version}
}

// BuildTable registers every command candidate in declaration order. The
// order within one command name is significant: the first fully-resolving
// shape wins.
func BuildTable(h *Handlers, kinds *Kinds) *Table {
	coin := kinds.Coin()
	vs := kinds.VsCurrency()
	amount := kinds.Amount()
	days := kinds.Days()

	t := NewTable()
	t.Register(Candidate{Name: "/start", Handler: h.Start})
	t.Register(Candidate{Name: "/version", Handler: h.Version})

	t.Register(Candidate{Name: "/price", Specs: []Spec{coin, vs}, Handler: h.Price})
	t.Register(Candidate{Name: "/price", Specs: []Spec{amount, coin, vs}, Handler: h.ConvertCoinToVs})
	t.Register(Candidate{Name: "/price", Specs: []Spec{coin, amount, vs}, Handler: h.ConvertCoinToVs,
		Reorder: func(a []any) []any { return []any{a[1], a[0], a[2]} }})

	t.Register(Candidate{Name: "/convert", Specs: []Spec{amount, vs, vs}, Handler: h.ConvertVsToVs})
	t.Register(Candidate{Name: "/convert", Specs: []Spec{amount, coin, vs}, Handler: h.ConvertCoinToVs})
	t.Register(Candidate{Name: "/convert", Specs: []Spec{amount, vs, coin}, Handler: h.ConvertVsToCoin})
	t.Register(Candidate{Name: "/convert", Specs: []Spec{amount, coin, coin}, Handler: h.ConvertCoinToCoin})

	t.Register(Candidate{Name: "/regret",
		Specs:   []Spec{amount.WithDefault("10000"), coin, amount.WithDefault("41"), vs},
		Handler: h.Regret})

	t.Register(Candidate{Name: "/top10", Specs: []Spec{vs}, Handler: h.TopN(10)})
	t.Register(Candidate{Name: "/top20", Specs: []Spec{vs}, Handler: h.TopN(20)})

	chartReorder := func(a []any) []any { return []any{a[1], a[2], a[0]} }
	t.Register(Candidate{Name: "/chart", Specs: []Spec{amount, coin, vs}, Handler: h.Chart, Reorder: chartReorder})
	t.Register(Candidate{Name: "/chart", Specs: []Spec{coin, amount, vs}, Handler: h.Chart,
		Reorder: func(a []any) []any { return []any{a[0], a[2], a[1]} }})
	t.Register(Candidate{Name: "/chart", Specs: []Spec{coin, vs, amount}, Handler: h.Chart})

	t.Register(Candidate{Name: "/ohlc", Specs: []Spec{coin, vs, days}, Handler: h.OHLC})

	return t
}

// Start greets new users.
func (h *Handlers) Start(_ context.Context, _ *Request, _ []any) (*Reply, error) {
	return &Reply{Text: "Hi there! To get started try typing /price"}, nil
}

// Version reports the bot's name and version.
func (h *Handlers) Version(_ context.Context, _ *Request, _ []any) (*Reply, error) {
	return &Reply{Text: fmt.Sprintf("Whatcoin v%s", h.version)}, nil
}

func cantLookUp(id, vs string) *Reply {
	return &Reply{Text: fmt.Sprintf("Sorry, I couldn't look up the price for %s in %s", id, vs)}
}

func upper(s string) string { return strings.ToUpper(s) }
