package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/whatcoin/whatcoin/internal/catalog"
	"github.com/whatcoin/whatcoin/internal/format"
)

// Price renders current market data for one coin in one vs-currency:
// price, 1h/24h/7d/30d changes, market cap, 24h volume and freshness.
// Args: [*catalog.Coin, vs string].
func (h *Handlers) Price(ctx context.Context, req *Request, args []any) (*Reply, error) {
	coin := args[0].(*catalog.Coin)
	vs := args[1].(string)

	req.Log.Debug("getting market info", slog.String("id", coin.ID), slog.String("vs", vs))
	markets, err := h.market.Markets(ctx, []string{coin.ID}, vs, "1h,24h,7d,30d", 0)
	if err != nil {
		return nil, err
	}
	if len(markets) == 0 {
		return cantLookUp(coin.ID, vs), nil
	}

	m := markets[0]
	f := req.Fmt
	text := fmt.Sprintf("*%s (%s)* in %s\n"+
		"Current price:  `%s`\n"+
		"h/d/w/m: `%s` / `%s` / `%s` / `%s`\n"+
		"Market cap:  `%s`\n"+
		"24h volume:  `%s`\n"+
		"_(updated %s)_",
		m.Name, upper(m.Symbol), upper(vs),
		f.Money(m.CurrentPrice, vs),
		f.Percent(m.PriceChangePercentage1hInCurrency),
		f.Percent(m.PriceChangePercentage24hInCurrency),
		f.Percent(m.PriceChangePercentage7dInCurrency),
		f.Percent(m.PriceChangePercentage30dInCurrency),
		f.Money(m.MarketCap, vs),
		f.Money(m.TotalVolume, vs),
		format.Date(m.LastUpdated),
	)

	return &Reply{Text: text, Markdown: true}, nil
}
