package command

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/whatcoin/whatcoin/internal/catalog"
	"github.com/whatcoin/whatcoin/internal/coingecko"
)

// Chart renders a dual-axis price/volume chart for a coin over a day window.
// Args after reorder: [*catalog.Coin, vs string, days float64].
func (h *Handlers) Chart(ctx context.Context, req *Request, args []any) (*Reply, error) {
	coin := args[0].(*catalog.Coin)
	vs := args[1].(string)
	days := int(math.Round(args[2].(float64)))
	if days < 1 {
		days = 1
	}

	// let the user know we're working on it
	req.Notify(ActionUploadPhoto)

	req.Log.Debug("fetching chart data",
		slog.String("id", coin.ID), slog.String("vs", vs), slog.Int("days", days))
	data, err := h.market.MarketChart(ctx, coin.ID, vs, days)
	if err != nil {
		return nil, err
	}
	if data == nil || len(data.Prices) == 0 {
		return cantLookUp(coin.ID, vs), nil
	}

	png, err := h.charts.MarketChart(coin.Name, vs, days, data)
	if err != nil {
		return nil, err
	}

	return &Reply{Photo: png, Filename: fmt.Sprintf("%s-%dd.png", coin.ID, days)}, nil
}

// OHLC renders a candle summary chart: the close line with the high/low band.
// Args: [*catalog.Coin, vs string, days int].
func (h *Handlers) OHLC(ctx context.Context, req *Request, args []any) (*Reply, error) {
	coin := args[0].(*catalog.Coin)
	vs := args[1].(string)
	days := args[2].(int)

	req.Notify(ActionUploadPhoto)

	req.Log.Debug("fetching ohlc data",
		slog.String("id", coin.ID), slog.String("vs", vs), slog.Int("days", days))
	candles, err := h.market.OHLC(ctx, coin.ID, vs, days)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return cantLookUp(coin.ID, vs), nil
	}

	png, err := h.charts.OHLCChart(coin.Name, vs, days, candles)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%s-ohlc-%dd.png", coin.ID, days)
	if days == coingecko.DaysMax {
		filename = fmt.Sprintf("%s-ohlc-max.png", coin.ID)
	}
	return &Reply{Photo: png, Filename: filename}, nil
}
