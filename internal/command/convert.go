package command

import (
	"context"
	"fmt"

	"github.com/whatcoin/whatcoin/internal/catalog"
)

// conversionReply renders "<amt> <from> = <amt*rate> <to>".
func conversionReply(req *Request, amount, rate float64, from, to string) *Reply {
	return &Reply{Text: fmt.Sprintf("%s = %s",
		req.Fmt.Money(amount, from),
		req.Fmt.Money(amount*rate, to))}
}

// ConvertCoinToVs converts an amount of a coin into a vs-currency.
// Args: [amount float64, *catalog.Coin, vs string].
func (h *Handlers) ConvertCoinToVs(ctx context.Context, req *Request, args []any) (*Reply, error) {
	amount := args[0].(float64)
	coin := args[1].(*catalog.Coin)
	vs := args[2].(string)

	prices, err := h.market.SimplePrice(ctx, []string{coin.ID}, []string{vs})
	if err != nil {
		return nil, err
	}
	price := prices[coin.ID][vs]
	if price == 0 {
		return cantLookUp(coin.ID, vs), nil
	}
	return conversionReply(req, amount, price, coin.Symbol, vs), nil
}

// ConvertVsToCoin converts an amount of a vs-currency into a coin.
// Args: [amount float64, vs string, *catalog.Coin].
func (h *Handlers) ConvertVsToCoin(ctx context.Context, req *Request, args []any) (*Reply, error) {
	amount := args[0].(float64)
	vs := args[1].(string)
	coin := args[2].(*catalog.Coin)

	prices, err := h.market.SimplePrice(ctx, []string{coin.ID}, []string{vs})
	if err != nil {
		return nil, err
	}
	price := prices[coin.ID][vs]
	if price == 0 {
		return cantLookUp(coin.ID, vs), nil
	}
	return conversionReply(req, amount, 1/price, vs, coin.Symbol), nil
}

// ConvertCoinToCoin converts between two coins, pivoting through usd since
// the upstream has no direct coin-to-coin rate.
// Args: [amount float64, *catalog.Coin, *catalog.Coin].
func (h *Handlers) ConvertCoinToCoin(ctx context.Context, req *Request, args []any) (*Reply, error) {
	amount := args[0].(float64)
	from := args[1].(*catalog.Coin)
	to := args[2].(*catalog.Coin)

	prices, err := h.market.SimplePrice(ctx, []string{from.ID, to.ID}, []string{"usd"})
	if err != nil {
		return nil, err
	}
	fromPrice := prices[from.ID]["usd"]
	if fromPrice == 0 {
		return &Reply{Text: fmt.Sprintf("Sorry, I couldn't look up the price for %s", from.ID)}, nil
	}
	toPrice := prices[to.ID]["usd"]
	if toPrice == 0 {
		return &Reply{Text: fmt.Sprintf("Sorry, I couldn't look up the price for %s", to.ID)}, nil
	}
	return conversionReply(req, amount, fromPrice/toPrice, from.Symbol, to.Symbol), nil
}

// ConvertVsToVs converts between two vs-currencies, pivoting through bitcoin
// quotes in both.
// Args: [amount float64, from string, to string].
func (h *Handlers) ConvertVsToVs(ctx context.Context, req *Request, args []any) (*Reply, error) {
	amount := args[0].(float64)
	from := args[1].(string)
	to := args[2].(string)

	prices, err := h.market.SimplePrice(ctx, []string{"bitcoin"}, []string{from, to})
	if err != nil {
		return nil, err
	}
	btc := prices["bitcoin"]
	if btc[from] == 0 || btc[to] == 0 {
		return &Reply{Text: fmt.Sprintf("Sorry, I couldn't look up the exchange rate for %s to %s", from, to)}, nil
	}
	return conversionReply(req, amount, btc[to]/btc[from], from, to), nil
}
