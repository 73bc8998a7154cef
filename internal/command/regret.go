package command

import (
	"context"
	"fmt"

	"github.com/whatcoin/whatcoin/internal/catalog"
)

// Regret computes the opportunity cost of a past sale: what the sold coins
// would fetch today versus what they actually sold for.
// Args: [amount float64, *catalog.Coin, soldFor float64, vs string].
func (h *Handlers) Regret(ctx context.Context, req *Request, args []any) (*Reply, error) {
	amount := args[0].(float64)
	coin := args[1].(*catalog.Coin)
	soldFor := args[2].(float64)
	vs := args[3].(string)

	prices, err := h.market.SimplePrice(ctx, []string{coin.ID}, []string{vs})
	if err != nil {
		return nil, err
	}
	current := prices[coin.ID][vs]
	if current == 0 {
		return cantLookUp(coin.ID, vs), nil
	}

	missedProfit := current*amount - soldFor
	f := req.Fmt
	symbol := upper(coin.Symbol)

	if missedProfit > 0 {
		text := fmt.Sprintf("If you hadn't sold your %s %s for %s, you'd be %s richer now 🚀!",
			f.Number(amount, 0), symbol, f.Money(soldFor, vs), f.Money(missedProfit, vs))
		if missedProfit > soldFor {
			text += " ... fuck!"
		}
		return &Reply{Text: text}, nil
	}

	text := fmt.Sprintf("Wow, No Ragerts 💥! Your %s %s would be worth %s less today than the %s you sold it for!",
		f.Number(amount, 0), symbol, f.Money(-missedProfit, vs), f.Money(soldFor, vs))
	return &Reply{Text: text}, nil
}
