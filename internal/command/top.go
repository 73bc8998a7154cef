package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/whatcoin/whatcoin/internal/format"
)

// TopN builds a handler that renders the top n coins by market cap in a
// vs-currency as a ranked markdown list. Market cap is included only for
// n <= 10 where the list stays readable.
// Args: [vs string].
func (h *Handlers) TopN(n int) HandlerFunc {
	return func(ctx context.Context, req *Request, args []any) (*Reply, error) {
		vs := args[0].(string)

		markets, err := h.market.Markets(ctx, nil, vs, "", n)
		if err != nil {
			return nil, err
		}
		if len(markets) == 0 {
			return &Reply{Text: "Sorry, I couldn't fetch market data from the API. Please try again later."}, nil
		}
		if len(markets) > n {
			markets = markets[:n]
		}

		f := req.Fmt
		lines := make([]string, 0, len(markets)+2)
		lines = append(lines, fmt.Sprintf("*Top %d Cryptocurrencies*", n))
		for _, m := range markets {
			line := fmt.Sprintf("*%d. %s:*  %s (`%s`)",
				m.MarketCapRank, m.Name, f.Money(m.CurrentPrice, vs), f.Percent(m.PriceChangePercentage24h))
			if n <= 10 {
				line += fmt.Sprintf(" - Market %s", f.Money(m.MarketCap, vs))
			}
			lines = append(lines, line)
		}
		lines = append(lines, fmt.Sprintf("_(updated %s)_", format.Date(markets[0].LastUpdated)))

		return &Reply{Text: strings.Join(lines, "\n"), Markdown: true}, nil
	}
}
