package command

import (
	"context"
	"fmt"
	"math"

	"github.com/whatcoin/whatcoin/internal/catalog"
	"github.com/whatcoin/whatcoin/internal/coingecko"
)

// Spec declares one positional argument: its default token, a parser, and the
// error message produced when the parser yields no value. Parse returns
// (nil, nil) for invalid input; a non-nil error is a hard upstream failure
// and aborts the whole resolution.
type Spec struct {
	Kind    string
	Default string
	Parse   func(ctx context.Context, req *Request, token string) (any, error)
	ErrMsg  func(token string) string
}

// WithDefault derives a spec with a different default token.
func (s Spec) WithDefault(def string) Spec {
	s.Default = def
	return s
}

// Catalog resolves free-text tokens against the coin and vs-currency
// catalogs. *catalog.Service satisfies it.
type Catalog interface {
	ResolveCoin(ctx context.Context, token string) (*catalog.Coin, error)
	ResolveVsCurrency(ctx context.Context, token string) (string, error)
}

// Kinds builds the argument specs the command table is declared with.
type Kinds struct {
	catalog Catalog
}

// NewKinds creates the spec builders bound to a catalog.
func NewKinds(c Catalog) *Kinds {
	return &Kinds{catalog: c}
}

// Coin matches a token against the coin catalog. Resolved value: *catalog.Coin.
func (k *Kinds) Coin() Spec {
	return Spec{
		Kind:    "coin",
		Default: "bitcoin",
		Parse: func(ctx context.Context, _ *Request, token string) (any, error) {
			coin, err := k.catalog.ResolveCoin(ctx, token)
			if err != nil {
				return nil, err
			}
			if coin == nil {
				return nil, nil
			}
			return coin, nil
		},
		ErrMsg: func(token string) string {
			return fmt.Sprintf("Sorry, I couldn't find %s. Try using the full name", token)
		},
	}
}

// VsCurrency matches a token against the supported vs-currency set.
// Resolved value: string.
func (k *Kinds) VsCurrency() Spec {
	return Spec{
		Kind:    "vs_currency",
		Default: "usd",
		Parse: func(ctx context.Context, _ *Request, token string) (any, error) {
			vs, err := k.catalog.ResolveVsCurrency(ctx, token)
			if err != nil {
				return nil, err
			}
			if vs == "" {
				return nil, nil
			}
			return vs, nil
		},
		ErrMsg: func(token string) string {
			return fmt.Sprintf("Sorry, I can't get prices in %s.\n"+
				"Try using a major currency symbol such as USD, EUR, GBP, BTC, ETH, LTC, etc.", token)
		},
	}
}

// Amount parses a locale-formatted positive number. Resolved value: float64.
func (k *Kinds) Amount() Spec {
	return Spec{
		Kind:    "amount",
		Default: "1",
		Parse: func(_ context.Context, req *Request, token string) (any, error) {
			v, ok := req.Fmt.ParseAmount(token)
			if !ok || math.IsNaN(v) {
				return nil, nil
			}
			return v, nil
		},
		ErrMsg: func(token string) string {
			return fmt.Sprintf("Amount '%s' is not a valid number", token)
		},
	}
}

// ohlcDays are the day windows the upstream OHLC endpoint accepts.
var ohlcDays = map[int]struct{}{1: {}, 7: {}, 14: {}, 30: {}, 90: {}, 180: {}, 365: {}}

// Days parses an OHLC day window: one of 1/7/14/30/90/180/365 or "max".
// Resolved value: int (coingecko.DaysMax for "max").
func (k *Kinds) Days() Spec {
	return Spec{
		Kind:    "days",
		Default: "1",
		Parse: func(_ context.Context, req *Request, token string) (any, error) {
			if token == "max" {
				return coingecko.DaysMax, nil
			}
			v, ok := req.Fmt.ParseAmount(token)
			if !ok {
				return nil, nil
			}
			days := int(v)
			if float64(days) != v {
				return nil, nil
			}
			if _, ok := ohlcDays[days]; !ok {
				return nil, nil
			}
			return days, nil
		},
		ErrMsg: func(token string) string {
			return fmt.Sprintf("Sorry, I can't chart OHLC data for '%s' days. "+
				"Use 1, 7, 14, 30, 90, 180, 365 or max", token)
		},
	}
}
