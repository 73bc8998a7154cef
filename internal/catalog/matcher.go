package catalog

import (
	"context"
	"log/slog"
	"strings"
)

// ResolveCoin resolves a free-text token to a catalog entry, or nil when
// nothing matches. The catalog is scanned once, case-insensitively:
//
//	exact id       - returned immediately
//	exact symbol   - recorded and the scan stops; a ticker symbol is treated
//	                 as unambiguous
//	exact name     - recorded, scan continues (a later exact symbol wins)
//	prefix matches - recorded as fallbacks
//
// Candidate precedence after the scan: exact symbol > exact name > id prefix
// > symbol prefix > name prefix.
func (s *Service) ResolveCoin(ctx context.Context, token string) (*Coin, error) {
	search := strings.ToLower(strings.TrimSpace(token))
	if search == "" {
		return nil, nil
	}

	coins, err := s.Coins(ctx)
	if err != nil {
		return nil, err
	}

	s.log.Debug("searching catalog", slog.String("token", search))

	var symbolMatch, nameMatch, idPreMatch, symbolPreMatch, namePreMatch *Coin
	for i := range coins {
		coin := &coins[i]
		switch {
		case coin.ID == search:
			return coin, nil
		case coin.Symbol == search:
			symbolMatch = coin
		case coin.Name == search:
			if nameMatch == nil {
				nameMatch = coin
			}
		case strings.HasPrefix(coin.ID, search):
			if idPreMatch == nil {
				idPreMatch = coin
			}
		case strings.HasPrefix(coin.Symbol, search):
			if symbolPreMatch == nil {
				symbolPreMatch = coin
			}
		case strings.HasPrefix(coin.Name, search):
			if namePreMatch == nil {
				namePreMatch = coin
			}
		}
		if symbolMatch != nil {
			break
		}
	}

	for _, match := range []*Coin{symbolMatch, nameMatch, idPreMatch, symbolPreMatch, namePreMatch} {
		if match != nil {
			s.log.Debug("closest match", slog.String("token", search), slog.String("id", match.ID))
			return match, nil
		}
	}

	s.log.Debug("no match found", slog.String("token", search))
	return nil, nil
}

// ResolveVsCurrency resolves a token to a supported vs-currency code, or ""
// when it is not supported. With VsCoinFallback enabled, a token that is not
// itself a vs-currency is resolved as a coin and its symbol accepted if that
// symbol is in the supported set.
func (s *Service) ResolveVsCurrency(ctx context.Context, token string) (string, error) {
	code := strings.ToLower(strings.TrimSpace(token))
	if code == "" {
		return "", nil
	}

	vsSet, err := s.VsCurrencies(ctx)
	if err != nil {
		return "", err
	}
	if _, ok := vsSet[code]; ok {
		return code, nil
	}

	if !s.VsCoinFallback {
		return "", nil
	}

	s.log.Debug("not a vs currency, trying coin symbol", slog.String("token", code))
	coin, err := s.ResolveCoin(ctx, code)
	if err != nil {
		return "", err
	}
	if coin != nil {
		if _, ok := vsSet[coin.Symbol]; ok {
			return coin.Symbol, nil
		}
	}
	return "", nil
}
