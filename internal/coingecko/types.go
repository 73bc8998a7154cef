package coingecko

// CoinListEntry is one row of the /coins/list catalog.
type CoinListEntry struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Market is one row of the /coins/markets response, trimmed to the fields the
// bot renders.
type Market struct {
	ID                                 string   `json:"id"`
	Symbol                             string   `json:"symbol"`
	Name                               string   `json:"name"`
	CurrentPrice                       float64  `json:"current_price"`
	MarketCap                          float64  `json:"market_cap"`
	MarketCapRank                      int      `json:"market_cap_rank"`
	TotalVolume                        float64  `json:"total_volume"`
	PriceChangePercentage24h           *float64 `json:"price_change_percentage_24h"`
	LastUpdated                        string   `json:"last_updated"`
	PriceChangePercentage1hInCurrency  *float64 `json:"price_change_percentage_1h_in_currency"`
	PriceChangePercentage24hInCurrency *float64 `json:"price_change_percentage_24h_in_currency"`
	PriceChangePercentage7dInCurrency  *float64 `json:"price_change_percentage_7d_in_currency"`
	PriceChangePercentage30dInCurrency *float64 `json:"price_change_percentage_30d_in_currency"`
}

// SimplePrices maps coin id -> vs currency -> price.
type SimplePrices map[string]map[string]float64

// Point is a (timestamp millis, value) pair from /market_chart.
type Point [2]float64

// MarketChart holds price and volume series for a coin over a day window.
type MarketChart struct {
	Prices       []Point `json:"prices"`
	TotalVolumes []Point `json:"total_volumes"`
}

// Candle is one [timestamp, open, high, low, close] row from /ohlc.
type Candle [5]float64

func (c Candle) Timestamp() float64 { return c[0] }
func (c Candle) Open() float64      { return c[1] }
func (c Candle) High() float64      { return c[2] }
func (c Candle) Low() float64       { return c[3] }
func (c Candle) Close() float64     { return c[4] }
