// Package chart renders price/volume and OHLC charts to PNG.
package chart

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	chartlib "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/whatcoin/whatcoin/internal/coingecko"
)

// Palette matching the original whatcoin theme.
var (
	colorBackground = drawing.Color{R: 0x0A, G: 0x09, B: 0x08, A: 0xFF}
	colorTitle      = drawing.Color{R: 0xEB, G: 0xEB, B: 0xEB, A: 0xFF}
	colorPriceUp    = drawing.Color{R: 0x5F, G: 0xAD, B: 0x56, A: 0xFF}
	colorPriceDown  = drawing.Color{R: 0xDC, G: 0x13, B: 0x6C, A: 0xFF}
	colorVolume     = drawing.Color{R: 0xA3, G: 0x7D, B: 0x52, A: 0xFF}
	colorDates      = drawing.Color{R: 0x8F, G: 0x8F, B: 0x8F, A: 0xFF}
)

// Renderer produces PNG charts. Width and Height default to 800x600.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer creates a renderer with the given dimensions (zero for defaults).
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 600
	}
	return &Renderer{Width: width, Height: height}
}

// MarketChart renders a dual-axis chart: the price line on the primary axis,
// the 24h volume area (scaled to millions) on the secondary axis. The price
// line is green when the last price is at or above the first, red otherwise.
func (r *Renderer) MarketChart(name, vsCurrency string, days int, data *coingecko.MarketChart) ([]byte, error) {
	if data == nil || len(data.Prices) == 0 {
		return nil, fmt.Errorf("no price data to chart")
	}

	priceTimes, prices := splitSeries(data.Prices)
	volumeTimes, volumes := splitSeries(data.TotalVolumes)
	for i := range volumes {
		volumes[i] /= 1e6
	}

	rising := prices[len(prices)-1] >= prices[0]
	priceColor := colorPriceUp
	if !rising {
		priceColor = colorPriceDown
	}

	graph := chartlib.Chart{
		Title:      fmt.Sprintf("%s - last %dd", capitalize(name), days),
		TitleStyle: chartlib.Style{FontColor: colorTitle, FontSize: 18},
		Width:      r.Width,
		Height:     r.Height,
		Background: chartlib.Style{FillColor: colorBackground},
		Canvas:     chartlib.Style{FillColor: colorBackground},
		XAxis: chartlib.XAxis{
			Style:          chartlib.Style{FontColor: colorDates, FontSize: 12, StrokeColor: colorDates},
			ValueFormatter: chartlib.TimeValueFormatterWithFormat("02/01 15:04"),
		},
		YAxis: chartlib.YAxis{
			Name:      fmt.Sprintf("Price (%s)", strings.ToUpper(vsCurrency)),
			NameStyle: chartlib.Style{FontColor: priceColor, FontSize: 18},
			Style:     chartlib.Style{FontColor: priceColor, FontSize: 12, StrokeColor: priceColor},
		},
		YAxisSecondary: chartlib.YAxis{
			Name:      fmt.Sprintf("24h Volume (Mil. %s)", strings.ToUpper(vsCurrency)),
			NameStyle: chartlib.Style{FontColor: colorVolume, FontSize: 18},
			Style:     chartlib.Style{FontColor: colorVolume, FontSize: 12, StrokeColor: colorVolume},
		},
		Series: []chartlib.Series{
			chartlib.TimeSeries{
				Name:  "volume",
				YAxis: chartlib.YAxisSecondary,
				Style: chartlib.Style{
					StrokeColor: colorVolume.WithAlpha(128),
					FillColor:   colorVolume.WithAlpha(64),
				},
				XValues: volumeTimes,
				YValues: volumes,
			},
			chartlib.TimeSeries{
				Name:    "price",
				Style:   chartlib.Style{StrokeColor: priceColor, StrokeWidth: 2},
				XValues: priceTimes,
				YValues: prices,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chartlib.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render market chart: %w", err)
	}
	return buf.Bytes(), nil
}

// OHLCChart renders the close line between faint high and low lines.
func (r *Renderer) OHLCChart(name, vsCurrency string, days int, candles []coingecko.Candle) ([]byte, error) {
	if len(candles) == 0 {
		return nil, fmt.Errorf("no ohlc data to chart")
	}

	times := make([]time.Time, len(candles))
	highs := make([]float64, len(candles))
	lows := make([]float64, len(candles))
	closes := make([]float64, len(candles))
	for i, c := range candles {
		times[i] = time.UnixMilli(int64(c.Timestamp()))
		highs[i] = c.High()
		lows[i] = c.Low()
		closes[i] = c.Close()
	}

	rising := closes[len(closes)-1] >= candles[0].Open()
	priceColor := colorPriceUp
	if !rising {
		priceColor = colorPriceDown
	}

	window := fmt.Sprintf("last %dd", days)
	if days == coingecko.DaysMax {
		window = "all time"
	}

	graph := chartlib.Chart{
		Title:      fmt.Sprintf("%s OHLC - %s", capitalize(name), window),
		TitleStyle: chartlib.Style{FontColor: colorTitle, FontSize: 18},
		Width:      r.Width,
		Height:     r.Height,
		Background: chartlib.Style{FillColor: colorBackground},
		Canvas:     chartlib.Style{FillColor: colorBackground},
		XAxis: chartlib.XAxis{
			Style:          chartlib.Style{FontColor: colorDates, FontSize: 12, StrokeColor: colorDates},
			ValueFormatter: chartlib.TimeValueFormatterWithFormat("02/01 15:04"),
		},
		YAxis: chartlib.YAxis{
			Name:      fmt.Sprintf("Price (%s)", strings.ToUpper(vsCurrency)),
			NameStyle: chartlib.Style{FontColor: priceColor, FontSize: 18},
			Style:     chartlib.Style{FontColor: priceColor, FontSize: 12, StrokeColor: priceColor},
		},
		Series: []chartlib.Series{
			chartlib.TimeSeries{
				Name:    "high",
				Style:   chartlib.Style{StrokeColor: colorDates.WithAlpha(128)},
				XValues: times,
				YValues: highs,
			},
			chartlib.TimeSeries{
				Name:    "low",
				Style:   chartlib.Style{StrokeColor: colorDates.WithAlpha(128)},
				XValues: times,
				YValues: lows,
			},
			chartlib.TimeSeries{
				Name:    "close",
				Style:   chartlib.Style{StrokeColor: priceColor, StrokeWidth: 2},
				XValues: times,
				YValues: closes,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chartlib.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render ohlc chart: %w", err)
	}
	return buf.Bytes(), nil
}

func splitSeries(points []coingecko.Point) ([]time.Time, []float64) {
	times := make([]time.Time, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		times[i] = time.UnixMilli(int64(p[0]))
		values[i] = p[1]
	}
	return times, values
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
