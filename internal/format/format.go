// Package format renders numbers, prices and percentages in the sender's
// locale and parses locale-formatted amount strings.
package format

import (
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const defaultSigFigs = 6

// Formatter formats values for one locale. Instances are immutable and safe
// for concurrent use.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	decimal rune
}

var (
	cacheMu sync.RWMutex
	cache   = map[string]*Formatter{}
)

// ForLocale returns the formatter for a BCP 47 locale tag. Unknown or empty
// tags fall back to English. Formatters are cached per tag for the process
// lifetime.
func ForLocale(locale string) *Formatter {
	if locale == "" {
		locale = "en"
	}

	cacheMu.RLock()
	f := cache[locale]
	cacheMu.RUnlock()
	if f != nil {
		return f
	}

	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	f = &Formatter{tag: tag, printer: message.NewPrinter(tag)}
	f.decimal = f.findDecimalSeparator()

	cacheMu.Lock()
	cache[locale] = f
	cacheMu.Unlock()
	return f
}

// Tag returns the resolved language tag.
func (f *Formatter) Tag() language.Tag { return f.tag }

// findDecimalSeparator formats 1.1 and picks out the rune between the digits,
// the same trick the Intl formatToParts approach uses.
func (f *Formatter) findDecimalSeparator() rune {
	formatted := f.printer.Sprint(number.Decimal(1.1))
	for _, r := range formatted {
		if !unicode.IsDigit(r) {
			return r
		}
	}
	return '.'
}

// ParseAmount parses a locale-formatted amount string. Every rune except
// digits and the locale's decimal separator is stripped, the separator is
// normalized to '.', and the result parsed as a float. ok is false for
// unparseable input; NaN is never returned.
func (f *Formatter) ParseAmount(s string) (float64, bool) {
	parts := strings.Split(s, string(f.decimal))
	if len(parts) > 2 {
		return 0, false
	}

	for i, part := range parts {
		var digits strings.Builder
		for _, r := range part {
			if unicode.IsDigit(r) {
				digits.WriteRune(r)
			}
		}
		parts[i] = digits.String()
	}

	normalized := strings.Join(parts, ".")
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Number formats v with at most sigFigs significant digits below 10^sigFigs,
// and no fraction digits above that.
func (f *Formatter) Number(v float64, sigFigs int) string {
	if sigFigs <= 0 {
		sigFigs = defaultSigFigs
	}

	var opts []number.Option
	if v < pow10(sigFigs) && v > -pow10(sigFigs) {
		// Precision caps significant digits, but the locale's default
		// pattern still caps fraction digits at 3; raise that cap so the
		// significant-digit limit is the one that applies.
		opts = append(opts, number.Precision(sigFigs), number.MaxFractionDigits(sigFigs))
	} else {
		opts = append(opts, number.MaxFractionDigits(0))
	}
	return f.printer.Sprint(number.Decimal(v, opts...))
}

// Money formats v in the given currency code. ISO 4217 codes render with the
// locale's narrow currency symbol; anything else (crypto tickers) renders as
// a plain localized number followed by the upper-cased code.
func (f *Formatter) Money(v float64, code string) string {
	if code == "" {
		return f.Number(v, defaultSigFigs)
	}

	unit, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		return f.Number(v, defaultSigFigs) + " " + strings.ToUpper(code)
	}

	symbol := f.printer.Sprint(currency.NarrowSymbol(unit))
	// Strip the placeholder amount NarrowSymbol renders alongside the sign.
	symbol = strings.TrimFunc(symbol, func(r rune) bool {
		return unicode.IsDigit(r) || unicode.IsSpace(r) || r == '.' || r == ','
	})
	return symbol + f.Number(v, defaultSigFigs)
}

// Percent formats a percentage-change figure with 3 significant digits.
// A nil value renders as "?".
func (f *Formatter) Percent(v *float64) string {
	if v == nil {
		return "?"
	}
	return f.Number(*v, 3) + "%"
}

// Date renders an upstream RFC 3339 timestamp in the style the bot's replies
// use. Unparseable input is passed through unchanged.
func Date(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.UTC().Format(time.RFC1123)
}

func pow10(n int) float64 {
	v := 1.0
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}
