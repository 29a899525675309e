package attribution

import "strings"

// Class is the currency-adjustment classification of a ticker, resolved
// once at ingestion rather than re-derived at every computation site.
type Class int

const (
	// Foreign instruments are quoted in a currency other than the
	// reporting currency; their returns are compounded with the FX return.
	Foreign Class = iota
	// Domestic instruments are already quoted in the reporting currency.
	Domestic
	// NAVPriced instruments use user-supplied NAV prices, never FX-adjusted.
	NAVPriced
	// Cash has no price; its return is always zero.
	Cash
)

func (c Class) String() string {
	switch c {
	case Foreign:
		return "foreign"
	case Domestic:
		return "domestic"
	case NAVPriced:
		return "nav"
	case Cash:
		return "cash"
	default:
		return "unknown"
	}
}

// Classifier resolves the Class of a ticker. The zero value is not usable;
// use NewClassifier for the defaults of a CAD-reporting portfolio.
type Classifier struct {
	CashTicker       string
	DomesticSuffixes []string
	DomesticIndices  []string
}

// Default special tickers of a CAD-reporting portfolio.
const (
	DefaultCashTicker    = "$CASH$"
	DefaultFXTicker      = "CAD=X"
	DefaultBaseCurrency  = "CAD"
	DefaultDomesticIndex = "^GSPTSE"
)

// NewClassifier returns a classifier with the default cash ticker,
// domestic exchange suffix and domestic index.
func NewClassifier() Classifier {
	return Classifier{
		CashTicker:       DefaultCashTicker,
		DomesticSuffixes: []string{".TO"},
		DomesticIndices:  []string{DefaultDomesticIndex},
	}
}

// ClassOf resolves the class of a ticker. navPriced reports whether the
// ticker carries NAV overrides; NAV priority is higher than domestic
// recognition, so a fund listed on a domestic exchange is still NAVPriced.
func (c Classifier) ClassOf(ticker string, navPriced bool) Class {
	if ticker == c.CashTicker {
		return Cash
	}
	if navPriced {
		return NAVPriced
	}
	for _, suffix := range c.DomesticSuffixes {
		if strings.HasSuffix(ticker, suffix) {
			return Domestic
		}
	}
	for _, index := range c.DomesticIndices {
		if ticker == index {
			return Domestic
		}
	}
	return Foreign
}

// Classify resolves the class of every ticker in the holdings, once.
func (c Classifier) Classify(h *Holdings, nav *Overrides) map[string]Class {
	classes := make(map[string]Class, len(h.Tickers()))
	for _, ticker := range h.Tickers() {
		classes[ticker] = c.ClassOf(ticker, nav.Has(ticker))
	}
	return classes
}
