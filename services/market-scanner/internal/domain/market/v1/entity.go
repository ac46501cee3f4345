package v1

import (
	"math"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/arbitrage"
)

// TickSource tags the market_ticks rows written for prediction market legs.
const TickSource = "polymarket"

// Market is one binary prediction market as seen by a scan. Nil prices mean the API
// gave no usable price for that outcome.
type Market struct {
	ID          string
	Question    string
	ConditionID string
	Slug        string
	EndDate     *time.Time
	Active      bool
	Liquidity   *float64
	YesPrice    *float64
	NoPrice     *float64
	ScannedAt   time.Time
}

// NormalizePrice keeps p only when it is a probability.
func NormalizePrice(p *float64) *float64 {
	if p == nil || math.IsNaN(*p) || *p < 0 || *p > 1 {
		return nil
	}
	v := *p
	return &v
}

// Leg is a priced outcome of a market, stored as a tick.
type Leg struct {
	Symbol string
	Price  float64
}

// Legs returns the priced outcomes, YES first.
func (m Market) Legs() []Leg {
	var legs []Leg
	if m.YesPrice != nil {
		legs = append(legs, Leg{Symbol: arbitrage.LegSymbol(m.ID, arbitrage.OutcomeYes), Price: *m.YesPrice})
	}
	if m.NoPrice != nil {
		legs = append(legs, Leg{Symbol: arbitrage.LegSymbol(m.ID, arbitrage.OutcomeNo), Price: *m.NoPrice})
	}
	return legs
}

// Quote is the market in the shape the arbitrage detector reads.
func (m Market) Quote() arbitrage.Quote {
	return arbitrage.Quote{MarketID: m.ID, Question: m.Question, YesPrice: m.YesPrice, NoPrice: m.NoPrice}
}
