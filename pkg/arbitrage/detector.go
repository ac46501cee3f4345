// Package arbitrage finds binary prediction markets whose YES and NO prices do not
// add up to one.
package arbitrage

import (
	"math"
	"sort"
	"strings"
)

// DefaultTolerance is the smallest |yes + no - 1| reported.
const DefaultTolerance = 0.0001

const (
	// OutcomeYes is the suffix of the YES leg symbol.
	OutcomeYes = "YES"
	// OutcomeNo is the suffix of the NO leg symbol.
	OutcomeNo = "NO"
)

// Kind tells which side of parity a market sits on.
type Kind string

const (
	// Underpriced markets cost less than 1 to buy both legs.
	Underpriced Kind = "underpriced"
	// Overpriced markets pay more than 1 to sell both legs.
	Overpriced Kind = "overpriced"
)

// Quote is a market with optional leg prices. Nil means no usable price.
type Quote struct {
	MarketID string
	Question string
	YesPrice *float64
	NoPrice  *float64
}

// Opportunity is a market whose legs deviate from parity.
type Opportunity struct {
	MarketID  string
	Question  string
	YesPrice  float64
	NoPrice   float64
	Sum       float64
	Deviation float64
	Kind      Kind
}

// Detect returns the opportunities among quotes, largest absolute deviation first.
// Quotes missing either price are skipped.
func Detect(quotes []Quote, tolerance float64) []Opportunity {
	var out []Opportunity
	for _, q := range quotes {
		if q.YesPrice == nil || q.NoPrice == nil {
			continue
		}
		if opp, ok := Check(q.MarketID, *q.YesPrice, *q.NoPrice, tolerance); ok {
			opp.Question = q.Question
			out = append(out, opp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Deviation) > math.Abs(out[j].Deviation)
	})
	return out
}

// Check evaluates a single market.
func Check(marketID string, yes, no, tolerance float64) (Opportunity, bool) {
	sum := yes + no
	deviation := sum - 1
	if math.Abs(deviation) <= tolerance {
		return Opportunity{}, false
	}
	kind := Overpriced
	if deviation < 0 {
		kind = Underpriced
	}
	return Opportunity{
		MarketID:  marketID,
		YesPrice:  yes,
		NoPrice:   no,
		Sum:       sum,
		Deviation: deviation,
		Kind:      kind,
	}, true
}

// LegSymbol is the tick symbol of one outcome of a market, e.g. "0xabc:YES".
func LegSymbol(marketID, outcome string) string {
	return marketID + ":" + outcome
}

// ParseLegSymbol splits a leg symbol back into market id and outcome.
func ParseLegSymbol(symbol string) (marketID, outcome string, ok bool) {
	i := strings.LastIndex(symbol, ":")
	if i <= 0 {
		return "", "", false
	}
	outcome = symbol[i+1:]
	if outcome != OutcomeYes && outcome != OutcomeNo {
		return "", "", false
	}
	return symbol[:i], outcome, true
}

// IsLegSymbol reports whether symbol names a prediction market outcome, whose price
// is a probability bounded by [0, 1].
func IsLegSymbol(symbol string) bool {
	_, _, ok := ParseLegSymbol(symbol)
	return ok
}
