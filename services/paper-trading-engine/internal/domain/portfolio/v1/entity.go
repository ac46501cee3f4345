package v1

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadchandra19/paper-trading/pkg/errors"
)

// Epsilon absorbs float rounding when comparing cash and quantities.
const Epsilon = 1e-9

// Side is the direction of a fill.
type Side string

const (
	// SideBuy spends cash to increase a position.
	SideBuy Side = "buy"
	// SideSell reduces a position and credits cash.
	SideSell Side = "sell"
)

// Valid reports whether s is a known side.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Position is the holding of one symbol.
type Position struct {
	Symbol    string
	Quantity  float64
	AvgCost   float64
	UpdatedAt time.Time
}

// CostBasis is quantity times average cost.
func (p Position) CostBasis() float64 {
	return p.Quantity * p.AvgCost
}

// Portfolio is the simulated account. Positions are keyed by symbol and never hold a
// zero or negative quantity.
type Portfolio struct {
	ID           string
	Cash         float64
	StartingCash float64
	RealizedPnL  float64
	Positions    map[string]Position
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewPortfolio returns an empty portfolio funded with cash.
func NewPortfolio(id string, cash float64, now time.Time) Portfolio {
	return Portfolio{
		ID:           id,
		Cash:         cash,
		StartingCash: cash,
		Positions:    map[string]Position{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Symbols returns the held symbols in lexical order.
func (p Portfolio) Symbols() []string {
	out := make([]string, 0, len(p.Positions))
	for s := range p.Positions {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Change describes what ApplyFill did to a single position.
type Change struct {
	Symbol   string
	Side     Side
	Quantity float64
	Price    float64
	Notional float64
	// RealizedPnL is the profit booked by this fill. Always zero for buys.
	RealizedPnL float64
	// Position is the resulting holding. Closed is set when it dropped to zero.
	Position Position
	Closed   bool
}

// ApplyFill returns the portfolio after trading quantity of symbol at price. p is
// left untouched. Buys must be covered by cash and sells by the held quantity.
//
// Buys blend into the weighted average cost. Sells realize (price - avg cost) per unit
// and keep the average cost of what remains.
func (p Portfolio) ApplyFill(side Side, symbol string, quantity, price float64, at time.Time) (Portfolio, Change, error) {
	if !side.Valid() {
		return p, Change{}, errors.NewErrorDetails("invalid side", string(errors.GeneralBadRequestError), "side")
	}
	if quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return p, Change{}, errors.NewErrorDetails("invalid quantity", string(errors.ErrInvalidQuantity), "quantity")
	}
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return p, Change{}, errors.NewErrorDetails("invalid price", string(errors.ErrInvalidPrice), "price")
	}

	next := p.clone()
	next.UpdatedAt = at
	notional := quantity * price
	pos := next.Positions[symbol]
	pos.Symbol = symbol
	pos.UpdatedAt = at

	change := Change{Symbol: symbol, Side: side, Quantity: quantity, Price: price, Notional: notional}

	switch side {
	case SideBuy:
		cash := next.Cash - notional
		if cash < -Epsilon {
			return p, Change{}, errors.NewErrorDetails("insufficient cash", string(errors.ErrInsufficientCash), "quantity")
		}
		total := pos.Quantity + quantity
		pos.AvgCost = (pos.CostBasis() + notional) / total
		pos.Quantity = total
		next.Cash = clampZero(cash)
		next.Positions[symbol] = pos

	case SideSell:
		if pos.Quantity < quantity-Epsilon {
			return p, Change{}, errors.NewErrorDetails("insufficient position", string(errors.ErrInsufficientPosition), "quantity")
		}
		change.RealizedPnL = (price - pos.AvgCost) * quantity
		next.RealizedPnL += change.RealizedPnL
		next.Cash += notional
		pos.Quantity -= quantity
		if pos.Quantity <= Epsilon {
			pos.Quantity = 0
			change.Closed = true
			delete(next.Positions, symbol)
		} else {
			next.Positions[symbol] = pos
		}
	}

	change.Position = pos
	return next, change, nil
}

// Valuation marks a portfolio to market.
type Valuation struct {
	Cash          float64
	MarketValue   float64
	Equity        float64
	RealizedPnL   float64
	UnrealizedPnL float64
	// Unpriced lists held symbols without a mark. They are valued at cost.
	Unpriced []string
}

// Value marks every position with marks[symbol].
func (p Portfolio) Value(marks map[string]float64) Valuation {
	v := Valuation{Cash: p.Cash, RealizedPnL: p.RealizedPnL}
	for _, symbol := range p.Symbols() {
		pos := p.Positions[symbol]
		mark, ok := marks[symbol]
		if !ok {
			v.Unpriced = append(v.Unpriced, symbol)
			mark = pos.AvgCost
		}
		value := pos.Quantity * mark
		v.MarketValue += value
		v.UnrealizedPnL += value - pos.CostBasis()
	}
	v.Equity = v.Cash + v.MarketValue
	return v
}

// Snapshot is a valuation recorded at a point in time.
type Snapshot struct {
	PortfolioID string
	Valuation
	TakenAt time.Time
}

// Fill is a simulated execution of a signal.
type Fill struct {
	ID          string
	SignalID    uuid.UUID
	PortfolioID string
	Symbol      string
	Side        Side
	Quantity    float64
	Price       float64
	Notional    float64
	RealizedPnL float64
	FillModel   string
	FilledAt    time.Time
}

func (p Portfolio) clone() Portfolio {
	c := p
	c.Positions = make(map[string]Position, len(p.Positions))
	for k, v := range p.Positions {
		c.Positions[k] = v
	}
	return c
}

// clampZero maps the rounding band [-Epsilon, 0) to zero.
func clampZero(v float64) float64 {
	if v < 0 && v >= -Epsilon {
		return 0
	}
	return v
}
