package main

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/event"
)

const minPrice = 0.01

// walker moves every symbol by a lognormal step per tick.
type walker struct {
	rng        *rand.Rand
	symbols    []string
	prices     map[string]float64
	volatility float64
	source     string
}

func newWalker(seeds map[string]float64, volatility float64, source string, seed int64) *walker {
	symbols := make([]string, 0, len(seeds))
	prices := make(map[string]float64, len(seeds))
	for s, p := range seeds {
		symbols = append(symbols, s)
		prices[s] = p
	}
	sort.Strings(symbols)

	return &walker{
		rng:        rand.New(rand.NewSource(seed)),
		symbols:    symbols,
		prices:     prices,
		volatility: volatility,
		source:     source,
	}
}

// next advances every symbol once and returns one tick per symbol, in symbol order.
func (w *walker) next(at time.Time) []event.TickEvent {
	ticks := make([]event.TickEvent, 0, len(w.symbols))
	for _, s := range w.symbols {
		p := w.prices[s] * math.Exp(w.volatility*w.rng.NormFloat64())
		p = math.Max(minPrice, math.Round(p*100)/100)
		w.prices[s] = p

		volume := math.Round(w.rng.Float64()*10*1000) / 1000
		ticks = append(ticks, event.TickEvent{
			Symbol:    s,
			Price:     p,
			Volume:    volume,
			Timestamp: at.UTC(),
			Source:    w.source,
		})
	}
	return ticks
}

// parseSymbols reads "BTC-USD=65000,ETH-USD=3500".
func parseSymbols(spec string) (map[string]float64, error) {
	out := map[string]float64{}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, price, ok := strings.Cut(part, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("symbol %q must look like NAME=PRICE", part)
		}
		p, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
		if err != nil || p <= 0 {
			return nil, fmt.Errorf("symbol %q needs a positive start price", part)
		}
		out[strings.TrimSpace(name)] = p
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no symbols given")
	}
	return out, nil
}
