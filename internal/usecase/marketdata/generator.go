package marketdata

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	marketdatav1 "github.com/quantfeed/matchcore/internal/domain/marketdata/v1"
)

const (
	// spreadRatio is the quoted spread as a fraction of the mid price.
	spreadRatio = 0.001
	priceScale  = 4 // decimal places on published prices
)

// Generator produces a synthetic quote/trade stream from a driftless
// geometric random walk. It exists for demonstration downstream of the
// matching core and shares no state with it. Roughly four quotes are
// emitted per trade.
type Generator struct {
	price      float64
	volatility float64
	dt         float64
	rng        *rand.Rand
}

// NewGenerator creates a generator starting at initialPrice.
func NewGenerator(initialPrice, volatility, dt float64) *Generator {
	return NewGeneratorWithSeed(initialPrice, volatility, dt, time.Now().UnixNano())
}

// NewGeneratorWithSeed creates a generator with a fixed seed, for
// reproducible streams.
func NewGeneratorWithSeed(initialPrice, volatility, dt float64, seed int64) *Generator {
	return &Generator{
		price:      initialPrice,
		volatility: volatility,
		dt:         dt,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// updatePrice advances the walk by one step.
func (g *Generator) updatePrice() {
	diffusion := g.volatility * g.rng.NormFloat64() * math.Sqrt(g.dt)
	g.price += g.price * diffusion
}

// Next advances the walk and emits the next tick.
func (g *Generator) Next() marketdatav1.Tick {
	g.updatePrice()

	if g.rng.Intn(5) < 4 {
		spread := g.price * spreadRatio
		return marketdatav1.Quote{
			Type:      marketdatav1.TickTypeQuote,
			Timestamp: time.Now().UnixNano(),
			BidPx:     decimal.NewFromFloat(g.price - spread/2).Round(priceScale),
			BidSz:     uint64(g.rng.Intn(10)+1) * 100,
			AskPx:     decimal.NewFromFloat(g.price + spread/2).Round(priceScale),
			AskSz:     uint64(g.rng.Intn(10)+1) * 100,
		}
	}

	return marketdatav1.Trade{
		Type:      marketdatav1.TickTypeTrade,
		Timestamp: time.Now().UnixNano(),
		Px:        decimal.NewFromFloat(g.price).Round(priceScale),
		Sz:        uint64(g.rng.Intn(5)+1) * 10,
	}
}
