package marketdatav1

import "github.com/shopspring/decimal"

// TickType discriminates the payloads on the synthetic stream.
type TickType string

const (
	// TickTypeQuote is a two-sided quote update.
	TickTypeQuote TickType = "quote"
	// TickTypeTrade is a synthetic print.
	TickTypeTrade TickType = "trade"
)

// Tick is any payload carried on the synthetic market-data stream.
type Tick interface {
	TickType() TickType
}

// Quote is a two-sided quote around the simulated mid price.
type Quote struct {
	Type      TickType        `json:"type"`
	Timestamp int64           `json:"timestamp"`
	BidPx     decimal.Decimal `json:"bid_px"`
	BidSz     uint64          `json:"bid_sz"`
	AskPx     decimal.Decimal `json:"ask_px"`
	AskSz     uint64          `json:"ask_sz"`
}

// TickType implements Tick.
func (q Quote) TickType() TickType {
	return TickTypeQuote
}

// Trade is a synthetic print at the simulated price.
type Trade struct {
	Type      TickType        `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Px        decimal.Decimal `json:"px"`
	Sz        uint64          `json:"sz"`
}

// TickType implements Tick.
func (t Trade) TickType() TickType {
	return TickTypeTrade
}
