package orderbookv1

import (
	depthv1 "github.com/quantfeed/matchcore/internal/domain/depth/v1"
)

// Book defines the interface for the matching core. SubmitLimit is the sole
// state-changing entry point; calls are fully serialized by the implementation.
type Book interface {
	// SubmitLimit matches an incoming limit order against the opposite side
	// and rests any residual. It returns the allocated order id and the
	// fills produced, in the order they were generated.
	SubmitLimit(side Side, price, qty uint64) (uint64, []Fill, error)
	BestBid() (uint64, bool)
	BestAsk() (uint64, bool)
	Depth(levels int) *depthv1.Snapshot
}
