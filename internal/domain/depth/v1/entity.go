package depthv1

// PriceLevel is one aggregated level of the published depth.
type PriceLevel struct {
	Price  uint64 `json:"price"`
	Qty    uint64 `json:"qty"`
	Orders int    `json:"orders"`
}

// Snapshot is the top-of-book view published to the depth cache.
// Bids are ordered best (highest) first, asks best (lowest) first.
type Snapshot struct {
	Pair      string       `json:"pair"`
	Timestamp int64        `json:"timestamp"`
	Bids      []PriceLevel `json:"bids"`
	Asks      []PriceLevel `json:"asks"`
}

// BestBid returns the highest bid level, or nil when the bid side is empty.
func (s *Snapshot) BestBid() *PriceLevel {
	if len(s.Bids) == 0 {
		return nil
	}
	return &s.Bids[0]
}

// BestAsk returns the lowest ask level, or nil when the ask side is empty.
func (s *Snapshot) BestAsk() *PriceLevel {
	if len(s.Asks) == 0 {
		return nil
	}
	return &s.Asks[0]
}
