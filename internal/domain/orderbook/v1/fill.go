package orderbookv1

// Fill records one trade between an incoming (taker) order and a resting
// (maker) order. One fill per resting order touched; fills for two makers
// are never merged even when their quantities are equal.
type Fill struct {
	TakerID    uint64 `json:"takerID"`
	TakerSide  Side   `json:"takerSide"`
	TakerPrice uint64 `json:"takerPrice"` // taker's limit price
	TakerQty   uint64 `json:"takerQty"`   // taker's original quantity
	TakerRest  uint64 `json:"takerRest"`  // taker remaining after this fill
	MakerID    uint64 `json:"makerID"`
	MakerRest  uint64 `json:"makerRest"` // maker remaining after this fill
	Price      uint64 `json:"price"`     // resting level price, the execution price
	Qty        uint64 `json:"qty"`
	Timestamp  int64  `json:"timestamp"`
}

// TakerIsFilled checks if the taker order is exhausted after this fill.
func (f *Fill) TakerIsFilled() bool {
	return f.TakerRest == 0
}

// MakerIsFilled checks if the maker order is exhausted after this fill.
func (f *Fill) MakerIsFilled() bool {
	return f.MakerRest == 0
}
