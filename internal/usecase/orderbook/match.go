package orderbook

import (
	orderbookv1 "github.com/quantfeed/matchcore/internal/domain/orderbook/v1"
)

// marketable reports whether an incoming order at limit may trade against
// a resting level at levelPrice. Prices worse than the limit are never
// touched.
func marketable(side orderbookv1.Side, limit, levelPrice uint64) bool {
	if side == orderbookv1.SideBuy {
		return limit >= levelPrice
	}
	return limit <= levelPrice
}

// planFills walks the opposite side in priority order and computes every
// fill the taker would produce, without mutating anything. Levels are
// consumed best price first, orders within a level oldest first. The
// resulting fills drive both the audit trail and the subsequent commit:
// applying them front-first via ReduceOrRemoveFront reproduces the walk
// exactly.
func planFills(taker *orderbookv1.Order, opposite *BookSide, clock func() int64) []orderbookv1.Fill {
	rest := taker.Rest
	var fills []orderbookv1.Fill

	for _, level := range opposite.LevelsInPriorityOrder() {
		if rest == 0 {
			break
		}
		if !marketable(taker.Side, taker.Price, level.Price) {
			// levels only get worse from here
			break
		}

		for _, resting := range level.Orders {
			if rest == 0 {
				break
			}

			qty := min(rest, resting.Rest)
			rest -= qty
			fills = append(fills, orderbookv1.Fill{
				TakerID:    taker.ID,
				TakerSide:  taker.Side,
				TakerPrice: taker.Price,
				TakerQty:   taker.Qty,
				TakerRest:  rest,
				MakerID:    resting.ID,
				MakerRest:  resting.Rest - qty,
				Price:      level.Price,
				Qty:        qty,
				Timestamp:  clock(),
			})
		}
	}

	return fills
}
