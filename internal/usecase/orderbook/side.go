package orderbook

import (
	"errors"
	"fmt"
	"sort"

	orderbookv1 "github.com/quantfeed/matchcore/internal/domain/orderbook/v1"
)

// ErrLevelNotFound is returned when reducing a price level that is not in the book.
var ErrLevelNotFound = errors.New("price level not found")

// BookSide holds every resting level for one side of the book, keyed by
// price. Priority is structural: bids iterate highest price first, asks
// lowest price first. The two sides are independent collections so the
// matching step always works against exactly one of them.
type BookSide struct {
	side   orderbookv1.Side
	levels map[uint64]*orderbookv1.Level
}

// NewBookSide creates an empty side.
func NewBookSide(side orderbookv1.Side) *BookSide {
	return &BookSide{
		side:   side,
		levels: make(map[uint64]*orderbookv1.Level),
	}
}

// Side returns which half of the book this is.
func (s *BookSide) Side() orderbookv1.Side {
	return s.side
}

// BestPrice returns the current best price for this side, or false if empty.
func (s *BookSide) BestPrice() (uint64, bool) {
	if len(s.levels) == 0 {
		return 0, false
	}

	var best uint64
	first := true
	for price := range s.levels {
		if first {
			best = price
			first = false
			continue
		}
		if s.better(price, best) {
			best = price
		}
	}
	return best, true
}

// LevelsInPriorityOrder returns the side's levels ordered best price first.
func (s *BookSide) LevelsInPriorityOrder() []*orderbookv1.Level {
	levels := make([]*orderbookv1.Level, 0, len(s.levels))
	for _, level := range s.levels {
		levels = append(levels, level)
	}
	sort.Slice(levels, func(i, j int) bool {
		return s.better(levels[i].Price, levels[j].Price)
	})
	return levels
}

// Insert appends the order to the FIFO at its price, creating the level if absent.
func (s *BookSide) Insert(o *orderbookv1.Order) error {
	if o.Side != s.side {
		return fmt.Errorf("%w: side %s, order %s", orderbookv1.ErrSideMismatch, s.side, o.Side)
	}

	level, exists := s.levels[o.Price]
	if !exists {
		level = orderbookv1.NewLevel(o.Price)
		s.levels[o.Price] = level
	}
	return level.Append(o)
}

// ReduceOrRemoveFront decrements the rest of the oldest order at price by
// qty. An exhausted order leaves its level and an exhausted level leaves
// the book immediately.
func (s *BookSide) ReduceOrRemoveFront(price, qty uint64) error {
	level, exists := s.levels[price]
	if !exists {
		return fmt.Errorf("%w: price %d", ErrLevelNotFound, price)
	}

	if _, err := level.ReduceFront(qty); err != nil {
		return err
	}
	if level.IsEmpty() {
		delete(s.levels, price)
	}
	return nil
}

// Level returns the level at price, or nil if absent.
func (s *BookSide) Level(price uint64) *orderbookv1.Level {
	return s.levels[price]
}

// LevelCount returns the number of populated price levels.
func (s *BookSide) LevelCount() int {
	return len(s.levels)
}

// TotalVolume returns the summed rest of every order on this side.
func (s *BookSide) TotalVolume() uint64 {
	var total uint64
	for _, level := range s.levels {
		total += level.Volume
	}
	return total
}

// better reports whether price a has priority over price b on this side.
func (s *BookSide) better(a, b uint64) bool {
	if s.side == orderbookv1.SideBuy {
		return a > b
	}
	return a < b
}
