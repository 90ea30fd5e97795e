package giveaway

import (
	"math/rand"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Selector draws winners from a participant pool. The random source is
// injectable so draws can be replayed exactly in tests.
type Selector struct {
	rng *rand.Rand
}

// NewSelector builds a selector around src, falling back to a time-seeded
// source when src is nil.
func NewSelector(src rand.Source) *Selector {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Selector{rng: rand.New(src)}
}

// Pick returns up to count winners drawn uniformly without replacement. A
// forced winner is always included, counts against the requested total and
// is never drawn twice. When the pool is smaller than the remaining slots
// every eligible member wins.
func (s *Selector) Pick(pool []snowflake.ID, count int, forced *snowflake.ID) []snowflake.ID {
	eligible := make([]snowflake.ID, 0, len(pool))
	for _, id := range pool {
		if forced != nil && id == *forced {
			continue
		}
		eligible = append(eligible, id)
	}

	winners := make([]snowflake.ID, 0, count)
	if forced != nil {
		winners = append(winners, *forced)
		count--
	}
	if count < 0 {
		count = 0
	}

	s.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	if count > len(eligible) {
		count = len(eligible)
	}
	return append(winners, eligible[:count]...)
}

// PickOne draws a single winner, used by reroll.
func (s *Selector) PickOne(pool []snowflake.ID) (snowflake.ID, bool) {
	if len(pool) == 0 {
		return 0, false
	}
	return pool[s.rng.Intn(len(pool))], true
}
