package giveaway

import (
	"math/rand"
	"testing"

	"github.com/disgoorg/snowflake/v2"
)

func pool(ids ...uint64) []snowflake.ID {
	out := make([]snowflake.ID, len(ids))
	for i, id := range ids {
		out[i] = snowflake.ID(id)
	}
	return out
}

func TestSelectorPick(t *testing.T) {
	forced := snowflake.ID(42)

	tests := []struct {
		name       string
		pool       []snowflake.ID
		count      int
		forced     *snowflake.ID
		wantLen    int
		wantFirst  *snowflake.ID
		wantUnique bool
	}{
		{
			name:    "count below pool",
			pool:    pool(1, 2, 3, 4, 5),
			count:   2,
			wantLen: 2,
		},
		{
			name:    "count above pool takes everyone",
			pool:    pool(1, 2),
			count:   5,
			wantLen: 2,
		},
		{
			name:    "empty pool",
			pool:    nil,
			count:   3,
			wantLen: 0,
		},
		{
			name:      "forced winner always included",
			pool:      pool(1, 2, 3),
			count:     2,
			forced:    &forced,
			wantLen:   2,
			wantFirst: &forced,
		},
		{
			name:      "forced winner not drawn twice",
			pool:      pool(42, 1),
			count:     2,
			forced:    &forced,
			wantLen:   2,
			wantFirst: &forced,
		},
		{
			name:      "forced winner alone fills count one",
			pool:      pool(1, 2, 3),
			count:     1,
			forced:    &forced,
			wantLen:   1,
			wantFirst: &forced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(rand.NewSource(1))
			got := s.Pick(tt.pool, tt.count, tt.forced)
			if len(got) != tt.wantLen {
				t.Fatalf("Pick() len = %d, want %d", len(got), tt.wantLen)
			}
			if tt.wantFirst != nil && (len(got) == 0 || got[0] != *tt.wantFirst) {
				t.Errorf("Pick() first = %v, want %v", got, *tt.wantFirst)
			}
			seen := make(map[snowflake.ID]struct{})
			for _, id := range got {
				if _, dup := seen[id]; dup {
					t.Errorf("Pick() returned %v twice", id)
				}
				seen[id] = struct{}{}
			}
		})
	}
}

func TestSelectorPickDeterministic(t *testing.T) {
	a := NewSelector(rand.NewSource(7)).Pick(pool(1, 2, 3, 4, 5, 6), 3, nil)
	b := NewSelector(rand.NewSource(7)).Pick(pool(1, 2, 3, 4, 5, 6), 3, nil)
	if len(a) != len(b) {
		t.Fatalf("seeded draws differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("seeded draws differ at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSelectorPickOne(t *testing.T) {
	s := NewSelector(rand.NewSource(1))

	if _, ok := s.PickOne(nil); ok {
		t.Error("PickOne(nil) ok = true, want false")
	}

	winner, ok := s.PickOne(pool(9))
	if !ok || winner != snowflake.ID(9) {
		t.Errorf("PickOne() = %v, %v, want 9, true", winner, ok)
	}
}
