package game

import (
	"math/rand"
	"testing"
)

func TestCompactRemovesExactlyTagged(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(40)
		items := make([]int, n)
		for i := range items {
			items[i] = i * 3
		}

		// Tag a random subset of size 1..n
		drop := make(map[int]struct{})
		for _, i := range rng.Perm(n)[:1+rng.Intn(n)] {
			drop[items[i]] = struct{}{}
		}

		var want []int
		for _, it := range items {
			if _, gone := drop[it]; !gone {
				want = append(want, it)
			}
		}

		got := compact(items, drop)
		if len(got) != len(want) {
			t.Fatalf("trial %d: len = %d, want %d", trial, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("trial %d: got %v, want %v", trial, got, want)
			}
		}
	}
}

func TestCompactEmptyDrop(t *testing.T) {
	items := []int{1, 2, 3}
	got := compact(items, map[int]struct{}{})
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("compact = %v, want unchanged", got)
	}
}
