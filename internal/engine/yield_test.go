package engine

import (
	"testing"

	"github.com/MikeGii/vomm-sub000/internal/rng"
)

func TestDecideYieldMultiplierScripted(t *testing.T) {
	cases := []struct {
		name    string
		kitchen KitchenSize
		rolls   []float64
		want    int
	}{
		{"none always 1x", KitchenNone, []float64{0.0}, 1},
		{"small hit", KitchenSmall, []float64{0.19}, 2},
		{"small miss", KitchenSmall, []float64{0.20}, 1},
		{"medium hit", KitchenMedium, []float64{0.39}, 2},
		{"medium miss", KitchenMedium, []float64{0.40}, 1},
		{"large triple", KitchenLarge, []float64{0.29, 0.99}, 3},
		{"large double after triple miss", KitchenLarge, []float64{0.30, 0.59}, 2},
		{"large both miss", KitchenLarge, []float64{0.30, 0.60}, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := &rng.Scripted{Values: c.rolls}
			if got := DecideYieldMultiplier(c.kitchen, src); got != c.want {
				t.Fatalf("multiplier=%d, want %d", got, c.want)
			}
		})
	}
}

// The large kitchen first rolls 3x and only on a miss rolls an independent 2x.
// A roll sequence that would pass the 2x check must not matter when the 3x
// check already hit.
func TestDecideYieldMultiplierLargeRollOrder(t *testing.T) {
	src := &rng.Scripted{Values: []float64{0.10, 0.10}}
	if got := DecideYieldMultiplier(KitchenLarge, src); got != 3 {
		t.Fatalf("multiplier=%d, want 3 (first roll wins)", got)
	}
}

func TestDecideYieldMultiplierLargeDistribution(t *testing.T) {
	const trials = 10_000
	src := rng.NewSeeded(42)

	counts := map[int]int{}
	for i := 0; i < trials; i++ {
		counts[DecideYieldMultiplier(KitchenLarge, src)]++
	}

	// Expected: 3x 30%, 2x 0.7*0.6 = 42%, 1x 28%.
	check := func(mult int, want float64) {
		got := float64(counts[mult]) / trials
		if got < want-0.02 || got > want+0.02 {
			t.Errorf("P(%dx)=%.4f, want %.2f +/- 0.02", mult, got, want)
		}
	}
	check(3, 0.30)
	check(2, 0.42)
	check(1, 0.28)
}
