package service

import (
	"math"
	"math/rand/v2"

	"foxyweb/models"
)

const (
	// DailyRewardCeiling bounds the base daily draw, exclusive
	DailyRewardCeiling = 8000
	// DailyRewardMinimum is the smallest daily reward ever credited
	DailyRewardMinimum = 1000
)

// Prize is a roulette prize and its relative weight
type Prize struct {
	Amount int64
	Weight int
}

// RoulettePrizes is the roulette table in draw order
var RoulettePrizes = []Prize{
	{Amount: 1_000_000, Weight: 1},
	{Amount: 100_000, Weight: 10},
	{Amount: 10_000, Weight: 20},
	{Amount: 1_000, Weight: 50},
	{Amount: 500, Weight: 100},
	{Amount: 250, Weight: 150},
}

// DrawPrize picks a prize with probability weight/totalWeight. It draws r in
// [0, total) and returns the first prize whose cumulative weight exceeds r.
func DrawPrize(prizes []Prize, rng RandomSource) int64 {
	total := 0
	for _, p := range prizes {
		total += p.Weight
	}
	if total <= 0 {
		return 0
	}

	r := rng.IntN(total)
	cumulative := 0
	for _, p := range prizes {
		cumulative += p.Weight
		if r < cumulative {
			return p.Amount
		}
	}
	return prizes[len(prizes)-1].Amount
}

// DailyReward computes a daily reward for the given premium tier. The result
// is always a multiple of 10 in [DailyRewardMinimum, 8000 * multiplier].
func DailyReward(rng RandomSource, tier models.PremiumTier) int64 {
	base := roundToTen(float64(rng.IntN(DailyRewardCeiling)))
	amount := roundToTen(float64(base) * tier.DailyMultiplier())
	if amount < DailyRewardMinimum {
		amount = DailyRewardMinimum
	}
	return amount
}

func roundToTen(v float64) int64 {
	return int64(math.Round(v/10)) * 10
}

type mathRandSource struct{}

func (mathRandSource) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultRandomSource draws from math/rand/v2's global generator
func DefaultRandomSource() RandomSource {
	return mathRandSource{}
}
