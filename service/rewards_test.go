package service

import (
	"testing"
	"time"

	"foxyweb/models"

	"github.com/stretchr/testify/assert"
)

func TestDrawPrize_CumulativeBoundaries(t *testing.T) {
	tests := []struct {
		draw int
		want int64
	}{
		{0, 1_000_000},
		{1, 100_000},
		{10, 100_000},
		{11, 10_000},
		{31, 1_000},
		{80, 1_000},
		{81, 500},
		{180, 500},
		{181, 250},
		{330, 250},
	}

	for _, tt := range tests {
		got := DrawPrize(RoulettePrizes, &sequenceRandom{values: []int{tt.draw}})
		assert.Equal(t, tt.want, got, "draw %d", tt.draw)
	}
}

func TestDrawPrize_Distribution(t *testing.T) {
	const trials = 200_000
	rng := DefaultRandomSource()

	counts := map[int64]int{}
	for i := 0; i < trials; i++ {
		counts[DrawPrize(RoulettePrizes, rng)]++
	}

	total := 0
	for _, p := range RoulettePrizes {
		total += p.Weight
	}
	for _, p := range RoulettePrizes {
		expected := float64(p.Weight) / float64(total)
		observed := float64(counts[p.Amount]) / trials
		assert.InDelta(t, expected, observed, 0.01, "prize %d", p.Amount)
	}
}

func TestDailyReward_Bounds(t *testing.T) {
	tiers := []models.PremiumTier{"", models.PremiumTierOne, models.PremiumTierTwo, models.PremiumTierThree}

	for _, tier := range tiers {
		maximum := int64(DailyRewardCeiling * tier.DailyMultiplier())
		for draw := 0; draw < DailyRewardCeiling; draw += 7 {
			reward := DailyReward(&sequenceRandom{values: []int{draw}}, tier)
			assert.GreaterOrEqual(t, reward, int64(DailyRewardMinimum))
			assert.LessOrEqual(t, reward, maximum)
			assert.Zero(t, reward%10, "tier %q draw %d gave %d", tier, draw, reward)
		}

		top := DailyReward(&sequenceRandom{values: []int{DailyRewardCeiling - 1}}, tier)
		assert.Equal(t, maximum, top)
	}
}

func TestDailyWindow(t *testing.T) {
	assert.True(t, DailyAvailable(nil, testNow))
	assert.Zero(t, TimeUntilDaily(nil, testNow))

	last := testNow.Add(-DailyCooldown + time.Minute)
	assert.False(t, DailyAvailable(&last, testNow))
	assert.Equal(t, time.Minute, TimeUntilDaily(&last, testNow))
}
