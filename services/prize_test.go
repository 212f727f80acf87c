package services

import (
	"math/rand"
	"testing"

	"riches/models"

	"github.com/stretchr/testify/require"
)

func intp(i int) *int { return &i }

func prizeTable() []models.Prize {
	jackpot := models.Prize{Label: "Jackpot", RewardType: models.RewardCash, Weight: 1, MaxWins: intp(1)}
	jackpot.ID = 1
	tenner := models.Prize{Label: "Tenner", RewardType: models.RewardCash, Weight: 9, MaxWins: intp(3)}
	tenner.ID = 2
	lose := models.Prize{Label: "Better luck", RewardType: models.RewardLose, Weight: 90}
	lose.ID = 3
	return []models.Prize{jackpot, tenner, lose}
}

func TestPickPrizeEmptyPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := PickPrize(nil, rng)
	require.ErrorIs(t, err, ErrNoPrizesAvailable)
}

func TestPickPrizeZeroTotalWeight(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	prizes := []models.Prize{{Label: "A", Weight: 0}, {Label: "B", Weight: 0}}

	_, err := PickPrize(prizes, rng)
	require.ErrorIs(t, err, ErrInvalidPrizeConfig)
}

func TestPickPrizeDeterministicWithSeed(t *testing.T) {
	prizes := prizeTable()

	first, err := PickPrize(prizes, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	second, err := PickPrize(prizes, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
}

func TestPickPrizeFollowsWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	heavy := models.Prize{Label: "Heavy", Weight: 9}
	heavy.ID = 1
	light := models.Prize{Label: "Light", Weight: 1}
	light.ID = 2
	prizes := []models.Prize{heavy, light}

	draws := 10000
	heavyHits := 0
	for i := 0; i < draws; i++ {
		prize, err := PickPrize(prizes, rng)
		require.NoError(t, err)
		if prize.ID == heavy.ID {
			heavyHits++
		}
	}

	require.Greater(t, heavyHits, 8500)
	require.Less(t, heavyHits, 9500)
}

func TestPickPrizeSkipsZeroWeight(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	dead := models.Prize{Label: "Dead", Weight: 0}
	dead.ID = 1
	live := models.Prize{Label: "Live", Weight: 5}
	live.ID = 2

	for i := 0; i < 100; i++ {
		prize, err := PickPrize([]models.Prize{dead, live}, rng)
		require.NoError(t, err)
		require.Equal(t, live.ID, prize.ID)
	}
}

func TestFilterEligibleDropsExhaustedCaps(t *testing.T) {
	prizes := prizeTable()
	counts := map[uint]int64{1: 1, 2: 2}

	eligible := filterEligible(prizes, counts)

	ids := make([]uint, 0, len(eligible))
	for _, p := range eligible {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []uint{2, 3}, ids)
}

func TestDrawSeriesHonoursCapsWithinBatch(t *testing.T) {
	prizes := prizeTable()

	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		picks, err := drawSeries(prizes, map[uint]int64{}, 200, rng)
		require.NoError(t, err)
		require.Len(t, picks, 200)

		wins := map[uint]int{}
		for _, p := range picks {
			wins[p.ID]++
		}
		require.LessOrEqual(t, wins[1], 1, "seed %d: jackpot cap", seed)
		require.LessOrEqual(t, wins[2], 3, "seed %d: tenner cap", seed)
	}
}

func TestDrawSeriesFailsWhenPoolExhausts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	only := models.Prize{Label: "Only", Weight: 1, MaxWins: intp(1)}
	only.ID = 1

	_, err := drawSeries([]models.Prize{only}, map[uint]int64{}, 2, rng)
	require.ErrorIs(t, err, ErrNoPrizesAvailable)
}

func TestDrawSeriesStartsFromStoredCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	prizes := prizeTable()

	// jackpot already won once before this batch
	picks, err := drawSeries(prizes, map[uint]int64{1: 1}, 100, rng)
	require.NoError(t, err)

	for _, p := range picks {
		require.NotEqual(t, uint(1), p.ID)
	}
}

func TestValidatePrizeConfig(t *testing.T) {
	require.NoError(t, ValidatePrizeConfig(models.KindSpin, prizeTable()))

	negative := []models.Prize{{Label: "Bad", Weight: -1}}
	require.ErrorIs(t, ValidatePrizeConfig(models.KindSpin, negative), ErrInvalidPrizeConfig)

	zero := []models.Prize{{Label: "Zero", Weight: 0}}
	require.ErrorIs(t, ValidatePrizeConfig(models.KindSpin, zero), ErrInvalidPrizeConfig)

	huge := []models.Prize{{Label: "Huge", Weight: maxTotalWeight + 1}}
	require.ErrorIs(t, ValidatePrizeConfig(models.KindSpin, huge), ErrInvalidPrizeConfig)

	badCap := []models.Prize{{Label: "Cap", Weight: 1, MaxWins: intp(-1)}}
	require.ErrorIs(t, ValidatePrizeConfig(models.KindSpin, badCap), ErrInvalidPrizeConfig)
}
