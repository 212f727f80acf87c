package services

import (
	"math/rand"
	"testing"

	"riches/models"

	"github.com/stretchr/testify/require"
)

func symbolPool(codes ...string) []models.ScratchSymbol {
	pool := make([]models.ScratchSymbol, 0, len(codes))
	for i, code := range codes {
		s := models.ScratchSymbol{Code: code, Weight: 1, IsActive: true}
		s.ID = uint(i + 1)
		pool = append(pool, s)
	}
	return pool
}

func TestBuildLayoutWin(t *testing.T) {
	pool := symbolPool("cherry", "bell", "star", "seven", "crown")

	for seed := int64(0); seed < 300; seed++ {
		rng := rand.New(rand.NewSource(seed))
		grid, err := BuildLayout(OutcomeWin, "seven", pool, rng)
		require.NoError(t, err, "seed %d", seed)
		require.Len(t, grid, 6)

		counts := map[string]int{}
		for _, code := range grid {
			require.NotEmpty(t, code)
			counts[code]++
		}

		require.Equal(t, 3, counts["seven"], "seed %d: winner occurrences", seed)
		require.Equal(t, "seven", FindTriple(grid), "seed %d: winning triple", seed)
		for code, n := range counts {
			if code != "seven" {
				require.Less(t, n, 3, "seed %d: %s must not form a second triple", seed, code)
			}
		}
	}
}

func TestBuildLayoutLose(t *testing.T) {
	pool := symbolPool("cherry", "bell", "star", "seven", "crown")

	for seed := int64(0); seed < 300; seed++ {
		rng := rand.New(rand.NewSource(seed))
		grid, err := BuildLayout(OutcomeLose, "", pool, rng)
		require.NoError(t, err, "seed %d", seed)
		require.Len(t, grid, 6)
		require.Empty(t, FindTriple(grid), "seed %d: grid %v", seed, grid)

		counts := map[string]int{}
		for _, code := range grid {
			counts[code]++
		}
		require.Len(t, counts, 3, "seed %d: three distinct symbols", seed)
		for code, n := range counts {
			require.Equal(t, 2, n, "seed %d: %s pair", seed, code)
		}
	}
}

func TestBuildLayoutWinNeedsFourSymbols(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pool := symbolPool("cherry", "bell", "seven")

	_, err := BuildLayout(OutcomeWin, "seven", pool, rng)
	require.ErrorIs(t, err, ErrInsufficientSymbols)
}

func TestBuildLayoutLoseNeedsThreeSymbols(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pool := symbolPool("cherry", "bell")

	_, err := BuildLayout(OutcomeLose, "", pool, rng)
	require.ErrorIs(t, err, ErrInsufficientSymbols)
}

func TestBuildLayoutIgnoresInactiveSymbols(t *testing.T) {
	pool := symbolPool("cherry", "bell", "star", "seven")
	pool = append(pool, models.ScratchSymbol{Code: "ghost", Weight: 1, IsActive: false})
	pool = append(pool, models.ScratchSymbol{Code: "zero", Weight: 0, IsActive: true})

	for seed := int64(0); seed < 50; seed++ {
		grid, err := BuildLayout(OutcomeWin, "seven", pool, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		for _, code := range grid {
			require.NotEqual(t, "ghost", code)
			require.NotEqual(t, "zero", code)
		}
	}
}

func TestFindTriple(t *testing.T) {
	require.Equal(t, "a", FindTriple([]string{"a", "a", "a", "b", "c", "d"}))
	require.Equal(t, "b", FindTriple([]string{"a", "c", "d", "b", "b", "b"}))
	// zigzag diagonals
	require.Equal(t, "x", FindTriple([]string{"x", "a", "x", "b", "x", "c"}))
	require.Equal(t, "y", FindTriple([]string{"a", "y", "b", "y", "c", "y"}))
	require.Empty(t, FindTriple([]string{"a", "b", "c", "b", "c", "a"}))
}

func TestPickSymbolRequiresWeight(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pool := []models.ScratchSymbol{{Code: "flat", Weight: 0, IsActive: true}}

	_, err := PickSymbol(pool, rng)
	require.ErrorIs(t, err, ErrInsufficientSymbols)
}
