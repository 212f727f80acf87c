package services

import (
	"math/rand"

	"riches/models"
)

const (
	OutcomeWin  = "win"
	OutcomeLose = "lose"

	gridSize           = 6
	loseShuffleRetries = 10
)

// The four recognized winning triples on the 2x3 grid: both rows and the two
// zigzag diagonals.
var triplePatterns = [4][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{0, 4, 2},
	{3, 1, 5},
}

// PickSymbol draws one active symbol by weight. Purely visual; it never
// influences the decided outcome.
func PickSymbol(symbols []models.ScratchSymbol, rng *rand.Rand) (*models.ScratchSymbol, error) {
	total := 0
	for _, s := range symbols {
		if s.Weight > 0 {
			total += s.Weight
		}
	}
	if total <= 0 {
		return nil, ErrInsufficientSymbols
	}

	r := rng.Intn(total)
	for i := range symbols {
		if symbols[i].Weight <= 0 {
			continue
		}
		r -= symbols[i].Weight
		if r < 0 {
			return &symbols[i], nil
		}
	}
	return nil, ErrInsufficientSymbols
}

// BuildLayout renders a 6-cell grid consistent with an already-decided
// outcome. A win places the winning symbol on exactly one recognized triple
// and fills the rest with distinct other symbols, so no second triple can
// appear. A lose grid is three pairs shuffled until no triple matches, with a
// deterministic fallback if the reshuffle budget runs out.
func BuildLayout(outcome string, winningSymbol string, pool []models.ScratchSymbol, rng *rand.Rand) ([]string, error) {
	active := make([]models.ScratchSymbol, 0, len(pool))
	for _, s := range pool {
		if s.IsActive && s.Weight > 0 {
			active = append(active, s)
		}
	}

	if outcome == OutcomeWin {
		return buildWinLayout(winningSymbol, active, rng)
	}
	return buildLoseLayout(active, rng)
}

func buildWinLayout(winner string, active []models.ScratchSymbol, rng *rand.Rand) ([]string, error) {
	others := make([]string, 0, len(active))
	for _, s := range active {
		if s.Code != winner {
			others = append(others, s.Code)
		}
	}
	if winner == "" || len(others) < 3 {
		return nil, ErrInsufficientSymbols
	}

	rng.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})

	pattern := triplePatterns[rng.Intn(len(triplePatterns))]
	grid := make([]string, gridSize)
	for _, cell := range pattern {
		grid[cell] = winner
	}

	fill := 0
	for cell := 0; cell < gridSize; cell++ {
		if grid[cell] == "" {
			grid[cell] = others[fill]
			fill++
		}
	}
	return grid, nil
}

func buildLoseLayout(active []models.ScratchSymbol, rng *rand.Rand) ([]string, error) {
	if len(active) < 3 {
		return nil, ErrInsufficientSymbols
	}

	picks := rng.Perm(len(active))[:3]
	codes := [3]string{
		active[picks[0]].Code,
		active[picks[1]].Code,
		active[picks[2]].Code,
	}

	grid := []string{codes[0], codes[0], codes[1], codes[1], codes[2], codes[2]}
	for attempt := 0; attempt < loseShuffleRetries; attempt++ {
		rng.Shuffle(gridSize, func(i, j int) {
			grid[i], grid[j] = grid[j], grid[i]
		})
		if FindTriple(grid) == "" {
			return grid, nil
		}
	}

	// a b c / b c a can never line up a triple
	return []string{codes[0], codes[1], codes[2], codes[1], codes[2], codes[0]}, nil
}

// FindTriple reports the symbol completing any recognized pattern, or "".
func FindTriple(grid []string) string {
	for _, pattern := range triplePatterns {
		a, b, c := grid[pattern[0]], grid[pattern[1]], grid[pattern[2]]
		if a != "" && a == b && b == c {
			return a
		}
	}
	return ""
}
