package services

import (
	"fmt"
	"log"
	"math/rand"

	"riches/database"
	"riches/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Guards against a fat-fingered weight turning one segment into a near-certain
// win drowning out the rest of the table.
const maxTotalWeight = 1_000_000

// PickPrize draws one prize by relative weight. Iteration follows the input
// order, so with a seeded rng the selection is reproducible.
func PickPrize(prizes []models.Prize, rng *rand.Rand) (*models.Prize, error) {
	if len(prizes) == 0 {
		return nil, ErrNoPrizesAvailable
	}

	total := 0
	for _, p := range prizes {
		if p.Weight > 0 {
			total += p.Weight
		}
	}
	if total <= 0 {
		return nil, ErrInvalidPrizeConfig
	}

	r := rng.Intn(total)
	for i := range prizes {
		if prizes[i].Weight <= 0 {
			continue
		}
		r -= prizes[i].Weight
		if r < 0 {
			return &prizes[i], nil
		}
	}
	return nil, ErrInvalidPrizeConfig
}

// ValidatePrizeConfig is run at boot so a bad table is caught before anyone
// plays against it.
func ValidatePrizeConfig(game string, prizes []models.Prize) error {
	total := 0
	for _, p := range prizes {
		if p.Weight < 0 {
			return fmt.Errorf("%w: prize %q has negative weight", ErrInvalidPrizeConfig, p.Label)
		}
		if p.MaxWins != nil && *p.MaxWins < 0 {
			return fmt.Errorf("%w: prize %q has negative max wins", ErrInvalidPrizeConfig, p.Label)
		}
		total += p.Weight
	}
	if total <= 0 {
		return fmt.Errorf("%w: %s table has no positive weight", ErrInvalidPrizeConfig, game)
	}
	if total > maxTotalWeight {
		return fmt.Errorf("%w: %s table weight %d exceeds %d", ErrInvalidPrizeConfig, game, total, maxTotalWeight)
	}
	return nil
}

// ValidateConfiguredPrizes checks every game's live table at boot and refuses
// to start on a broken one.
func ValidateConfiguredPrizes() {
	for _, game := range []string{models.KindSpin, models.KindScratch} {
		var prizes []models.Prize
		if err := database.DB.
			Where("game = ? AND is_active = true", game).
			Order("id").
			Find(&prizes).Error; err != nil {
			log.Fatalf("❌ Failed to load %s prize table: %v", game, err)
		}
		if len(prizes) == 0 {
			log.Printf("⚠️  No active prizes configured for %s", game)
			continue
		}
		if err := ValidatePrizeConfig(game, prizes); err != nil {
			log.Fatalf("❌ Bad %s prize table: %v", game, err)
		}
	}
}

// EligiblePrizes loads a game's active prizes under row locks together with
// their live win counts. Locking the prize rows serializes concurrent plays
// racing for the last capped win.
func EligiblePrizes(tx *gorm.DB, game string) ([]models.Prize, map[uint]int64, error) {
	var prizes []models.Prize
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("game = ? AND is_active = true AND weight > 0", game).
		Order("id").
		Find(&prizes).Error
	if err != nil {
		return nil, nil, err
	}

	counts := make(map[uint]int64, len(prizes))
	if len(prizes) > 0 {
		ids := make([]uint, 0, len(prizes))
		for _, p := range prizes {
			ids = append(ids, p.ID)
		}
		var rows []struct {
			PrizeID uint
			N       int64
		}
		err = tx.Model(&models.PrizeWin{}).
			Select("prize_id, count(*) as n").
			Where("prize_id IN ?", ids).
			Group("prize_id").
			Scan(&rows).Error
		if err != nil {
			return nil, nil, err
		}
		for _, row := range rows {
			counts[row.PrizeID] = row.N
		}
	}

	return prizes, counts, nil
}

func filterEligible(prizes []models.Prize, counts map[uint]int64) []models.Prize {
	eligible := make([]models.Prize, 0, len(prizes))
	for _, p := range prizes {
		if p.MaxWins != nil && counts[p.ID] >= int64(*p.MaxWins) {
			continue
		}
		eligible = append(eligible, p)
	}
	return eligible
}

// drawSeries runs the single-play draw n times, tracking win counts in memory
// so a cap holds within the batch without re-querying storage per iteration.
func drawSeries(prizes []models.Prize, counts map[uint]int64, n int, rng *rand.Rand) ([]models.Prize, error) {
	running := make(map[uint]int64, len(counts))
	for id, c := range counts {
		running[id] = c
	}

	picks := make([]models.Prize, 0, n)
	for i := 0; i < n; i++ {
		prize, err := PickPrize(filterEligible(prizes, running), rng)
		if err != nil {
			return nil, err
		}
		picks = append(picks, *prize)
		running[prize.ID]++
	}
	return picks, nil
}

// AwardPlay selects and records one prize win inside the caller's transaction.
// The eligibility re-check, the win insert, and the reward posting all share
// that transaction, closing the check-cap/increment-cap race.
func AwardPlay(tx *gorm.DB, user *models.User, order *models.Order, rng *rand.Rand) (*models.PrizeWin, *models.Prize, error) {
	prizes, counts, err := EligiblePrizes(tx, order.Kind)
	if err != nil {
		return nil, nil, err
	}

	prize, err := PickPrize(filterEligible(prizes, counts), rng)
	if err != nil {
		return nil, nil, err
	}

	win := models.PrizeWin{
		UserID:      user.ID,
		PrizeID:     prize.ID,
		OrderID:     order.ID,
		RewardType:  prize.RewardType,
		RewardValue: prize.RewardValue,
	}
	if err := tx.Create(&win).Error; err != nil {
		return nil, nil, err
	}

	cash, points := rewardDeltas(prize)
	if err := postReward(tx, user, order, cash, points, 1); err != nil {
		return nil, nil, err
	}
	return &win, prize, nil
}

// AwardBatch is the "reveal all" variant: n draws in one transaction, bulk
// inserts, and a single balance update from the summed deltas instead of one
// update per play.
func AwardBatch(tx *gorm.DB, user *models.User, order *models.Order, n int, rng *rand.Rand) ([]models.PrizeWin, []models.Prize, error) {
	prizes, counts, err := EligiblePrizes(tx, order.Kind)
	if err != nil {
		return nil, nil, err
	}

	picks, err := drawSeries(prizes, counts, n, rng)
	if err != nil {
		return nil, nil, err
	}

	wins := make([]models.PrizeWin, 0, len(picks))
	cashTotal := decimal.Zero
	var pointsTotal int64
	for _, prize := range picks {
		wins = append(wins, models.PrizeWin{
			UserID:      user.ID,
			PrizeID:     prize.ID,
			OrderID:     order.ID,
			RewardType:  prize.RewardType,
			RewardValue: prize.RewardValue,
		})
		cash, points := rewardDeltas(&prize)
		cashTotal = cashTotal.Add(cash)
		pointsTotal += points
	}

	if err := tx.Create(&wins).Error; err != nil {
		return nil, nil, err
	}
	if err := postReward(tx, user, order, cashTotal, pointsTotal, n); err != nil {
		return nil, nil, err
	}
	return wins, picks, nil
}

func rewardDeltas(prize *models.Prize) (decimal.Decimal, int64) {
	switch prize.RewardType {
	case models.RewardCash:
		return prize.RewardValue, 0
	case models.RewardPoints:
		return decimal.Zero, prize.RewardValue.IntPart()
	default:
		return decimal.Zero, 0
	}
}

func postReward(tx *gorm.DB, user *models.User, order *models.Order, cash decimal.Decimal, points int64, plays int) error {
	if !cash.IsPositive() && points <= 0 {
		return nil
	}

	before := user.WalletBalance
	user.WalletBalance = user.WalletBalance.Add(cash)
	user.Points += points
	if err := tx.Save(user).Error; err != nil {
		return err
	}

	return tx.Create(&models.Transaction{
		UserID:        user.ID,
		OrderID:       order.ID,
		TrxType:       models.TrxPrize,
		Amount:        cash,
		Points:        points,
		BalanceBefore: before,
		BalanceAfter:  user.WalletBalance,
		Note:          fmt.Sprintf("Prize winnings over %d play(s) on order %s", plays, order.Ref),
	}).Error
}
