package performance

import (
	"github.com/gofrs/uuid"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"

	"github.com/fundedfirm/gofund/gferrors"
	"github.com/fundedfirm/gofund/models"
)

// Consistency summarizes an account's trading-day history. A day with
// trades but zero net P&L counts as a trading day, not a profitable one.
type Consistency struct {
	TotalDays      int             `json:"total_trading_days"`
	ProfitableDays int             `json:"profitable_days"`
	ConsistencyPct decimal.Decimal `json:"consistency_pct"`
}

// ProfitGain is the realized gain above the starting balance, in
// absolute and percentage terms.
type ProfitGain struct {
	Value decimal.Decimal `json:"profit_gain"`
	Pct   decimal.Decimal `json:"profit_gain_pct"`
}

// PerformanceService derives rolling statistics from the ledger. All
// operations are pure reads and safe to run concurrently with
// ingestion, at the cost of a possibly stale snapshot.
type PerformanceService interface {
	ComputeConsistency(accountID uuid.UUID) (*Consistency, error)
	ComputeProfitGain(acct *models.Account) (*ProfitGain, error)
	WithTx(tx *gorm.DB) PerformanceService
}

type performanceService struct {
	tx *gorm.DB
}

func Service() PerformanceService {
	return &performanceService{}
}

func (s *performanceService) WithTx(tx *gorm.DB) PerformanceService {
	s.tx = tx
	return s
}

var hundred = decimal.New(100, 0)

func (s *performanceService) ComputeConsistency(accountID uuid.UUID) (*Consistency, error) {
	var total, profitable int

	q := s.tx.
		Model(&models.DailyStats{}).
		Where("account_id = ?", accountID.String()).
		Count(&total)

	if q.Error != nil {
		return nil, gferrors.InternalServerError.WithError(q.Error)
	}

	q = s.tx.
		Model(&models.DailyStats{}).
		Where("account_id = ?", accountID.String()).
		Where("is_profitable_day = ?", true).
		Count(&profitable)

	if q.Error != nil {
		return nil, gferrors.InternalServerError.WithError(q.Error)
	}

	// an account that has not traded yet has 0% consistency, not a
	// division error
	pct := decimal.Zero
	if total > 0 {
		pct = decimal.New(int64(profitable), 0).
			Div(decimal.New(int64(total), 0)).
			Mul(hundred)
	}

	return &Consistency{
		TotalDays:      total,
		ProfitableDays: profitable,
		ConsistencyPct: pct,
	}, nil
}

func (s *performanceService) ComputeProfitGain(acct *models.Account) (*ProfitGain, error) {
	// starting balance is a fixed positive program constant by
	// construction; anything else is a corrupted row
	if !acct.StartingBalance.GreaterThan(decimal.Zero) {
		return nil, gferrors.InternalServerError.WithMsg("account has non-positive starting balance")
	}

	gain := acct.ProfitGain()

	return &ProfitGain{
		Value: gain,
		Pct:   gain.Div(acct.StartingBalance).Mul(hundred),
	}, nil
}
