package equity

import (
	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/fundedfirm/gofund/gferrors"
	"github.com/fundedfirm/gofund/models"
	"github.com/fundedfirm/gofund/models/enum"
	"github.com/fundedfirm/gofund/utils/constants"
)

// Update is the tracker's report back to the ingestion caller, so the
// outcome (including suspension) can be surfaced without a second read.
type Update struct {
	Balance     decimal.Decimal `json:"balance"`
	PeakEquity  decimal.Decimal `json:"peak_equity"`
	DrawdownPct decimal.Decimal `json:"drawdown_pct"`
	Suspended   bool            `json:"suspended"`
}

type EquityService interface {
	// ApplyRealizedPnL rolls deltaPnL into the account's balance,
	// advances the peak-equity high-water mark, evaluates the
	// trailing drawdown against the program limit, and persists
	// balance/peak/status in the supplied transaction. The caller
	// must already hold the account row FOR UPDATE.
	ApplyRealizedPnL(acct *models.Account, deltaPnL decimal.Decimal) (*Update, error)
	WithTx(tx *gorm.DB) EquityService
}

type equityService struct {
	tx *gorm.DB
}

func Service() EquityService {
	return &equityService{}
}

func (s *equityService) WithTx(tx *gorm.DB) EquityService {
	s.tx = tx
	return s
}

func (s *equityService) ApplyRealizedPnL(acct *models.Account, deltaPnL decimal.Decimal) (*Update, error) {
	newBalance := acct.CurrentBalance.Add(deltaPnL)

	// peak equity is a high-water mark over the account's entire
	// history; it never resets
	peak := acct.PeakEquity
	if newBalance.GreaterThan(peak) {
		peak = newBalance
	}

	drawdown := models.TrailingDrawdownPct(peak, newBalance)

	status := acct.Status
	if status == enum.Active && drawdown.GreaterThan(constants.MaxDrawdownPct()) {
		// the breach itself is the disqualifying event; a later
		// recovery of the percentage does not undo it
		status = enum.Suspended
	}

	updates := map[string]interface{}{
		"current_balance": newBalance,
		"peak_equity":     peak,
		"status":          status,
	}

	if err := s.tx.Model(acct).Updates(updates).Error; err != nil {
		return nil, gferrors.InternalServerError.WithError(
			errors.Wrap(err, "failed to persist equity update"))
	}

	acct.CurrentBalance = newBalance
	acct.PeakEquity = peak
	acct.Status = status

	return &Update{
		Balance:     newBalance,
		PeakEquity:  peak,
		DrawdownPct: drawdown,
		Suspended:   status == enum.Suspended,
	}, nil
}
