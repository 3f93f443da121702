package eligibility

import (
	"github.com/alpacahq/gopaca/clock"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"

	"github.com/fundedfirm/gofund/models"
	"github.com/fundedfirm/gofund/service/performance"
	"github.com/fundedfirm/gofund/utils/constants"
)

// Result reports whether the account may withdraw and how much. The
// reason code is an additive extension for clients; callers deciding
// payouts only consult Eligible and EligibleAmount.
type Result struct {
	Eligible       bool            `json:"eligible"`
	EligibleAmount decimal.Decimal `json:"eligible_amount"`
	Reason         string          `json:"reason,omitempty"`
}

type EligibilityService interface {
	// Check combines account status with the rolling performance
	// metrics and the policy thresholds. A suspended account is
	// never eligible regardless of metrics.
	Check(acct *models.Account) (*Result, error)
	// CappedAmount clamps a requested withdrawal to the current
	// eligible amount, scaled down while the account is in
	// probation. Zero means reject. It is a pure function of
	// current account state and never consults request history.
	CappedAmount(acct *models.Account, requested decimal.Decimal) (decimal.Decimal, error)
	WithTx(tx *gorm.DB) EligibilityService
}

type eligibilityService struct {
	tx          *gorm.DB
	performance performance.PerformanceService
}

func Service(performance performance.PerformanceService) EligibilityService {
	return &eligibilityService{performance: performance}
}

func (s *eligibilityService) WithTx(tx *gorm.DB) EligibilityService {
	s.tx = tx
	s.performance = s.performance.WithTx(tx)
	return s
}

func ineligible(reason string) *Result {
	return &Result{
		Eligible:       false,
		EligibleAmount: decimal.Zero,
		Reason:         reason,
	}
}

func (s *eligibilityService) Check(acct *models.Account) (*Result, error) {
	if acct.Suspended() {
		return ineligible("account is suspended"), nil
	}

	consistency, err := s.performance.ComputeConsistency(acct.IDAsUUID())
	if err != nil {
		return nil, err
	}

	if consistency.TotalDays < constants.MinTradingDays() {
		return ineligible("insufficient trading days"), nil
	}

	if consistency.ConsistencyPct.LessThan(constants.MinConsistencyPct()) {
		return ineligible("consistency below minimum"), nil
	}

	gain, err := s.performance.ComputeProfitGain(acct)
	if err != nil {
		return nil, err
	}

	if gain.Value.LessThan(constants.MinProfit()) {
		return ineligible("insufficient realized profit"), nil
	}

	// the ceiling for withdrawal is what has actually been earned
	// above the starting balance
	return &Result{
		Eligible:       true,
		EligibleAmount: gain.Value,
	}, nil
}

func (s *eligibilityService) CappedAmount(acct *models.Account, requested decimal.Decimal) (decimal.Decimal, error) {
	res, err := s.Check(acct)
	if err != nil {
		return decimal.Zero, err
	}

	if !res.Eligible {
		return decimal.Zero, nil
	}

	allowed := res.EligibleAmount

	// probation: young accounts may only withdraw a fraction of
	// their eligible profit
	if acct.AgeDays(clock.Now()) < constants.ProbationDays() {
		allowed = allowed.Mul(constants.ProbationPayoutFraction())
	}

	if requested.LessThan(allowed) {
		allowed = requested
	}

	if !allowed.GreaterThan(decimal.Zero) {
		return decimal.Zero, nil
	}

	return allowed, nil
}
