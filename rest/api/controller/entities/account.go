package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundedfirm/gofund/models"
)

// AccountSnapshot is the wire form of an evaluation account. Monetary
// fields are rounded to cents here and only here; the stored values
// keep full precision.
type AccountSnapshot struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"owner_id"`
	Status          string          `json:"status"`
	StartingBalance decimal.Decimal `json:"starting_balance"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	PeakEquity      decimal.Decimal `json:"peak_equity"`
	DrawdownPct     decimal.Decimal `json:"drawdown_pct"`
	CreatedAt       time.Time       `json:"created_at"`
}

func AccountSnapshotFor(acct *models.Account) *AccountSnapshot {
	return &AccountSnapshot{
		ID:              acct.ID,
		OwnerID:         acct.OwnerID,
		Status:          string(acct.Status),
		StartingBalance: acct.StartingBalance.Round(2),
		CurrentBalance:  acct.CurrentBalance.Round(2),
		PeakEquity:      acct.PeakEquity.Round(2),
		DrawdownPct:     acct.DrawdownPct().Round(2),
		CreatedAt:       acct.CreatedAt,
	}
}

// Metrics is the wire form of the rolling performance statistics plus
// the eligibility verdict for the same snapshot.
type Metrics struct {
	TotalTradingDays int             `json:"total_trading_days"`
	ProfitableDays   int             `json:"profitable_days"`
	ConsistencyPct   decimal.Decimal `json:"consistency_pct"`
	ProfitGain       decimal.Decimal `json:"profit_gain"`
	ProfitGainPct    decimal.Decimal `json:"profit_gain_pct"`
	Eligible         bool            `json:"eligible"`
	EligibleAmount   decimal.Decimal `json:"eligible_amount"`
	Reason           string          `json:"reason,omitempty"`
}
