package models

import (
	"time"

	"github.com/fundedfirm/gofund/models/enum"
	"github.com/gofrs/uuid"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type Account struct {
	ID              string             `json:"id" gorm:"primary_key" sql:"type:uuid;"`
	OwnerID         string             `json:"owner_id" gorm:"not null;unique_index" sql:"type:uuid;"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       *time.Time         `json:"deleted_at"`
	Status          enum.AccountStatus `json:"status" gorm:"type:varchar(16);not null"`
	StartingBalance decimal.Decimal    `json:"starting_balance" gorm:"type:decimal;not null"`
	CurrentBalance  decimal.Decimal    `json:"current_balance" gorm:"type:decimal;not null"`
	PeakEquity      decimal.Decimal    `json:"peak_equity" gorm:"type:decimal;not null"`
	Trades          []Trade            `json:"-" gorm:"ForeignKey:AccountID"`
	DailyStats      []DailyStats       `json:"-" gorm:"ForeignKey:AccountID"`
	PayoutRequests  []PayoutRequest    `json:"-" gorm:"ForeignKey:AccountID"`
}

func (a *Account) BeforeCreate(scope *gorm.Scope) error {
	if a.ID == "" {
		a.ID = uuid.Must(uuid.NewV4()).String()
	}
	return scope.SetColumn("id", a.ID)
}

func (a *Account) IDAsUUID() uuid.UUID {
	id, _ := uuid.FromString(a.ID)
	return id
}

func (a *Account) OwnerIDAsUUID() uuid.UUID {
	id, _ := uuid.FromString(a.OwnerID)
	return id
}

// Suspended reports whether the account has been disqualified,
// either by the drawdown tracker or by an admin.
func (a *Account) Suspended() bool {
	return a.Status == enum.Suspended
}

// ProfitGain is the realized gain above the starting balance. It may
// be negative; the eligibility gate floors it.
func (a *Account) ProfitGain() decimal.Decimal {
	return a.CurrentBalance.Sub(a.StartingBalance)
}

// DrawdownPct is the account's current trailing drawdown.
func (a *Account) DrawdownPct() decimal.Decimal {
	return TrailingDrawdownPct(a.PeakEquity, a.CurrentBalance)
}

// AgeDays is the number of whole days since the account was created,
// used by the probation payout policy.
func (a *Account) AgeDays(now time.Time) int {
	return int(now.Sub(a.CreatedAt).Hours() / 24)
}

var hundred = decimal.New(100, 0)

// TrailingDrawdownPct measures the percentage retracement of balance
// below the all-time peak. A non-positive peak yields zero rather
// than dividing by it.
func TrailingDrawdownPct(peakEquity, balance decimal.Decimal) decimal.Decimal {
	if !peakEquity.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return peakEquity.Sub(balance).Div(peakEquity).Mul(hundred)
}
