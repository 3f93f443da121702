package models

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"

	"github.com/fundedfirm/gofund/utils/date"
)

// DailyStats is the per-calendar-day aggregate of an account's
// realized P&L. One row per (account, date); ingestion accumulates
// into it rather than replacing it.
type DailyStats struct {
	ID        string    `json:"id" gorm:"primary_key" sql:"type:uuid;"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	AccountID string    `json:"account_id" gorm:"not null;unique_index:idx_daily_stats_account_date" sql:"type:uuid;"`
	Date      date.Date `json:"date" gorm:"not null;unique_index:idx_daily_stats_account_date" sql:"type:date"`
	DayPnL    decimal.Decimal `json:"day_pnl" gorm:"type:decimal;not null"`
	// balance snapshot as of the batch that last touched this day
	ClosedEquity decimal.Decimal `json:"closed_equity" gorm:"type:decimal;not null"`
	// always recomputed from DayPnL, never set independently
	IsProfitableDay bool `json:"is_profitable_day" gorm:"not null"`
}

func (d *DailyStats) BeforeCreate(scope *gorm.Scope) error {
	if d.ID == "" {
		d.ID = uuid.Must(uuid.NewV4()).String()
	}
	return scope.SetColumn("id", d.ID)
}

// Accumulate folds pnl into the day's aggregate and recomputes the
// profitable flag from the new total.
func (d *DailyStats) Accumulate(pnl, closedEquity decimal.Decimal) {
	d.DayPnL = d.DayPnL.Add(pnl)
	d.ClosedEquity = closedEquity
	d.IsProfitableDay = d.DayPnL.GreaterThan(decimal.Zero)
}
