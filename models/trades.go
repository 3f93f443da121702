package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofrs/uuid"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"

	"github.com/fundedfirm/gofund/utils/date"
)

// Trade is a realized fill reported by the trading platform. Rows are
// immutable once persisted; corrections come in as new trades.
type Trade struct {
	ID         string          `json:"id" gorm:"primary_key" sql:"type:uuid;"`
	CreatedAt  time.Time       `json:"created_at"`
	AccountID  string          `json:"account_id" gorm:"not null;index" sql:"type:uuid;"`
	TradeDate  date.Date       `json:"trade_date" gorm:"not null" sql:"type:date"`
	PnL        decimal.Decimal `json:"pnl" gorm:"type:decimal;not null"`
	Instrument string          `json:"instrument" sql:"type:text"`
	Qty        int64           `json:"qty"`
	Meta       string          `json:"meta" sql:"type:text"`
}

func (t *Trade) BeforeCreate(scope *gorm.Scope) error {
	if t.ID == "" {
		t.ID = uuid.Must(uuid.NewV4()).String()
	}
	return scope.SetColumn("id", t.ID)
}

func (t Trade) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.TradeDate, validation.By(validDate)),
		validation.Field(&t.Qty, validation.Min(0)),
	)
}

func validDate(value interface{}) error {
	d, ok := value.(date.Date)
	if !ok || !d.IsValid() {
		return validation.NewError("invalid_date", "trade_date must be a valid calendar date")
	}
	return nil
}
