package models

import (
	"time"

	"github.com/fundedfirm/gofund/models/enum"
	"github.com/fundedfirm/gofund/utils/date"
	"github.com/gofrs/uuid"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type PayoutRequest struct {
	ID        string            `json:"id" gorm:"primary_key" sql:"type:uuid;"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	AccountID string            `json:"account_id" gorm:"not null;index" sql:"type:uuid;"`
	Status    enum.PayoutStatus `json:"status" gorm:"type:varchar(16);not null"`
	// the capped amount actually queued for settlement
	RequestedAmount decimal.Decimal `json:"requested_amount" gorm:"type:decimal;not null"`
	// what the gate said the account could have withdrawn at request
	// time; frozen here for the audit trail and never recomputed
	EligibleAmountAtRequest decimal.Decimal `json:"eligible_amount_at_request" gorm:"type:decimal;not null"`
	SettlementETA           date.Date       `json:"settlement_eta" gorm:"not null" sql:"type:date"`
	Notes                   string          `json:"notes" sql:"type:text"`
}

func (p *PayoutRequest) BeforeCreate(scope *gorm.Scope) error {
	if p.ID == "" {
		p.ID = uuid.Must(uuid.NewV4()).String()
	}
	return scope.SetColumn("id", p.ID)
}

func (p *PayoutRequest) IDAsUUID() uuid.UUID {
	id, _ := uuid.FromString(p.ID)
	return id
}

func (p *PayoutRequest) AccountIDAsUUID() uuid.UUID {
	id, _ := uuid.FromString(p.AccountID)
	return id
}

// Decided reports whether the request has reached a terminal state.
func (p *PayoutRequest) Decided() bool {
	return p.Status != enum.PayoutQueued
}
