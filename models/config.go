package models

import (
	"time"
)

// Config is the singleton row of runtime-tunable settlement policy.
// It is seeded explicitly at process start (service/policy), never
// lazily on first access.
type Config struct {
	ID                uint      `json:"-" gorm:"primary_key"`
	UpdatedAt         time.Time `json:"updated_at"`
	SettlementDaysMin int       `json:"settlement_days_min" gorm:"not null"`
	SettlementDaysMax int       `json:"settlement_days_max" gorm:"not null"`
}

const (
	DefaultSettlementDaysMin = 7
	DefaultSettlementDaysMax = 14
)
