package constants

import (
	"strconv"

	"github.com/alpacahq/gopaca/env"
	"github.com/alpacahq/gopaca/log"
	"github.com/shopspring/decimal"
)

// this package is for the evaluation program's policy knobs. they are
// read from the environment so operators can retune a deployment
// without a code change, and so the engine never hard-codes thresholds.

func decimalVar(name string) decimal.Decimal {
	v, err := decimal.NewFromString(env.GetVar(name))
	if err != nil {
		log.Error(
			"invalid constant set",
			"name", name,
			"value", env.GetVar(name),
			"error", err)
		return decimal.Zero
	}
	return v
}

func intVar(name string) int {
	v, err := strconv.Atoi(env.GetVar(name))
	if err != nil {
		log.Error(
			"invalid constant set",
			"name", name,
			"value", env.GetVar(name),
			"error", err)
		return 0
	}
	return v
}

// StartingBalance is the fixed balance every evaluation account
// is created with.
func StartingBalance() decimal.Decimal {
	return decimalVar("STARTING_BALANCE")
}

// MaxDrawdownPct suspends an account when its trailing drawdown
// from peak equity exceeds it.
func MaxDrawdownPct() decimal.Decimal {
	return decimalVar("MAX_DRAWDOWN_PCT")
}

// MinTradingDays gates payout eligibility.
func MinTradingDays() int {
	return intVar("MIN_TRADING_DAYS")
}

// MinConsistencyPct gates payout eligibility.
func MinConsistencyPct() decimal.Decimal {
	return decimalVar("MIN_CONSISTENCY_PCT")
}

// MinProfit is the realized gain an account must hold above its
// starting balance before any payout.
func MinProfit() decimal.Decimal {
	return decimalVar("MIN_PROFIT")
}

// ProbationDays is the account age below which payouts are scaled
// down by ProbationPayoutFraction.
func ProbationDays() int {
	return intVar("PROBATION_DAYS")
}

// ProbationPayoutFraction of the eligible amount is withdrawable
// while an account is still in probation.
func ProbationPayoutFraction() decimal.Decimal {
	return decimalVar("PROBATION_PAYOUT_FRACTION")
}
