package registry

import (
	"github.com/fundedfirm/gofund/service/account"
	"github.com/fundedfirm/gofund/service/eligibility"
	"github.com/fundedfirm/gofund/service/equity"
	"github.com/fundedfirm/gofund/service/ledger"
	"github.com/fundedfirm/gofund/service/payout"
	"github.com/fundedfirm/gofund/service/performance"
	"github.com/fundedfirm/gofund/service/policy"
)

type Registry interface {
	Account() account.AccountService
	Ledger() ledger.LedgerService
	Equity() equity.EquityService
	Performance() performance.PerformanceService
	Eligibility() eligibility.EligibilityService
	Payout() payout.PayoutService
	Policy() policy.PolicyService
}
