package gfreg

import (
	"github.com/alpacahq/gopaca/clock"

	"github.com/fundedfirm/gofund/service/account"
	"github.com/fundedfirm/gofund/service/eligibility"
	"github.com/fundedfirm/gofund/service/equity"
	"github.com/fundedfirm/gofund/service/ledger"
	"github.com/fundedfirm/gofund/service/payout"
	"github.com/fundedfirm/gofund/service/performance"
	"github.com/fundedfirm/gofund/service/policy"
	"github.com/fundedfirm/gofund/service/registry"
	"github.com/fundedfirm/gofund/utils/random"
)

// Services is the production service registry.
var Services registry.Registry = &gfRegistry{
	rng: random.NewSource(clock.Now().UnixNano()),
}

type gfRegistry struct {
	rng random.Source
}

func (r *gfRegistry) Account() account.AccountService {
	return account.Service()
}

func (r *gfRegistry) Ledger() ledger.LedgerService {
	return ledger.Service()
}

func (r *gfRegistry) Equity() equity.EquityService {
	return equity.Service()
}

func (r *gfRegistry) Performance() performance.PerformanceService {
	return performance.Service()
}

func (r *gfRegistry) Eligibility() eligibility.EligibilityService {
	return eligibility.Service(r.Performance())
}

func (r *gfRegistry) Payout() payout.PayoutService {
	return payout.Service(r.Eligibility(), r.rng)
}

func (r *gfRegistry) Policy() policy.PolicyService {
	return policy.Service()
}
