package account

import (
	"github.com/gofrs/uuid"

	"github.com/fundedfirm/gofund/gferrors"
	"github.com/fundedfirm/gofund/rest/api"
	"github.com/fundedfirm/gofund/rest/api/controller/entities"
	"github.com/fundedfirm/gofund/rest/api/controller/parameter"
)

// Get returns the account snapshot with the drawdown derived from the
// stored peak and balance.
func Get(ctx api.Context) {
	accountID, err := parameter.GetParamAccountID(ctx)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	srv := ctx.Services().Account().WithTx(ctx.Tx())

	acct, err := srv.GetByID(accountID)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	ctx.Respond(entities.AccountSnapshotFor(acct))
}

type createRequest struct {
	OwnerID string `json:"owner_id"`
}

// Create opens an evaluation account. Bound on the admin API since
// account provisioning follows challenge purchase, not self-signup.
func Create(ctx api.Context) {
	cReq := createRequest{}
	if err := ctx.Read(&cReq); err != nil {
		ctx.RespondError(gferrors.RequestBodyLoadFailure.WithError(err))
		return
	}

	ownerID, err := uuid.FromString(cReq.OwnerID)
	if err != nil {
		ctx.RespondError(gferrors.InvalidRequestParam.WithMsg("owner_id is invalid format"))
		return
	}

	srv := ctx.Services().Account().WithTx(ctx.Tx())

	acct, err := srv.Create(ownerID)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	ctx.Respond(entities.AccountSnapshotFor(acct))
}

// GetMetrics reports the rolling performance statistics along with the
// payout eligibility verdict for the same database snapshot.
func GetMetrics(ctx api.Context) {
	accountID, err := parameter.GetParamAccountID(ctx)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	acct, err := ctx.Services().Account().WithTx(ctx.Tx()).GetByID(accountID)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	perf := ctx.Services().Performance().WithTx(ctx.Tx())

	consistency, err := perf.ComputeConsistency(acct.IDAsUUID())
	if err != nil {
		ctx.RespondError(err)
		return
	}

	gain, err := perf.ComputeProfitGain(acct)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	res, err := ctx.Services().Eligibility().WithTx(ctx.Tx()).Check(acct)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	ctx.Respond(&entities.Metrics{
		TotalTradingDays: consistency.TotalDays,
		ProfitableDays:   consistency.ProfitableDays,
		ConsistencyPct:   consistency.ConsistencyPct.Round(2),
		ProfitGain:       gain.Value.Round(2),
		ProfitGainPct:    gain.Pct.Round(2),
		Eligible:         res.Eligible,
		EligibleAmount:   res.EligibleAmount.Round(2),
		Reason:           res.Reason,
	})
}
