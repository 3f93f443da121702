package payout

import (
	"github.com/fundedfirm/gofund/gferrors"
	"github.com/fundedfirm/gofund/rest/api"
	"github.com/fundedfirm/gofund/rest/api/controller/entities"
	"github.com/fundedfirm/gofund/rest/api/controller/parameter"
)

// Create submits a payout request. The eligibility gate, the cap and
// the settlement ETA draw are all evaluated under the account row lock
// inside the payout service.
func Create(ctx api.Context) {
	accountID, err := parameter.GetParamAccountID(ctx)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	pReq := entities.PayoutRequestBody{}
	if err := ctx.Read(&pReq); err != nil {
		ctx.RespondError(gferrors.RequestBodyLoadFailure.WithError(err))
		return
	}

	if err := pReq.Verify(); err != nil {
		ctx.RespondError(err)
		return
	}

	srv := ctx.Services().Payout().WithTx(ctx.Tx())

	req, err := srv.Request(accountID, pReq.Amount)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	ctx.Respond(entities.PayoutViewFor(req))
}

func List(ctx api.Context) {
	accountID, err := parameter.GetParamAccountID(ctx)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	srv := ctx.Services().Payout().WithTx(ctx.Tx())

	reqs, err := srv.ListForAccount(accountID)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	ctx.Respond(entities.PayoutViewsFor(reqs))
}

func Get(ctx api.Context) {
	payoutID, err := parameter.GetParamPayoutID(ctx)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	srv := ctx.Services().Payout().WithTx(ctx.Tx())

	req, err := srv.GetByID(payoutID)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	// traders only see their own requests
	if ctx.Session().Permission == api.PermissionTrading &&
		!ctx.Session().Authorized(req.AccountIDAsUUID()) {
		ctx.RespondError(gferrors.NotFound)
		return
	}

	ctx.Respond(entities.PayoutViewFor(req))
}
