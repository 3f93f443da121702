package admin

import (
	"github.com/alpacahq/gopaca/log"

	"github.com/fundedfirm/gofund/gferrors"
	"github.com/fundedfirm/gofund/rest/api"
	"github.com/fundedfirm/gofund/rest/api/controller/entities"
	"github.com/fundedfirm/gofund/rest/api/controller/parameter"
)

// ListQueue returns queued payout requests oldest-first for review.
func ListQueue(ctx api.Context) {
	srv := ctx.Services().Payout().WithTx(ctx.Tx())

	reqs, err := srv.ListQueue()
	if err != nil {
		ctx.RespondError(err)
		return
	}

	ctx.Respond(entities.PayoutViewsFor(reqs))
}

// ListApproved feeds the settlement worker.
func ListApproved(ctx api.Context) {
	srv := ctx.Services().Payout().WithTx(ctx.Tx())

	reqs, err := srv.ListApproved()
	if err != nil {
		ctx.RespondError(err)
		return
	}

	ctx.Respond(entities.PayoutViewsFor(reqs))
}

func Approve(ctx api.Context) {
	adminID, err := parameter.GetParamAdminID(ctx)
	if err != nil {
		ctx.RespondError(gferrors.Unauthorized.WithError(err))
		return
	}

	payoutID, err := parameter.GetParamPayoutID(ctx)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	srv := ctx.Services().Payout().WithTx(ctx.Tx())

	req, err := srv.Approve(payoutID)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	log.Info("payout approved",
		"admin", adminID.String(),
		"payout", req.ID,
		"account", req.AccountID,
		"amount", req.RequestedAmount.String())

	ctx.Respond(entities.PayoutViewFor(req))
}

func Reject(ctx api.Context) {
	adminID, err := parameter.GetParamAdminID(ctx)
	if err != nil {
		ctx.RespondError(gferrors.Unauthorized.WithError(err))
		return
	}

	payoutID, err := parameter.GetParamPayoutID(ctx)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	dReq := entities.PayoutDecisionBody{}
	if err := ctx.Read(&dReq); err != nil {
		ctx.RespondError(gferrors.RequestBodyLoadFailure.WithError(err))
		return
	}

	srv := ctx.Services().Payout().WithTx(ctx.Tx())

	req, err := srv.Reject(payoutID, dReq.Reason)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	log.Info("payout rejected",
		"admin", adminID.String(),
		"payout", req.ID,
		"account", req.AccountID,
		"reason", dReq.Reason)

	ctx.Respond(entities.PayoutViewFor(req))
}

// Suspend disqualifies an account directly. Idempotent like the
// automatic drawdown suspension.
func Suspend(ctx api.Context) {
	adminID, err := parameter.GetParamAdminID(ctx)
	if err != nil {
		ctx.RespondError(gferrors.Unauthorized.WithError(err))
		return
	}

	accountID, err := parameter.GetParamAccountID(ctx)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	srv := ctx.Services().Account().WithTx(ctx.Tx())

	acct, err := srv.Suspend(accountID)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	log.Info("account suspended",
		"admin", adminID.String(),
		"account", acct.ID)

	ctx.Respond(entities.AccountSnapshotFor(acct))
}
