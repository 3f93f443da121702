package trade

import (
	"strings"

	"github.com/alpacahq/gopaca/db"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	try "gopkg.in/matryer/try.v1"

	"github.com/fundedfirm/gofund/gferrors"
	"github.com/fundedfirm/gofund/models"
	"github.com/fundedfirm/gofund/rest/api"
	"github.com/fundedfirm/gofund/rest/api/controller/entities"
	"github.com/fundedfirm/gofund/rest/api/controller/parameter"
)

// Create ingests a trade batch: the ledger append, the daily stats
// upserts and the equity/drawdown update all commit or roll back as
// one transaction, with the account row held FOR UPDATE throughout.
func Create(ctx api.Context) {
	accountID, err := parameter.GetParamAccountID(ctx)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	bReq := entities.TradeBatchRequest{}
	if err := ctx.Read(&bReq); err != nil {
		ctx.RespondError(gferrors.RequestBodyLoadFailure.WithError(err))
		return
	}

	if err := bReq.Verify(); err != nil {
		ctx.RespondError(err)
		return
	}

	var result *entities.IngestResult

	err = try.Do(func(attempt int) (bool, error) {
		var ingestErr error
		result, ingestErr = ingest(ctx, accountID, bReq.ToModels())
		if ingestErr != nil {
			ctx.Rollback()
		}
		return attempt < 2 && retryable(ingestErr), ingestErr
	})

	if err != nil {
		ctx.RespondError(err)
		return
	}

	ctx.Respond(result)
}

func ingest(ctx api.Context, accountID uuid.UUID, batch []models.Trade) (*entities.IngestResult, error) {
	aSrv := ctx.Services().Account().WithTx(ctx.Tx())
	aSrv.SetForUpdate()

	acct, err := aSrv.GetByID(accountID)
	if err != nil {
		return nil, err
	}

	total, err := ctx.Services().Ledger().WithTx(ctx.Tx()).AppendTrades(acct, batch)
	if err != nil {
		return nil, err
	}

	upd, err := ctx.Services().Equity().WithTx(ctx.Tx()).ApplyRealizedPnL(acct, total)
	if err != nil {
		return nil, err
	}

	return &entities.IngestResult{
		AcceptedTrades: len(batch),
		BatchPnL:       total.Round(2),
		Balance:        upd.Balance.Round(2),
		PeakEquity:     upd.PeakEquity.Round(2),
		DrawdownPct:    upd.DrawdownPct.Round(2),
		Suspended:      upd.Suspended,
	}, nil
}

// concurrent platforms posting to the same account can deadlock on the
// (account, daily stats) lock ordering; one retry on a fresh tx is
// enough since the account lock serializes the second attempt
func retryable(err error) bool {
	if err == nil {
		return false
	}

	if gferr, ok := err.(gferrors.IException); ok && gferr.RawException() != nil {
		if db.IsSerializabilityError(errors.Cause(gferr.RawException())) {
			return true
		}
	}

	return strings.Contains(gferrors.Format(err), "deadlock detected")
}

func List(ctx api.Context) {
	accountID, err := parameter.GetParamAccountID(ctx)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	limit, offset, err := parameter.GetPagination(ctx)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	acct, err := ctx.Services().Account().WithTx(ctx.Tx()).GetByID(accountID)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	trades, err := ctx.Services().Ledger().WithTx(ctx.Tx()).List(acct, limit, offset)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	ctx.Respond(trades)
}
