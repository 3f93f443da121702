package entities

import (
	"github.com/shopspring/decimal"

	"github.com/fundedfirm/gofund/gferrors"
	"github.com/fundedfirm/gofund/models"
	"github.com/fundedfirm/gofund/utils/date"
)

type TradeEntry struct {
	TradeDate  date.Date       `json:"trade_date"`
	PnL        decimal.Decimal `json:"pnl"`
	Instrument string          `json:"instrument"`
	Qty        int64           `json:"qty"`
	Meta       string          `json:"meta"`
}

type TradeBatchRequest struct {
	Trades []TradeEntry `json:"trades"`
}

func (r *TradeBatchRequest) Verify() error {
	if len(r.Trades) == 0 {
		return gferrors.InvalidRequestParam.WithMsg("trades is required and must be non-empty")
	}

	return nil
}

// ToModels builds the ledger batch. Per-trade validation happens in
// the ledger so batches from other entry points get the same checks.
func (r *TradeBatchRequest) ToModels() []models.Trade {
	batch := make([]models.Trade, len(r.Trades))

	for i, t := range r.Trades {
		batch[i] = models.Trade{
			TradeDate:  t.TradeDate,
			PnL:        t.PnL,
			Instrument: t.Instrument,
			Qty:        t.Qty,
			Meta:       t.Meta,
		}
	}

	return batch
}

// IngestResult reports the outcome of a batch, including any
// suspension it triggered, so platforms need no follow-up read.
type IngestResult struct {
	AcceptedTrades int             `json:"accepted_trades"`
	BatchPnL       decimal.Decimal `json:"batch_pnl"`
	Balance        decimal.Decimal `json:"balance"`
	PeakEquity     decimal.Decimal `json:"peak_equity"`
	DrawdownPct    decimal.Decimal `json:"drawdown_pct"`
	Suspended      bool            `json:"suspended"`
}
