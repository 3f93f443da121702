package ledger

import (
	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/fundedfirm/gofund/gferrors"
	"github.com/fundedfirm/gofund/models"
)

// LedgerService is the durable record of trades and per-day
// aggregates. It never touches balance/peak/status; that is the
// equity tracker's job, fed by the batch total returned here.
type LedgerService interface {
	// AppendTrades persists the batch for the given account and
	// upserts the per-date DailyStats rows, accumulating into any
	// aggregate that already exists for a date. It returns the
	// batch's total realized P&L. The caller must already hold the
	// account row FOR UPDATE in the supplied transaction.
	AppendTrades(acct *models.Account, batch []models.Trade) (decimal.Decimal, error)
	List(acct *models.Account, limit, offset *int) ([]models.Trade, error)
	WithTx(tx *gorm.DB) LedgerService
}

type ledgerService struct {
	tx *gorm.DB
}

func Service() LedgerService {
	return &ledgerService{}
}

func (s *ledgerService) WithTx(tx *gorm.DB) LedgerService {
	s.tx = tx
	return s
}

func (s *ledgerService) AppendTrades(acct *models.Account, batch []models.Trade) (decimal.Decimal, error) {
	if len(batch) == 0 {
		return decimal.Zero, gferrors.InvalidRequestParam.WithMsg("trade batch is empty")
	}

	total := decimal.Zero

	for i := range batch {
		if err := batch[i].Validate(); err != nil {
			return decimal.Zero, gferrors.InvalidRequestParam.WithMsg(err.Error())
		}
		total = total.Add(batch[i].PnL)
	}

	// closed equity snapshot as of this batch
	closedEquity := acct.CurrentBalance.Add(total)

	for i := range batch {
		batch[i].ID = ""
		batch[i].AccountID = acct.ID

		if err := s.tx.Create(&batch[i]).Error; err != nil {
			return decimal.Zero, gferrors.InternalServerError.WithError(
				errors.Wrap(err, "failed to append trade"))
		}
	}

	// accumulate per-date aggregates, in first-seen date order
	pnlByDate := map[string]decimal.Decimal{}
	order := []string{}

	for i := range batch {
		key := batch[i].TradeDate.String()
		if _, ok := pnlByDate[key]; !ok {
			order = append(order, key)
		}
		pnlByDate[key] = pnlByDate[key].Add(batch[i].PnL)
	}

	for _, key := range order {
		if err := s.upsertDailyStats(acct, batch, key, pnlByDate[key], closedEquity); err != nil {
			return decimal.Zero, err
		}
	}

	return total, nil
}

func (s *ledgerService) upsertDailyStats(
	acct *models.Account,
	batch []models.Trade,
	dateKey string,
	dayPnL, closedEquity decimal.Decimal,
) error {
	ds := &models.DailyStats{}

	q := s.tx.
		Where("account_id = ?", acct.ID).
		Where("date = ?", dateKey).
		First(ds)

	if q.RecordNotFound() {
		ds = &models.DailyStats{
			AccountID: acct.ID,
		}
		for i := range batch {
			if batch[i].TradeDate.String() == dateKey {
				ds.Date = batch[i].TradeDate
				break
			}
		}
		ds.Accumulate(dayPnL, closedEquity)

		if err := s.tx.Create(ds).Error; err != nil {
			return gferrors.InternalServerError.WithError(
				errors.Wrap(err, "failed to create daily stats"))
		}
		return nil
	}

	if q.Error != nil {
		return gferrors.InternalServerError.WithError(q.Error)
	}

	ds.Accumulate(dayPnL, closedEquity)

	if err := s.tx.Save(ds).Error; err != nil {
		return gferrors.InternalServerError.WithError(
			errors.Wrap(err, "failed to update daily stats"))
	}

	return nil
}

func (s *ledgerService) List(acct *models.Account, limit, offset *int) ([]models.Trade, error) {
	trades := []models.Trade{}

	q := s.tx.
		Where("account_id = ?", acct.ID).
		Order("trade_date DESC, created_at DESC")

	if limit != nil {
		q = q.Limit(*limit)
	}

	if offset != nil {
		q = q.Offset(*offset)
	}

	if err := q.Find(&trades).Error; err != nil {
		return nil, gferrors.InternalServerError.WithError(err)
	}

	return trades, nil
}
