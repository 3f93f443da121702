package equity

import (
	"os"
	"testing"

	"github.com/alpacahq/gopaca/db"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/fundedfirm/gofund/dbtest"
	"github.com/fundedfirm/gofund/models"
	"github.com/fundedfirm/gofund/models/enum"
	"github.com/fundedfirm/gofund/service/account"
	"github.com/fundedfirm/gofund/service/ledger"
	"github.com/fundedfirm/gofund/utils/date"
)

type EquityTestSuite struct {
	dbtest.Suite
}

func TestEquityTestSuite(t *testing.T) {
	suite.Run(t, new(EquityTestSuite))
}

func (s *EquityTestSuite) SetupSuite() {
	os.Setenv("STARTING_BALANCE", "10000")
	os.Setenv("MAX_DRAWDOWN_PCT", "10")
	s.SetupDB()
}

func (s *EquityTestSuite) TearDownSuite() {
	s.TeardownDB()
}

func (s *EquityTestSuite) newAccount() *models.Account {
	tx := db.Begin()
	acct, err := account.Service().WithTx(tx).Create(uuid.Must(uuid.NewV4()))
	s.Require().Nil(err)
	tx.Commit()
	return acct
}

func (s *EquityTestSuite) apply(acct *models.Account, pnl int64) *Update {
	tx := db.Begin()
	upd, err := Service().WithTx(tx).ApplyRealizedPnL(acct, decimal.New(pnl, 0))
	s.Require().Nil(err)
	tx.Commit()
	return upd
}

func (s *EquityTestSuite) TestPeakIsMonotonic() {
	acct := s.newAccount()

	upd := s.apply(acct, 500)
	assert.Equal(s.T(), "10500", upd.Balance.String())
	assert.Equal(s.T(), "10500", upd.PeakEquity.String())
	assert.True(s.T(), upd.DrawdownPct.Equal(decimal.Zero))

	// losses move the balance but never the peak
	upd = s.apply(acct, -300)
	assert.Equal(s.T(), "10200", upd.Balance.String())
	assert.Equal(s.T(), "10500", upd.PeakEquity.String())
	assert.True(s.T(), upd.DrawdownPct.GreaterThan(decimal.Zero))

	// a new high advances it again
	upd = s.apply(acct, 600)
	assert.Equal(s.T(), "10800", upd.PeakEquity.String())
	assert.True(s.T(), upd.DrawdownPct.Equal(decimal.Zero))
}

func (s *EquityTestSuite) TestSuspensionIsSticky() {
	acct := s.newAccount()

	// drawdown of exactly the limit does not suspend
	upd := s.apply(acct, -1000)
	assert.Equal(s.T(), "10", upd.DrawdownPct.String())
	assert.False(s.T(), upd.Suspended)

	// crossing it does
	upd = s.apply(acct, -1)
	assert.True(s.T(), upd.Suspended)

	// recovering the percentage does not reinstate the account
	upd = s.apply(acct, 5000)
	assert.True(s.T(), upd.DrawdownPct.Equal(decimal.Zero))
	assert.True(s.T(), upd.Suspended)

	fresh, err := account.Service().WithTx(db.DB()).GetByID(acct.IDAsUUID())
	s.Require().Nil(err)
	assert.Equal(s.T(), enum.Suspended, fresh.Status)
}

func (s *EquityTestSuite) TestZeroPeakYieldsZeroDrawdown() {
	assert.True(s.T(), models.TrailingDrawdownPct(decimal.Zero, decimal.New(-100, 0)).Equal(decimal.Zero))
	assert.True(s.T(), models.TrailingDrawdownPct(decimal.New(-50, 0), decimal.New(-100, 0)).Equal(decimal.Zero))
}

// full ingestion flow: ledger append plus equity update per batch, the
// way the API composes them.
func (s *EquityTestSuite) TestIngestionScenario() {
	acct := s.newAccount()

	ingest := func(batch []models.Trade) *Update {
		tx := db.Begin()
		total, err := ledger.Service().WithTx(tx).AppendTrades(acct, batch)
		s.Require().Nil(err)
		upd, err := Service().WithTx(tx).ApplyRealizedPnL(acct, total)
		s.Require().Nil(err)
		tx.Commit()
		return upd
	}

	d1, _ := date.ParseDate("2025-08-04")
	d2, _ := date.ParseDate("2025-08-05")

	upd := ingest([]models.Trade{
		{TradeDate: d1, PnL: decimal.New(500, 0), Instrument: "NQ", Qty: 2},
		{TradeDate: d1, PnL: decimal.New(-100, 0), Instrument: "ES", Qty: 1},
	})

	assert.Equal(s.T(), "10400", upd.Balance.String())
	assert.Equal(s.T(), "10400", upd.PeakEquity.String())
	assert.True(s.T(), upd.DrawdownPct.Equal(decimal.Zero))
	assert.False(s.T(), upd.Suspended)

	upd = ingest([]models.Trade{
		{TradeDate: d2, PnL: decimal.New(-1200, 0), Instrument: "NQ", Qty: 3},
	})

	// (10400 - 9200) / 10400 = 11.54%, over the 10% limit
	assert.Equal(s.T(), "9200", upd.Balance.String())
	assert.Equal(s.T(), "10400", upd.PeakEquity.String())
	assert.Equal(s.T(), "11.54", upd.DrawdownPct.Round(2).String())
	assert.True(s.T(), upd.Suspended)
}
