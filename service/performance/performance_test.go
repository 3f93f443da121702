package performance

import (
	"testing"

	"github.com/alpacahq/gopaca/db"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/fundedfirm/gofund/dbtest"
	"github.com/fundedfirm/gofund/models"
	"github.com/fundedfirm/gofund/service/account"
	"github.com/fundedfirm/gofund/service/ledger"
	"github.com/fundedfirm/gofund/utils/date"
)

type PerformanceTestSuite struct {
	dbtest.Suite
}

func TestPerformanceTestSuite(t *testing.T) {
	suite.Run(t, new(PerformanceTestSuite))
}

func (s *PerformanceTestSuite) SetupSuite() {
	s.SetupDB()
}

func (s *PerformanceTestSuite) TearDownSuite() {
	s.TeardownDB()
}

func (s *PerformanceTestSuite) newAccount() *models.Account {
	tx := db.Begin()
	acct, err := account.Service().WithTx(tx).Create(uuid.Must(uuid.NewV4()))
	s.Require().Nil(err)
	tx.Commit()
	return acct
}

func (s *PerformanceTestSuite) ingest(acct *models.Account, day string, pnl int64) {
	d, err := date.ParseDate(day)
	s.Require().Nil(err)

	tx := db.Begin()
	_, err = ledger.Service().WithTx(tx).AppendTrades(acct, []models.Trade{
		{TradeDate: d, PnL: decimal.New(pnl, 0), Qty: 1},
	})
	s.Require().Nil(err)
	tx.Commit()
}

func (s *PerformanceTestSuite) TestComputeConsistency() {
	acct := s.newAccount()
	srv := Service().WithTx(db.DB())

	// no history yet: zero days, zero percent, no division error
	c, err := srv.ComputeConsistency(acct.IDAsUUID())
	s.Require().Nil(err)
	assert.Equal(s.T(), 0, c.TotalDays)
	assert.Equal(s.T(), 0, c.ProfitableDays)
	assert.True(s.T(), c.ConsistencyPct.Equal(decimal.Zero))

	s.ingest(acct, "2025-08-04", 200)
	s.ingest(acct, "2025-08-05", -50)
	s.ingest(acct, "2025-08-06", 120)

	// a flat day counts toward total but not profitable
	s.ingest(acct, "2025-08-07", 80)
	s.ingest(acct, "2025-08-07", -80)

	c, err = srv.ComputeConsistency(acct.IDAsUUID())
	s.Require().Nil(err)

	assert.Equal(s.T(), 4, c.TotalDays)
	assert.Equal(s.T(), 2, c.ProfitableDays)
	assert.Equal(s.T(), "50", c.ConsistencyPct.String())
}

func (s *PerformanceTestSuite) TestComputeProfitGain() {
	acct := s.newAccount()
	acct.CurrentBalance = acct.StartingBalance.Add(decimal.New(750, 0))

	g, err := Service().WithTx(db.DB()).ComputeProfitGain(acct)
	s.Require().Nil(err)

	assert.Equal(s.T(), "750", g.Value.String())
	assert.Equal(s.T(), "7.5", g.Pct.String())

	// losses report as negative gain
	acct.CurrentBalance = acct.StartingBalance.Sub(decimal.New(250, 0))

	g, err = Service().WithTx(db.DB()).ComputeProfitGain(acct)
	s.Require().Nil(err)
	assert.Equal(s.T(), "-250", g.Value.String())

	// a corrupted starting balance is an internal error, not a panic
	acct.StartingBalance = decimal.Zero
	_, err = Service().WithTx(db.DB()).ComputeProfitGain(acct)
	assert.NotNil(s.T(), err)
}
