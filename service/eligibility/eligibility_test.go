package eligibility

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
	"github.com/fundedfirm/gofund/service/account"
	"github.com/fundedfirm/gofund/service/ledger"
	"github.com/fundedfirm/gofund/service/performance"
	"github.com/fundedfirm/gofund/utils/date"
)

type EligibilityTestSuite struct {
	dbtest.Suite
}

func TestEligibilityTestSuite(t *testing.T) {
	suite.Run(t, new(EligibilityTestSuite))
}

func (s *EligibilityTestSuite) SetupSuite() {
	os.Setenv("MIN_TRADING_DAYS", "3")
	os.Setenv("MIN_CONSISTENCY_PCT", "50")
	os.Setenv("MIN_PROFIT", "500")
	os.Setenv("PROBATION_DAYS", "0")
	os.Setenv("PROBATION_PAYOUT_FRACTION", "0.5")
	s.SetupDB()
}

func (s *EligibilityTestSuite) TearDownSuite() {
	s.TeardownDB()
}

func (s *EligibilityTestSuite) service() EligibilityService {
	return Service(performance.Service()).WithTx(db.DB())
}

func (s *EligibilityTestSuite) newAccount() *models.Account {
	tx := db.Begin()
	acct, err := account.Service().WithTx(tx).Create(uuid.Must(uuid.NewV4()))
	s.Require().Nil(err)
	tx.Commit()
	return acct
}

func (s *EligibilityTestSuite) ingest(acct *models.Account, day string, pnl int64) {
	d, err := date.ParseDate(day)
	s.Require().Nil(err)

	tx := db.Begin()
	total, err := ledger.Service().WithTx(tx).AppendTrades(acct, []models.Trade{
		{TradeDate: d, PnL: decimal.New(pnl, 0), Qty: 1},
	})
	s.Require().Nil(err)

	// keep the balance in step without pulling in the equity tracker
	acct.CurrentBalance = acct.CurrentBalance.Add(total)
	s.Require().Nil(tx.Model(acct).Update("current_balance", acct.CurrentBalance).Error)
	tx.Commit()
}

// qualify walks an account through three profitable days worth 900
// total, clearing every gate.
func (s *EligibilityTestSuite) qualify(acct *models.Account) {
	s.ingest(acct, "2025-08-04", 400)
	s.ingest(acct, "2025-08-05", 300)
	s.ingest(acct, "2025-08-06", 200)
}

func (s *EligibilityTestSuite) TestGates() {
	acct := s.newAccount()
	srv := s.service()

	// fresh account: not enough trading days
	res, err := srv.Check(acct)
	s.Require().Nil(err)
	assert.False(s.T(), res.Eligible)
	assert.True(s.T(), res.EligibleAmount.Equal(decimal.Zero))

	s.ingest(acct, "2025-08-04", 700)
	s.ingest(acct, "2025-08-05", -100)

	res, err = srv.Check(acct)
	s.Require().Nil(err)
	assert.False(s.T(), res.Eligible)

	// third day is a loss: enough days and profit, consistency 1/3
	s.ingest(acct, "2025-08-06", -50)

	res, err = srv.Check(acct)
	s.Require().Nil(err)
	assert.False(s.T(), res.Eligible)

	// two more winners push consistency to 3/5 and profit over the bar
	s.ingest(acct, "2025-08-07", 120)
	s.ingest(acct, "2025-08-08", 80)

	res, err = srv.Check(acct)
	s.Require().Nil(err)
	assert.True(s.T(), res.Eligible)

	// eligible amount is exactly the realized gain
	assert.Equal(s.T(), "750", res.EligibleAmount.String())
}

func (s *EligibilityTestSuite) TestProfitGate() {
	acct := s.newAccount()
	srv := s.service()

	s.ingest(acct, "2025-08-04", 200)
	s.ingest(acct, "2025-08-05", 150)
	s.ingest(acct, "2025-08-06", 100)

	// consistent but under the profit minimum
	res, err := srv.Check(acct)
	s.Require().Nil(err)
	assert.False(s.T(), res.Eligible)
}

func (s *EligibilityTestSuite) TestSuspendedNeverEligible() {
	acct := s.newAccount()
	s.qualify(acct)

	tx := db.Begin()
	_, err := account.Service().WithTx(tx).Suspend(acct.IDAsUUID())
	s.Require().Nil(err)
	tx.Commit()
	acct, err = account.Service().WithTx(db.DB()).GetByID(acct.IDAsUUID())
	s.Require().Nil(err)

	res, err := s.service().Check(acct)
	s.Require().Nil(err)
	assert.False(s.T(), res.Eligible)
}

func (s *EligibilityTestSuite) TestCappedAmount() {
	acct := s.newAccount()
	srv := s.service()
	s.qualify(acct)

	// request below the eligible amount passes through
	capped, err := srv.CappedAmount(acct, decimal.New(300, 0))
	s.Require().Nil(err)
	assert.Equal(s.T(), "300", capped.String())

	// request above it clamps to the gain
	capped, err = srv.CappedAmount(acct, decimal.New(5000, 0))
	s.Require().Nil(err)
	assert.Equal(s.T(), "900", capped.String())

	// probation halves the ceiling
	os.Setenv("PROBATION_DAYS", "30")
	defer os.Setenv("PROBATION_DAYS", "0")

	capped, err = srv.CappedAmount(acct, decimal.New(5000, 0))
	s.Require().Nil(err)
	assert.Equal(s.T(), "450", capped.String())

	capped, err = srv.CappedAmount(acct, decimal.New(400, 0))
	s.Require().Nil(err)
	assert.Equal(s.T(), "400", capped.String())
}

func (s *EligibilityTestSuite) TestCappedAmountIneligible() {
	acct := s.newAccount()

	capped, err := s.service().CappedAmount(acct, decimal.New(100, 0))
	s.Require().Nil(err)
	assert.True(s.T(), capped.Equal(decimal.Zero))
}
