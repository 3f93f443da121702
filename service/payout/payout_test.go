package payout

import (
	"os"
	"testing"

	"github.com/alpacahq/gopaca/clock"
	"github.com/alpacahq/gopaca/db"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/fundedfirm/gofund/dbtest"
	"github.com/fundedfirm/gofund/gferrors"
	"github.com/fundedfirm/gofund/models"
	"github.com/fundedfirm/gofund/models/enum"
	"github.com/fundedfirm/gofund/service/account"
	"github.com/fundedfirm/gofund/service/eligibility"
	"github.com/fundedfirm/gofund/service/ledger"
	"github.com/fundedfirm/gofund/service/performance"
	"github.com/fundedfirm/gofund/service/policy"
	"github.com/fundedfirm/gofund/utils/date"
	"github.com/fundedfirm/gofund/utils/random"
)

type PayoutTestSuite struct {
	dbtest.Suite
}

func TestPayoutTestSuite(t *testing.T) {
	suite.Run(t, new(PayoutTestSuite))
}

func (s *PayoutTestSuite) SetupSuite() {
	os.Setenv("MIN_TRADING_DAYS", "3")
	os.Setenv("MIN_CONSISTENCY_PCT", "50")
	os.Setenv("MIN_PROFIT", "500")
	os.Setenv("PROBATION_DAYS", "0")
	s.SetupDB()

	tx := db.Begin()
	s.Require().Nil(policy.Service().WithTx(tx).EnsureDefaults())
	tx.Commit()
}

func (s *PayoutTestSuite) TearDownSuite() {
	s.TeardownDB()
}

func (s *PayoutTestSuite) service(rng random.Source) PayoutService {
	return Service(eligibility.Service(performance.Service()), rng).WithTx(db.DB())
}

func (s *PayoutTestSuite) newAccount() *models.Account {
	tx := db.Begin()
	acct, err := account.Service().WithTx(tx).Create(uuid.Must(uuid.NewV4()))
	s.Require().Nil(err)
	tx.Commit()
	return acct
}

func (s *PayoutTestSuite) ingest(acct *models.Account, day string, pnl int64) {
	d, err := date.ParseDate(day)
	s.Require().Nil(err)

	tx := db.Begin()
	total, err := ledger.Service().WithTx(tx).AppendTrades(acct, []models.Trade{
		{TradeDate: d, PnL: decimal.New(pnl, 0), Qty: 1},
	})
	s.Require().Nil(err)

	acct.CurrentBalance = acct.CurrentBalance.Add(total)
	s.Require().Nil(tx.Model(acct).Update("current_balance", acct.CurrentBalance).Error)
	tx.Commit()
}

func (s *PayoutTestSuite) qualify(acct *models.Account) {
	s.ingest(acct, "2025-08-04", 400)
	s.ingest(acct, "2025-08-05", 300)
	s.ingest(acct, "2025-08-06", 200)
}

func (s *PayoutTestSuite) TestRequestLifecycle() {
	acct := s.newAccount()
	s.qualify(acct)

	// pinned draw of 9 settlement days
	srv := s.service(random.Fixed(9))

	req, err := srv.Request(acct.IDAsUUID(), decimal.New(600, 0))
	s.Require().Nil(err)

	assert.Equal(s.T(), enum.PayoutQueued, req.Status)
	assert.Equal(s.T(), "600", req.RequestedAmount.String())
	assert.Equal(s.T(), "900", req.EligibleAmountAtRequest.String())
	assert.Equal(s.T(), date.Today().AddDays(9), req.SettlementETA)

	// the draw always lands inside the configured window
	for i := 0; i < 20; i++ {
		r, err := s.service(random.NewSource(clock.Now().UnixNano() + int64(i))).
			Request(acct.IDAsUUID(), decimal.New(1, 0))
		s.Require().Nil(err)

		low := date.Today().AddDays(models.DefaultSettlementDaysMin)
		high := date.Today().AddDays(models.DefaultSettlementDaysMax)
		assert.False(s.T(), r.SettlementETA.Before(low.Date))
		assert.False(s.T(), r.SettlementETA.After(high.Date))
	}

	queued, err := srv.ListQueue()
	s.Require().Nil(err)
	assert.Len(s.T(), queued, 21)
	// oldest first
	assert.Equal(s.T(), req.ID, queued[0].ID)

	approved, err := srv.Approve(req.IDAsUUID())
	s.Require().Nil(err)
	assert.Equal(s.T(), enum.PayoutApproved, approved.Status)

	// terminal states are immutable
	_, err = srv.Approve(req.IDAsUUID())
	s.Require().NotNil(err)
	assert.True(s.T(), gferrors.IsConflict(err))

	_, err = srv.Reject(req.IDAsUUID(), "late")
	s.Require().NotNil(err)
	assert.True(s.T(), gferrors.IsConflict(err))

	settleable, err := srv.ListApproved()
	s.Require().Nil(err)
	assert.Len(s.T(), settleable, 1)

	mine, err := srv.ListForAccount(acct.IDAsUUID())
	s.Require().Nil(err)
	assert.Len(s.T(), mine, 21)
}

func (s *PayoutTestSuite) TestReject() {
	acct := s.newAccount()
	s.qualify(acct)

	srv := s.service(random.Fixed(7))

	req, err := srv.Request(acct.IDAsUUID(), decimal.New(100, 0))
	s.Require().Nil(err)

	rejected, err := srv.Reject(req.IDAsUUID(), "documents missing")
	s.Require().Nil(err)
	assert.Equal(s.T(), enum.PayoutRejected, rejected.Status)
	assert.Equal(s.T(), "documents missing", rejected.Notes)

	_, err = srv.Approve(req.IDAsUUID())
	s.Require().NotNil(err)
	assert.True(s.T(), gferrors.IsConflict(err))
}

func (s *PayoutTestSuite) TestIneligibleAccountCannotRequest() {
	acct := s.newAccount()

	srv := s.service(random.Fixed(7))

	req, err := srv.Request(acct.IDAsUUID(), decimal.New(100, 0))
	assert.Nil(s.T(), req)
	s.Require().NotNil(err)

	// no request row may survive a rejection
	reqs, err := srv.ListForAccount(acct.IDAsUUID())
	s.Require().Nil(err)
	assert.Len(s.T(), reqs, 0)
}

func (s *PayoutTestSuite) TestProbationCapOfZeroRejects() {
	acct := s.newAccount()
	s.qualify(acct)

	// in probation with a zero payout fraction the account clears every
	// gate yet nothing is payable
	os.Setenv("PROBATION_DAYS", "30")
	os.Setenv("PROBATION_PAYOUT_FRACTION", "0")
	defer func() {
		os.Setenv("PROBATION_DAYS", "0")
		os.Setenv("PROBATION_PAYOUT_FRACTION", "0.5")
	}()

	srv := s.service(random.Fixed(7))

	req, err := srv.Request(acct.IDAsUUID(), decimal.New(100, 0))
	assert.Nil(s.T(), req)
	s.Require().NotNil(err)
	assert.Contains(s.T(), err.Error(), "payable cap")

	// the refused request leaves no row behind
	reqs, err := srv.ListForAccount(acct.IDAsUUID())
	s.Require().Nil(err)
	assert.Len(s.T(), reqs, 0)
}

func (s *PayoutTestSuite) TestNonPositiveRequest() {
	acct := s.newAccount()
	s.qualify(acct)

	srv := s.service(random.Fixed(7))

	_, err := srv.Request(acct.IDAsUUID(), decimal.Zero)
	assert.NotNil(s.T(), err)

	_, err = srv.Request(acct.IDAsUUID(), decimal.New(-50, 0))
	assert.NotNil(s.T(), err)
}
