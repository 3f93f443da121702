package payout

import (
	"github.com/alpacahq/gopaca/db"
	"github.com/gofrs/uuid"
	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/fundedfirm/gofund/gferrors"
	"github.com/fundedfirm/gofund/models"
	"github.com/fundedfirm/gofund/models/enum"
	"github.com/fundedfirm/gofund/service/eligibility"
	"github.com/fundedfirm/gofund/service/op"
	"github.com/fundedfirm/gofund/utils/date"
	"github.com/fundedfirm/gofund/utils/random"
)

// PayoutService owns the PayoutRequest lifecycle:
// QUEUED -> APPROVED | REJECTED, both terminal here. Settlement of
// approved requests belongs to the external worker, which observes
// them via ListApproved.
type PayoutService interface {
	Request(accountID uuid.UUID, requested decimal.Decimal) (*models.PayoutRequest, error)
	Approve(payoutID uuid.UUID) (*models.PayoutRequest, error)
	Reject(payoutID uuid.UUID, reason string) (*models.PayoutRequest, error)
	GetByID(payoutID uuid.UUID) (*models.PayoutRequest, error)
	// ListQueue returns QUEUED requests oldest-first for admin triage.
	ListQueue() ([]models.PayoutRequest, error)
	// ListApproved is the settlement worker's observation hook.
	ListApproved() ([]models.PayoutRequest, error)
	ListForAccount(accountID uuid.UUID) ([]models.PayoutRequest, error)
	WithTx(tx *gorm.DB) PayoutService
}

type payoutService struct {
	tx          *gorm.DB
	eligibility eligibility.EligibilityService
	rng         random.Source
}

func Service(eligibility eligibility.EligibilityService, rng random.Source) PayoutService {
	return &payoutService{
		eligibility: eligibility,
		rng:         rng,
	}
}

func (s *payoutService) WithTx(tx *gorm.DB) PayoutService {
	s.tx = tx
	s.eligibility = s.eligibility.WithTx(tx)
	return s
}

// Request runs inside the same serialization domain as trade
// ingestion: the account row is taken FOR UPDATE so the gate sees the
// most recent balance, not a stale snapshot.
func (s *payoutService) Request(accountID uuid.UUID, requested decimal.Decimal) (*models.PayoutRequest, error) {
	if !requested.GreaterThan(decimal.Zero) {
		return nil, gferrors.InvalidRequestParam.WithMsg("requested amount must be > 0")
	}

	forUpdate := db.ForUpdate

	acct, err := op.GetAccountByID(s.tx, accountID, &forUpdate)
	if err != nil {
		return nil, err
	}

	res, err := s.eligibility.Check(acct)
	if err != nil {
		return nil, err
	}

	if !res.Eligible {
		return nil, gferrors.PolicyViolation.WithMsg("account is not eligible for payout")
	}

	capped, err := s.eligibility.CappedAmount(acct, requested)
	if err != nil {
		return nil, err
	}

	if !capped.GreaterThan(decimal.Zero) {
		return nil, gferrors.PolicyViolation.WithMsg("requested amount exceeds the payable cap")
	}

	cfg, err := op.GetConfig(s.tx)
	if err != nil {
		return nil, err
	}

	settleDays := s.rng.IntInRange(cfg.SettlementDaysMin, cfg.SettlementDaysMax)

	req := &models.PayoutRequest{
		AccountID:               acct.ID,
		Status:                  enum.PayoutQueued,
		RequestedAmount:         capped,
		EligibleAmountAtRequest: res.EligibleAmount,
		SettlementETA:           date.Today().AddDays(settleDays),
	}

	if err := s.tx.Create(req).Error; err != nil {
		return nil, gferrors.InternalServerError.WithError(
			errors.Wrap(err, "failed to create payout request"))
	}

	return req, nil
}

// decide moves a queued request to a terminal state. The row is taken
// FOR UPDATE so the queued-state check is atomic with the write, which
// makes double-approve/double-reject a clean Conflict instead of a race.
func (s *payoutService) decide(payoutID uuid.UUID, status enum.PayoutStatus, notes string) (*models.PayoutRequest, error) {
	forUpdate := db.ForUpdate

	req, err := op.GetPayoutByID(s.tx, payoutID, &forUpdate)
	if err != nil {
		return nil, err
	}

	if req.Decided() {
		return nil, gferrors.Conflict.WithMsg("payout request is not in queued state")
	}

	updates := map[string]interface{}{
		"status": status,
	}

	if notes != "" {
		updates["notes"] = notes
	}

	if err := s.tx.Model(req).Updates(updates).Error; err != nil {
		return nil, gferrors.InternalServerError.WithError(err)
	}

	req.Status = status
	req.Notes = notes

	return req, nil
}

// Approve authorizes settlement; no funds move here.
func (s *payoutService) Approve(payoutID uuid.UUID) (*models.PayoutRequest, error) {
	return s.decide(payoutID, enum.PayoutApproved, "")
}

// Reject declines a queued request with a note. Rejection is
// deliberately restricted to queued requests so terminal states stay
// immutable.
func (s *payoutService) Reject(payoutID uuid.UUID, reason string) (*models.PayoutRequest, error) {
	return s.decide(payoutID, enum.PayoutRejected, reason)
}

func (s *payoutService) GetByID(payoutID uuid.UUID) (*models.PayoutRequest, error) {
	return op.GetPayoutByID(s.tx, payoutID, nil)
}

func (s *payoutService) listByStatus(status enum.PayoutStatus) ([]models.PayoutRequest, error) {
	reqs := []models.PayoutRequest{}

	q := s.tx.
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&reqs)

	if q.Error != nil {
		return nil, gferrors.InternalServerError.WithError(q.Error)
	}

	return reqs, nil
}

func (s *payoutService) ListQueue() ([]models.PayoutRequest, error) {
	return s.listByStatus(enum.PayoutQueued)
}

func (s *payoutService) ListApproved() ([]models.PayoutRequest, error) {
	return s.listByStatus(enum.PayoutApproved)
}

func (s *payoutService) ListForAccount(accountID uuid.UUID) ([]models.PayoutRequest, error) {
	reqs := []models.PayoutRequest{}

	q := s.tx.
		Where("account_id = ?", accountID.String()).
		Order("created_at DESC").
		Find(&reqs)

	if q.Error != nil {
		return nil, gferrors.InternalServerError.WithError(q.Error)
	}

	return reqs, nil
}
