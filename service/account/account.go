package account

import (
	"strings"

	"github.com/alpacahq/gopaca/db"
	"github.com/gofrs/uuid"
	"github.com/jinzhu/gorm"

	"github.com/fundedfirm/gofund/gferrors"
	"github.com/fundedfirm/gofund/models"
	"github.com/fundedfirm/gofund/models/enum"
	"github.com/fundedfirm/gofund/service/op"
	"github.com/fundedfirm/gofund/utils/constants"
)

type AccountService interface {
	GetByID(accountID uuid.UUID) (*models.Account, error)
	GetByOwnerID(ownerID uuid.UUID) (*models.Account, error)
	Create(ownerID uuid.UUID) (*models.Account, error)
	Suspend(accountID uuid.UUID) (*models.Account, error)
	WithTx(tx *gorm.DB) AccountService
	SetReadOnly()
	SetForUpdate()
}

type accountService struct {
	AccountService
	tx          *gorm.DB
	queryOption *string
}

func Service() AccountService {
	return &accountService{}
}

func (s *accountService) SetReadOnly() {
	forShare := db.ForShare
	s.queryOption = &forShare
}

func (s *accountService) SetForUpdate() {
	forUpdate := db.ForUpdate
	s.queryOption = &forUpdate
}

func (s *accountService) WithTx(tx *gorm.DB) AccountService {
	s.tx = tx
	return s
}

func (s *accountService) GetByID(accountID uuid.UUID) (*models.Account, error) {
	return op.GetAccountByID(s.tx, accountID, s.queryOption)
}

func (s *accountService) GetByOwnerID(ownerID uuid.UUID) (*models.Account, error) {
	return op.GetAccountByOwnerID(s.tx, ownerID, s.queryOption)
}

// Create opens an evaluation account for the given principal with the
// program's fixed starting balance. Balance, peak equity and starting
// balance begin equal by construction.
func (s *accountService) Create(ownerID uuid.UUID) (*models.Account, error) {
	if ownerID == uuid.Nil {
		return nil, gferrors.InvalidRequestParam.WithMsg("owner_id is required")
	}

	start := constants.StartingBalance()

	acct := &models.Account{
		OwnerID:         ownerID.String(),
		Status:          enum.Active,
		StartingBalance: start,
		CurrentBalance:  start,
		PeakEquity:      start,
	}

	if err := s.tx.Create(acct).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") {
			return nil, gferrors.Conflict.WithMsg("owner already has an account")
		}
		return nil, gferrors.InternalServerError.WithError(err)
	}

	return acct, nil
}

// Suspend is the direct administrative suspension. Like the automatic
// drawdown suspension it is one-way; suspending an already suspended
// account is a no-op, not an error.
func (s *accountService) Suspend(accountID uuid.UUID) (*models.Account, error) {
	forUpdate := db.ForUpdate

	acct, err := op.GetAccountByID(s.tx, accountID, &forUpdate)
	if err != nil {
		return nil, err
	}

	if acct.Suspended() {
		return acct, nil
	}

	acct.Status = enum.Suspended

	if err := s.tx.Model(acct).Update("status", enum.Suspended).Error; err != nil {
		return nil, gferrors.InternalServerError.WithError(err)
	}

	return acct, nil
}
