package op

import (
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/jinzhu/gorm"

	"github.com/fundedfirm/gofund/gferrors"
	"github.com/fundedfirm/gofund/models"
)

// GetAccountByID returns the account corresponding to the given ID. It
// is important to note that the query does a SELECT FOR <queryOption>,
// and as a result locks the account row until the transaction is
// committed, if FOR UPDATE is set. Trade ingestion and payout creation
// both go through here with FOR UPDATE so an account's
// balance/peak/status read-modify-write is serialized.
func GetAccountByID(tx *gorm.DB, accountID uuid.UUID, queryOption *string) (*models.Account, error) {
	a := &models.Account{}

	q := tx.Where("id = ?", accountID.String())

	// only set the query option if it is supplied
	if queryOption != nil {
		q = q.Set("gorm:query_option", *queryOption)
	}

	q = q.First(a)

	if q.RecordNotFound() {
		return nil, gferrors.NotFound.WithMsg(fmt.Sprintf("account not found for %v", accountID.String()))
	}

	if q.Error != nil {
		return nil, q.Error
	}

	return a, nil
}

// GetAccountByOwnerID resolves the single evaluation account owned by
// a principal. Exactly one account per owner is a program invariant
// (enforced by a unique index on owner_id).
func GetAccountByOwnerID(tx *gorm.DB, ownerID uuid.UUID, queryOption *string) (*models.Account, error) {
	a := &models.Account{}

	q := tx.Where("owner_id = ?", ownerID.String())

	if queryOption != nil {
		q = q.Set("gorm:query_option", *queryOption)
	}

	q = q.First(a)

	if q.RecordNotFound() {
		return nil, gferrors.NotFound.WithMsg(fmt.Sprintf("account not found for owner %v", ownerID.String()))
	}

	if q.Error != nil {
		return nil, q.Error
	}

	return a, nil
}

// GetPayoutByID returns a payout request, optionally locking the row
// so the queued-state precondition check is atomic with the decision
// write.
func GetPayoutByID(tx *gorm.DB, payoutID uuid.UUID, queryOption *string) (*models.PayoutRequest, error) {
	p := &models.PayoutRequest{}

	q := tx.Where("id = ?", payoutID.String())

	if queryOption != nil {
		q = q.Set("gorm:query_option", *queryOption)
	}

	q = q.First(p)

	if q.RecordNotFound() {
		return nil, gferrors.NotFound.WithMsg(fmt.Sprintf("payout request not found for %v", payoutID.String()))
	}

	if q.Error != nil {
		return nil, q.Error
	}

	return p, nil
}

// GetConfig returns the singleton policy config row.
func GetConfig(tx *gorm.DB) (*models.Config, error) {
	c := &models.Config{}

	q := tx.First(c)

	if q.RecordNotFound() {
		return nil, gferrors.NotFound.WithMsg("policy config row missing (startup seeding did not run)")
	}

	if q.Error != nil {
		return nil, q.Error
	}

	return c, nil
}
