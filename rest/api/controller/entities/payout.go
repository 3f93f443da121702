package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundedfirm/gofund/gferrors"
	"github.com/fundedfirm/gofund/models"
	"github.com/fundedfirm/gofund/utils/date"
)

type PayoutRequestBody struct {
	Amount decimal.Decimal `json:"amount"`
}

func (r *PayoutRequestBody) Verify() error {
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return gferrors.InvalidRequestParam.WithMsg("amount must be > 0")
	}

	return nil
}

type PayoutDecisionBody struct {
	Reason string `json:"reason"`
}

type PayoutView struct {
	ID                      string          `json:"id"`
	AccountID               string          `json:"account_id"`
	Status                  string          `json:"status"`
	RequestedAmount         decimal.Decimal `json:"requested_amount"`
	EligibleAmountAtRequest decimal.Decimal `json:"eligible_amount_at_request"`
	SettlementETA           date.Date       `json:"settlement_eta"`
	Notes                   string          `json:"notes,omitempty"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

func PayoutViewFor(req *models.PayoutRequest) *PayoutView {
	return &PayoutView{
		ID:                      req.ID,
		AccountID:               req.AccountID,
		Status:                  string(req.Status),
		RequestedAmount:         req.RequestedAmount.Round(2),
		EligibleAmountAtRequest: req.EligibleAmountAtRequest.Round(2),
		SettlementETA:           req.SettlementETA,
		Notes:                   req.Notes,
		CreatedAt:               req.CreatedAt,
		UpdatedAt:               req.UpdatedAt,
	}
}

func PayoutViewsFor(reqs []models.PayoutRequest) []PayoutView {
	views := make([]PayoutView, len(reqs))

	for i := range reqs {
		views[i] = *PayoutViewFor(&reqs[i])
	}

	return views
}
