package parameter

import (
	"fmt"
	"strconv"

	"github.com/gofrs/uuid"

	"github.com/fundedfirm/gofund/gferrors"
	"github.com/fundedfirm/gofund/rest/api"
)

func GetParamAccountID(ctx api.Context) (accountID uuid.UUID, err error) {
	if ctx.Session().Permission == api.PermissionTrading {
		// bearer auth already resolved the caller's account
		return ctx.Session().ID, nil
	}

	accountID, err = uuid.FromString(ctx.Params().Get("account_id"))

	if err != nil {
		return accountID, gferrors.InvalidRequestParam
	}

	if ctx.Session().Permission == api.PermissionAdmin {
		return accountID, nil
	}

	if !ctx.Session().Authorized(accountID) {
		// Use not found, instead unauthorized to hide account for other people.
		return accountID, gferrors.NotFound
	}

	return accountID, nil
}

func GetParamAdminID(ctx api.Context) (adminID uuid.UUID, err error) {
	if ctx.Session().Permission != api.PermissionAdmin {
		return ctx.Session().ID, fmt.Errorf("non administrator permission level")
	}

	adminID, err = uuid.FromString(ctx.Values().Get("admin_id").(string))
	if err != nil {
		return adminID, gferrors.InvalidRequestParam
	}

	if !ctx.Session().Authorized(adminID) {
		return adminID, gferrors.NotFound
	}

	return adminID, nil
}

func GetParamPayoutID(ctx api.Context) (uuid.UUID, error) {
	payoutID := ctx.Params().Get("payout_id")
	if payoutID == "" {
		return uuid.Nil, gferrors.InvalidRequestParam.WithMsg("payout_id is required")
	}

	u, err := uuid.FromString(payoutID)
	if err != nil {
		return uuid.Nil, gferrors.InvalidRequestParam.WithMsg("payout_id is invalid format")
	}

	return u, nil
}

func GetPagination(ctx api.Context) (limit, offset *int, err error) {
	if q := ctx.URLParam("limit"); q != "" {
		v, convErr := strconv.Atoi(q)
		if convErr != nil || v < 1 {
			return nil, nil, gferrors.InvalidRequestParam.WithMsg("limit must be a positive integer")
		}
		limit = &v
	}

	if q := ctx.URLParam("offset"); q != "" {
		v, convErr := strconv.Atoi(q)
		if convErr != nil || v < 0 {
			return nil, nil, gferrors.InvalidRequestParam.WithMsg("offset must be a non-negative integer")
		}
		offset = &v
	}

	return limit, offset, nil
}
