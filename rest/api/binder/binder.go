package binder

import (
	"github.com/iris-contrib/middleware/cors"
	"github.com/kataras/iris"

	"github.com/fundedfirm/gofund/rest/api"
	"github.com/fundedfirm/gofund/rest/api/controller/account"
	"github.com/fundedfirm/gofund/rest/api/controller/admin"
	"github.com/fundedfirm/gofund/rest/api/controller/payout"
	"github.com/fundedfirm/gofund/rest/api/controller/trade"
	"github.com/fundedfirm/gofund/rest/api/middleware/httplogger"
	"github.com/fundedfirm/gofund/utils"
)

type APIHandler interface {
	Authenticate(func(api.Context)) iris.Handler
	NoAuth(func(api.Context)) iris.Handler
	RouteNotFound(api.Context)
}

// Trader binds the trader-facing evaluation API handlers
// to their respective endpoints
func Trader(api APIHandler, r iris.Party) {
	//----------------------------------
	//    Trader API
	//----------------------------------
	r.Use(httplogger.New())

	// account
	r.Get("/account", api.Authenticate(account.Get))
	r.Get("/account/metrics", api.Authenticate(account.GetMetrics))

	// trades
	r.Get("/trades", api.Authenticate(trade.List))
	r.Post("/trades", api.Authenticate(trade.Create))

	// payouts
	r.Get("/payouts", api.Authenticate(payout.List))
	r.Get("/payouts/{payout_id}", api.Authenticate(payout.Get))
	r.Post("/payouts", api.Authenticate(payout.Create))

	r.Any("/", api.NoAuth(api.RouteNotFound))
	r.Any("/{anypath}", api.NoAuth(api.RouteNotFound))
}

// Admin binds the back-office API handlers to their
// respective endpoints
func Admin(api *api.API, r iris.Party) {
	//----------------------------------
	//    Admin API
	//----------------------------------
	r.Use(httplogger.New())

	// CORS
	{
		getOrigins := func() []string {
			switch {
			case utils.Prod():
				return []string{"https://admin.fundedfirm.com"}
			default:
				// staging/dev mode
				return []string{"*"}
			}
		}

		crs := cors.New(cors.Options{
			AllowedOrigins: getOrigins(),
			AllowedMethods: []string{
				iris.MethodGet,
				iris.MethodPost,
				iris.MethodPatch,
				iris.MethodDelete,
				iris.MethodOptions,
			},
			AllowedHeaders:     []string{"*"},
			AllowCredentials:   true,
			OptionsPassthrough: false,
		})

		r.Use(crs)
		r.AllowMethods(iris.MethodOptions) // <- important for the preflight.
	}

	// accounts
	r.Post("/admins/{admin_id}/accounts", api.AuthenticateAdmin(account.Create))
	r.Get("/admins/{admin_id}/accounts/{account_id}", api.AuthenticateAdmin(account.Get))
	r.Get("/admins/{admin_id}/accounts/{account_id}/metrics", api.AuthenticateAdmin(account.GetMetrics))
	r.Post("/admins/{admin_id}/accounts/{account_id}/suspend", api.AuthenticateAdmin(admin.Suspend))

	// account trade & payout history
	r.Get("/admins/{admin_id}/accounts/{account_id}/trades", api.AuthenticateAdmin(trade.List))
	r.Get("/admins/{admin_id}/accounts/{account_id}/payouts", api.AuthenticateAdmin(payout.List))

	// payout review
	r.Get("/admins/{admin_id}/payouts/queued", api.AuthenticateAdmin(admin.ListQueue))
	r.Get("/admins/{admin_id}/payouts/approved", api.AuthenticateAdmin(admin.ListApproved))
	r.Get("/admins/{admin_id}/payouts/{payout_id}", api.AuthenticateAdmin(payout.Get))
	r.Post("/admins/{admin_id}/payouts/{payout_id}/approve", api.AuthenticateAdmin(admin.Approve))
	r.Post("/admins/{admin_id}/payouts/{payout_id}/reject", api.AuthenticateAdmin(admin.Reject))
}
