package main

import (
	stdContext "context"
	"flag"
	"strings"
	"time"

	"github.com/alpacahq/gopaca/clock"
	"github.com/alpacahq/gopaca/db"
	"github.com/alpacahq/gopaca/env"
	"github.com/alpacahq/gopaca/log"

	"github.com/fundedfirm/gofund/gfreg"
	"github.com/fundedfirm/gofund/migration"
	"github.com/fundedfirm/gofund/rest"
	"github.com/fundedfirm/gofund/utils/initializer"
	"github.com/fundedfirm/gofund/utils/signalman"
)

func shutdown() error {
	timeout := time.Second
	ctx, cancel := stdContext.WithTimeout(stdContext.Background(), timeout)
	defer cancel()
	return rest.Shutdown(ctx)
}

func init() {
	// set the clock
	clock.Set()

	// register env defaults
	initializer.Initialize()

	flag.Parse()

	// set deployment level on logger
	log.Logger().SetDeploymentLevel(env.GetVar("FIRM_MODE"))

	signalman.Register("rest_shutdown", shutdown)
}

func main() {
	if err := migration.Migration(db.DB()).Migrate(); err != nil {
		log.Fatal("database migration failed", "error", err)
	}

	// seed the settlement policy row before serving so concurrent
	// payout requests never observe a missing config
	tx := db.Begin()
	if err := gfreg.Services.Policy().WithTx(tx).EnsureDefaults(); err != nil {
		tx.Rollback()
		log.Fatal("policy seeding failed", "error", err)
	}
	if err := tx.Commit().Error; err != nil {
		log.Fatal("policy seeding failed", "error", err)
	}

	log.Info("gofund is live", "mode", env.GetVar("FIRM_MODE"), "clock", clock.Now())

	signalman.Start()

	if err := rest.Start(env.GetVar("FIRM_PORT"), gfreg.Services); err != nil {
		if !strings.Contains(err.Error(), "Server closed") {
			log.Fatal("rest server unexpectedly exited", "error", err)
		}
	}

	defer db.DB().Close()

	log.Info("waiting for graceful shutdown")
	signalman.Wait()
}
