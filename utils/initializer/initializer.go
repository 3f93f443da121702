package initializer

import (
	"github.com/alpacahq/gopaca/env"
)

// Initialize gofund's required environment variables
// to their default values.
func Initialize() {
	// Firm
	env.RegisterDefault("FIRM_MODE", "DEV")
	env.RegisterDefault("FIRM_PORT", "5995")
	env.RegisterDefault("ADMIN_SECRET", "zpXJ93kEhnGqT0vRd2wYcAuL7sMbfi4N")
	env.RegisterDefault("TRADER_SECRET", "hV6tqNx1PZyb8mAeJw3oDrRkU0sLgfCi")
	env.RegisterDefault("LOG_LEVEL", "INFO")

	// Evaluation program policy
	env.RegisterDefault("STARTING_BALANCE", "10000")
	env.RegisterDefault("MAX_DRAWDOWN_PCT", "10")
	env.RegisterDefault("MIN_TRADING_DAYS", "5")
	env.RegisterDefault("MIN_CONSISTENCY_PCT", "50")
	env.RegisterDefault("MIN_PROFIT", "500")
	env.RegisterDefault("PROBATION_DAYS", "30")
	env.RegisterDefault("PROBATION_PAYOUT_FRACTION", "0.5")

	// Postgres
	env.RegisterDefault("PGDATABASE", "gofund")
	env.RegisterDefault("PGHOST", "127.0.0.1")
	env.RegisterDefault("PGUSER", "postgres")
	env.RegisterDefault("PGPASSWORD", "gofund")
}
