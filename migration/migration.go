package migration

import (
	"github.com/fundedfirm/gofund/models"
	"github.com/jinzhu/gorm"
	gormigrate "gopkg.in/gormigrate.v1"
)

// Migration contains all of the incremental migrations that the
// database requires to keep its schema and models up to date with
// current gofund source code.
func Migration(db *gorm.DB) *gormigrate.Gormigrate {
	return gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		// initial migration
		{
			ID: "201905061030",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.AutoMigrate(&models.Account{}).Error; err != nil {
					return err
				}
				if err := tx.AutoMigrate(&models.Trade{}).Error; err != nil {
					return err
				}
				if err := tx.AutoMigrate(&models.DailyStats{}).Error; err != nil {
					return err
				}
				if err := tx.AutoMigrate(&models.PayoutRequest{}).Error; err != nil {
					return err
				}
				return tx.AutoMigrate(&models.Config{}).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.DropTableIfExists(
					"payout_requests",
					"daily_stats",
					"trades",
					"accounts",
					"configs",
				).Error
			},
		},
	})
}
