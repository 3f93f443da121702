package policy

import (
	"github.com/jinzhu/gorm"

	"github.com/fundedfirm/gofund/gferrors"
	"github.com/fundedfirm/gofund/models"
	"github.com/fundedfirm/gofund/service/op"
)

// PolicyService reads the runtime-tunable settlement policy row.
// EnsureDefaults runs once at process start so concurrent requests
// never race to create the singleton.
type PolicyService interface {
	Get() (*models.Config, error)
	EnsureDefaults() error
	WithTx(tx *gorm.DB) PolicyService
}

type policyService struct {
	tx *gorm.DB
}

func Service() PolicyService {
	return &policyService{}
}

func (s *policyService) WithTx(tx *gorm.DB) PolicyService {
	s.tx = tx
	return s
}

func (s *policyService) Get() (*models.Config, error) {
	return op.GetConfig(s.tx)
}

func (s *policyService) EnsureDefaults() error {
	cfg := &models.Config{}

	q := s.tx.First(cfg)

	if q.RecordNotFound() {
		cfg = &models.Config{
			SettlementDaysMin: models.DefaultSettlementDaysMin,
			SettlementDaysMax: models.DefaultSettlementDaysMax,
		}
		if err := s.tx.Create(cfg).Error; err != nil {
			return gferrors.InternalServerError.WithError(err)
		}
		return nil
	}

	return q.Error
}
