package patients

import (
	"github.com/clinova/odonto-api/internal/events"
	"github.com/clinova/odonto-api/internal/resource"
	"github.com/clinova/odonto-api/pkg/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service manages the patient collection
type Service struct {
	*resource.Manager[models.Patient, *models.Patient]
}

// NewService creates the patient service on top of a GORM repository
func NewService(logger *zap.Logger, db *gorm.DB, pub events.Publisher) *Service {
	repo := resource.NewGormRepository[models.Patient](db)
	return &Service{
		Manager: resource.NewManager[models.Patient, *models.Patient]("paciente", repo, pub, logger),
	}
}
