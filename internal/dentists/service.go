package dentists

import (
	"github.com/clinova/odonto-api/internal/events"
	"github.com/clinova/odonto-api/internal/resource"
	"github.com/clinova/odonto-api/pkg/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service manages the dentist collection. All CRUD and soft-delete semantics
// come from the generic resource manager.
type Service struct {
	*resource.Manager[models.Dentist, *models.Dentist]
}

// NewService creates the dentist service on top of a GORM repository
func NewService(logger *zap.Logger, db *gorm.DB, pub events.Publisher) *Service {
	repo := resource.NewGormRepository[models.Dentist](db)
	return &Service{
		Manager: resource.NewManager[models.Dentist, *models.Dentist]("dentista", repo, pub, logger),
	}
}
