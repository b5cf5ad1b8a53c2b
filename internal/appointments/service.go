package appointments

import (
	"context"

	"github.com/clinova/odonto-api/internal/dentists"
	"github.com/clinova/odonto-api/internal/events"
	"github.com/clinova/odonto-api/internal/patients"
	"github.com/clinova/odonto-api/internal/resource"
	"github.com/clinova/odonto-api/pkg/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service manages the appointment collection. On top of the generic manager
// it verifies that the referenced dentist and patient exist.
type Service struct {
	*resource.Manager[models.Appointment, *models.Appointment]
	dentists *dentists.Service
	patients *patients.Service
}

// NewService creates the appointment service
func NewService(logger *zap.Logger, db *gorm.DB, pub events.Publisher, dentistsSvc *dentists.Service, patientsSvc *patients.Service) *Service {
	repo := resource.NewGormRepository[models.Appointment](db)
	return &Service{
		Manager:  resource.NewManager[models.Appointment, *models.Appointment]("cita", repo, pub, logger),
		dentists: dentistsSvc,
		patients: patientsSvc,
	}
}

// Schedule creates an appointment after checking both referenced records
// exist; their NotFound propagates unchanged.
func (s *Service) Schedule(ctx context.Context, appt *models.Appointment) (*models.Appointment, error) {
	if _, err := s.dentists.Get(ctx, appt.DentistID); err != nil {
		return nil, err
	}
	if _, err := s.patients.Get(ctx, appt.PatientID); err != nil {
		return nil, err
	}
	return s.Create(ctx, appt)
}
