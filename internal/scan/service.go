package scan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sahanmw/wrenchworks-backend/pkg/db/models"
	pkgerrors "github.com/sahanmw/wrenchworks-backend/pkg/errors"
)

// Result pairs the classifier verdict with the tenant vehicle the
// returned plate resolved to, when one exists.
type Result struct {
	Classification Classification  `json:"classification"`
	Vehicle        *models.Vehicle `json:"vehicle,omitempty"`
}

// Service classifies a vehicle image and resolves the plate against the
// tenant's registry.
type Service interface {
	Scan(ctx context.Context, tenantID uuid.UUID, imageURL string) (*Result, error)
}

type plateResolver interface {
	FindByPlate(ctx context.Context, tenantID uuid.UUID, plate string) (*models.Vehicle, error)
}

type service struct {
	classifier Classifier
	vehicles   plateResolver
}

// NewService constructs the scan service.
func NewService(classifier Classifier, vehicles plateResolver) (Service, error) {
	if classifier == nil {
		return nil, fmt.Errorf("classifier required")
	}
	if vehicles == nil {
		return nil, fmt.Errorf("vehicle resolver required")
	}
	return &service{classifier: classifier, vehicles: vehicles}, nil
}

func (s *service) Scan(ctx context.Context, tenantID uuid.UUID, imageURL string) (*Result, error) {
	if strings.TrimSpace(imageURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image url required")
	}
	classification, err := s.classifier.Classify(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	result := &Result{Classification: *classification}
	if plate := strings.TrimSpace(classification.LicensePlate); plate != "" {
		vehicle, err := s.vehicles.FindByPlate(ctx, tenantID, plate)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve plate")
		}
		result.Vehicle = vehicle
	}
	return result, nil
}
