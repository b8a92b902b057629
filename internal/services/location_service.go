package services

import (
	"context"
	"errors"

	"medstock/internal/models"
	"medstock/internal/repositories"

	"github.com/google/uuid"
)

type LocationService interface {
	Create(ctx context.Context, location *models.Location) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error)
	Update(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Location, error)
}

type locationService struct {
	locationRepo repositories.LocationRepository
}

func NewLocationService(locationRepo repositories.LocationRepository) LocationService {
	return &locationService{
		locationRepo: locationRepo,
	}
}

func validLocationType(t string) bool {
	switch t {
	case models.LocationTypeICU, models.LocationTypeEmergency, models.LocationTypeSurgery,
		models.LocationTypeWard, models.LocationTypePharmacy, models.LocationTypeWarehouse,
		models.LocationTypeClinic:
		return true
	}
	return false
}

func (s *locationService) Create(ctx context.Context, location *models.Location) error {
	if location.Name == "" {
		return errors.New("location name is required")
	}
	if !validLocationType(location.Type) {
		return errors.New("unknown location type")
	}
	if location.PriorityRank <= 0 {
		location.PriorityRank = 999
	}

	// Check for duplicate name
	existing, err := s.locationRepo.GetByName(ctx, location.Name)
	if err == nil && existing != nil {
		return errors.New("location with this name already exists")
	}

	location.ID = uuid.New()
	return s.locationRepo.Create(ctx, location)
}

func (s *locationService) GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	return s.locationRepo.GetByID(ctx, id)
}

func (s *locationService) Update(ctx context.Context, location *models.Location) error {
	if location.Name == "" {
		return errors.New("location name is required")
	}
	if !validLocationType(location.Type) {
		return errors.New("unknown location type")
	}
	if location.PriorityRank <= 0 {
		location.PriorityRank = 999
	}

	return s.locationRepo.Update(ctx, location)
}

func (s *locationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.locationRepo.Delete(ctx, id)
}

func (s *locationService) List(ctx context.Context, limit, offset int) ([]*models.Location, error) {
	return s.locationRepo.List(ctx, limit, offset)
}
