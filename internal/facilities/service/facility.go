package service

import (
	"context"
	"errors"
	"sync"
	"time"

	facilitieserrors "bookit/internal/facilities/errors"
	"bookit/internal/facilities/repository"
	"bookit/internal/facilities/validator"
	"bookit/pkg/config"
	apperrors "bookit/pkg/errors"
	"bookit/pkg/model"
)

type FacilityService interface {
	Create(ctx context.Context, facility *model.Facility) error
	GetByID(ctx context.Context, id string) (*model.Facility, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Facility, int64, error)
	GetAvailable(ctx context.Context) ([]*model.Facility, error)
	Update(ctx context.Context, id string, updates *model.FacilityUpdate) (*model.Facility, error)
	Delete(ctx context.Context, id string) error
}

type facilityService struct {
	repo      repository.FacilityRepository
	validator *validator.FacilityValidator
	cfg       *config.Config
}

func NewFacilityService(
	repo repository.FacilityRepository,
	validator *validator.FacilityValidator,
	cfg *config.Config,
) FacilityService {
	return &facilityService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *facilityService) Create(ctx context.Context, facility *model.Facility) error {
	facility.ID = ""
	if facility.IsAvailable == nil {
		available := true
		facility.IsAvailable = &available
	}

	if err := s.validator.Validate(facility); err != nil {
		s.cfg.Log.Warn("Facility validation failed", "error", err)
		return apperrors.Validation("Invalid facility input", map[string]any{"error": err.Error()})
	}

	facility.CreatedAt = time.Now().UTC()
	if err := s.repo.Create(ctx, facility); err != nil {
		s.cfg.Log.Error("Failed to create facility", "error", err)
		return apperrors.Internal("Failed to create facility", err)
	}

	s.cfg.Log.Info("Facility created successfully", "id", facility.ID, "name", facility.Name)
	return nil
}

func (s *facilityService) GetByID(ctx context.Context, id string) (*model.Facility, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Facility ID cannot be empty")
	}

	facility, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, facilitieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Facility", id)
		}
		if errors.Is(err, facilitieserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid facility ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve facility", err)
	}

	return facility, nil
}

func (s *facilityService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Facility, int64, error) {
	var count int64
	var facilities []*model.Facility
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count facilities", "error", errCount)
			errCount = apperrors.Internal("Failed to count facilities", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		facilities, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list facilities", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve facilities", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return facilities, count, nil
}

func (s *facilityService) GetAvailable(ctx context.Context) ([]*model.Facility, error) {
	facilities, err := s.repo.FindAvailable(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list available facilities", "error", err)
		return nil, apperrors.Internal("Failed to retrieve facilities", err)
	}
	return facilities, nil
}

func (s *facilityService) Update(ctx context.Context, id string, updates *model.FacilityUpdate) (*model.Facility, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Facility ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Facility update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeFacilityUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		return nil, apperrors.Validation("Invalid facility input", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, facilitieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Facility", id)
		}
		s.cfg.Log.Error("Failed to update facility", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update facility", err)
	}

	merged.ID = id
	s.cfg.Log.Info("Facility updated successfully", "id", id)
	return merged, nil
}

func (s *facilityService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Facility ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, facilitieserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Facility", id)
		}
		if errors.Is(err, facilitieserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid facility ID format")
		}
		s.cfg.Log.Error("Failed to delete facility", "id", id, "error", err)
		return apperrors.Internal("Failed to delete facility", err)
	}

	s.cfg.Log.Info("Facility deleted successfully", "id", id)
	return nil
}

func (s *facilityService) mergeFacilityUpdates(existing *model.Facility, updates *model.FacilityUpdate) *model.Facility {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Location != "" {
		merged.Location = updates.Location
	}
	if updates.Capacity != nil {
		merged.Capacity = *updates.Capacity
	}
	if updates.IsAvailable != nil {
		merged.IsAvailable = updates.IsAvailable
	}

	return &merged
}
