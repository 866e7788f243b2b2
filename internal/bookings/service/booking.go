package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "bookit/internal/bookings/errors"
	"bookit/internal/bookings/repository"
	"bookit/internal/bookings/validator"
	"bookit/pkg/config"
	apperrors "bookit/pkg/errors"
	"bookit/pkg/model"
)

// UserDirectory is the slice of the users domain the booking flows need.
type UserDirectory interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}

// FacilityDirectory is the slice of the facilities domain the booking
// flows need.
type FacilityDirectory interface {
	FindByID(ctx context.Context, id string) (*model.Facility, error)
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	GetByUser(ctx context.Context, userID string) ([]*model.Booking, error)
	GetByFacility(ctx context.Context, facilityID string) ([]*model.Booking, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error)
	Cancel(ctx context.Context, id string) error
	CheckAvailability(ctx context.Context, facilityID, date, startTime, endTime string) (bool, error)
}

type bookingService struct {
	repo       repository.BookingRepository
	locker     repository.SlotLocker
	users      UserDirectory
	facilities FacilityDirectory
	validator  *validator.BookingValidator
	events     EventPublisher
	cfg        *config.Config
	now        func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	locker repository.SlotLocker,
	users UserDirectory,
	facilities FacilityDirectory,
	validator *validator.BookingValidator,
	events EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:       repo,
		locker:     locker,
		users:      users,
		facilities: facilities,
		validator:  validator,
		events:     events,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	booking.ID = ""
	booking.Status = model.StatusConfirmed

	if err := s.validate(booking); err != nil {
		return err
	}
	if err := s.checkInterval(booking.Date, booking.StartTime, booking.EndTime); err != nil {
		return err
	}
	if err := s.checkReferences(ctx, booking.UserID, booking.FacilityID); err != nil {
		return err
	}

	// Serialize all writes for this facility and date so concurrent
	// requests for the same slot resolve deterministically.
	release := s.locker.Lock(repository.SlotKey(booking.FacilityID, booking.Date))
	defer release()

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflict(sessCtx, booking, ""); err != nil {
			return err
		}

		booking.CreatedAt = s.now().UTC()
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"facility_id", booking.FacilityID,
		"date", booking.Date,
		"start_time", booking.StartTime,
		"end_time", booking.EndTime,
	)
	s.events.BookingCreated(ctx, booking)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) GetByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to verify user", err)
	}
	if !exists {
		return nil, apperrors.NotFoundWithID("User", userID)
	}

	bookings, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by user", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) GetByFacility(ctx context.Context, facilityID string) ([]*model.Booking, error) {
	if facilityID == "" {
		return nil, apperrors.InvalidInput("Facility ID cannot be empty")
	}

	if _, err := s.facilities.FindByID(ctx, facilityID); err != nil {
		return nil, apperrors.NotFoundWithID("Facility", facilityID)
	}

	bookings, err := s.repo.FindByFacility(ctx, facilityID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings by facility", "facility_id", facilityID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != model.StatusConfirmed {
		return nil, apperrors.InvalidState("Cannot modify a cancelled booking")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeBookingUpdates(existing, updates)
	if err := s.validate(merged); err != nil {
		return nil, err
	}
	if err := s.checkInterval(merged.Date, merged.StartTime, merged.EndTime); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, merged.UserID, merged.FacilityID); err != nil {
		return nil, err
	}

	// The booking may move between slots; hold both the old and the new
	// key for the duration of the swap.
	release := s.locker.Lock(
		repository.SlotKey(existing.FacilityID, existing.Date),
		repository.SlotKey(merged.FacilityID, merged.Date),
	)
	defer release()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		// Reread under the lock: the booking may have been cancelled
		// between the first read and lock acquisition.
		current, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to reload booking", err)
		}
		if current.Status != model.StatusConfirmed {
			return apperrors.InvalidState("Cannot modify a cancelled booking")
		}

		if err := s.verifyNoConflict(sessCtx, merged, id); err != nil {
			return err
		}
		if err := s.repo.Update(sessCtx, id, merged); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, err
	}

	merged.ID = id
	s.cfg.Log.Info("Booking updated successfully", "id", id)
	s.events.BookingUpdated(ctx, merged)
	return merged, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status == model.StatusCancelled {
		return apperrors.InvalidState("Booking is already cancelled")
	}

	release := s.locker.Lock(repository.SlotKey(existing.FacilityID, existing.Date))
	defer release()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		current, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to reload booking", err)
		}
		if current.Status == model.StatusCancelled {
			return apperrors.InvalidState("Booking is already cancelled")
		}

		if err := s.repo.UpdateStatus(sessCtx, id, model.StatusCancelled); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to cancel booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return err
	}

	existing.Status = model.StatusCancelled
	s.cfg.Log.Info("Booking cancelled successfully", "id", id)
	s.events.BookingCancelled(ctx, existing)
	return nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, facilityID, date, startTime, endTime string) (bool, error) {
	if facilityID == "" {
		return false, apperrors.InvalidInput("Facility ID cannot be empty")
	}
	if err := s.checkInterval(date, startTime, endTime); err != nil {
		return false, err
	}

	active, err := s.repo.FindActiveByFacilityAndDate(ctx, facilityID, date)
	if err != nil {
		s.cfg.Log.Error("Failed to check availability", "facility_id", facilityID, "date", date, "error", err)
		return false, apperrors.Internal("Failed to check availability", err)
	}

	for _, b := range active {
		if overlaps(startTime, endTime, b.StartTime, b.EndTime) {
			return false, nil
		}
	}
	return true, nil
}

// --- Helpers ---

// overlaps reports whether two half-open [start, end) intervals on the same
// day intersect. Zero-padded HH:MM strings make string comparison exact.
// Back-to-back intervals (a.end == b.start) do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Invalid booking input", map[string]any{"error": err.Error()})
	}
	// The purpose cap is an operator setting, so it lives here instead of
	// in the struct tags.
	if len(booking.Purpose) > s.cfg.MaxPurposeLength {
		s.cfg.Log.Warn("Booking purpose over configured limit", "length", len(booking.Purpose), "limit", s.cfg.MaxPurposeLength)
		return apperrors.Validation("Invalid booking input", map[string]any{
			"error": fmt.Sprintf("purpose must be at most %d characters", s.cfg.MaxPurposeLength),
		})
	}
	return nil
}

func (s *bookingService) checkInterval(date, startTime, endTime string) error {
	// Formats are re-checked here because availability queries arrive as
	// raw strings; unpadded values would defeat the string comparisons.
	if !model.ValidTime(startTime) || !model.ValidTime(endTime) {
		return apperrors.InvalidInterval("start_time and end_time must be zero-padded " + model.TimeLayout + " values")
	}
	if !model.ValidDate(date) {
		return apperrors.InvalidInterval("date must use the " + model.DateLayout + " layout")
	}
	if startTime >= endTime {
		return apperrors.InvalidInterval("start_time must be before end_time")
	}

	day, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return apperrors.InvalidInterval("date must use the " + model.DateLayout + " layout")
	}
	today := s.now().UTC().Truncate(24 * time.Hour)
	if day.Before(today) {
		return apperrors.InvalidInterval("date cannot be in the past")
	}
	return nil
}

func (s *bookingService) checkReferences(ctx context.Context, userID, facilityID string) error {
	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return apperrors.Internal("Failed to verify user", err)
	}
	if !exists {
		return apperrors.NotFoundWithID("User", userID)
	}

	facility, err := s.facilities.FindByID(ctx, facilityID)
	if err != nil {
		return apperrors.NotFoundWithID("Facility", facilityID)
	}
	if !facility.Available() {
		return apperrors.FacilityUnavailable("Facility " + facility.Name + " is not available for booking")
	}
	return nil
}

// verifyNoConflict scans confirmed bookings for the target slot and rejects
// the candidate when any interval overlaps. excludeID lets an update skip
// the booking being rescheduled.
func (s *bookingService) verifyNoConflict(ctx context.Context, candidate *model.Booking, excludeID string) error {
	active, err := s.repo.FindActiveByFacilityAndDate(ctx, candidate.FacilityID, candidate.Date)
	if err != nil {
		return apperrors.Internal("Failed to check for conflicts", err)
	}

	for _, b := range active {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if overlaps(candidate.StartTime, candidate.EndTime, b.StartTime, b.EndTime) {
			return apperrors.Conflict("Booking overlaps an existing booking for this facility").
				WithDetails(map[string]any{
					"conflicting_booking_id": b.ID,
					"date":                   b.Date,
					"start_time":             b.StartTime,
					"end_time":               b.EndTime,
				})
		}
	}
	return nil
}

func (s *bookingService) mergeBookingUpdates(existing *model.Booking, updates *model.BookingUpdate) *model.Booking {
	merged := *existing

	if updates.UserID != "" {
		merged.UserID = updates.UserID
	}
	if updates.FacilityID != "" {
		merged.FacilityID = updates.FacilityID
	}
	if updates.Date != "" {
		merged.Date = updates.Date
	}
	if updates.StartTime != "" {
		merged.StartTime = updates.StartTime
	}
	if updates.EndTime != "" {
		merged.EndTime = updates.EndTime
	}
	if updates.Purpose != nil {
		merged.Purpose = *updates.Purpose
	}

	return &merged
}
