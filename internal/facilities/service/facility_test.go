package service

import (
	"context"
	"fmt"
	"io"
	"testing"

	facilitieserrors "bookit/internal/facilities/errors"
	"bookit/internal/facilities/validator"
	"bookit/pkg/config"
	apperrors "bookit/pkg/errors"
	"bookit/pkg/logger"
	"bookit/pkg/model"
)

type mockFacilityRepository struct {
	store  map[string]*model.Facility
	nextID int
}

func newMockFacilityRepository() *mockFacilityRepository {
	return &mockFacilityRepository{store: map[string]*model.Facility{}}
}

func (m *mockFacilityRepository) Create(ctx context.Context, facility *model.Facility) error {
	m.nextID++
	facility.ID = fmt.Sprintf("665f1f77bcf86cd7994390%02d", m.nextID)
	clone := *facility
	m.store[facility.ID] = &clone
	return nil
}

func (m *mockFacilityRepository) FindByID(ctx context.Context, id string) (*model.Facility, error) {
	f, ok := m.store[id]
	if !ok {
		return nil, facilitieserrors.ErrNotFound
	}
	clone := *f
	return &clone, nil
}

func (m *mockFacilityRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Facility, error) {
	var out []*model.Facility
	for _, f := range m.store {
		clone := *f
		out = append(out, &clone)
	}
	return out, nil
}

func (m *mockFacilityRepository) FindAvailable(ctx context.Context) ([]*model.Facility, error) {
	var out []*model.Facility
	for _, f := range m.store {
		if f.Available() {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *mockFacilityRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.store)), nil
}

func (m *mockFacilityRepository) Update(ctx context.Context, id string, facility *model.Facility) error {
	existing, ok := m.store[id]
	if !ok {
		return facilitieserrors.ErrNotFound
	}
	existing.Name = facility.Name
	existing.Location = facility.Location
	existing.Capacity = facility.Capacity
	existing.IsAvailable = facility.IsAvailable
	return nil
}

func (m *mockFacilityRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.store[id]; !ok {
		return facilitieserrors.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func newTestService() (FacilityService, *mockFacilityRepository) {
	log := logger.New(logger.Config{Level: "error", Format: "text", Output: io.Discard})
	repo := newMockFacilityRepository()
	svc := NewFacilityService(repo, validator.NewFacilityValidator(log), &config.Config{Log: log})
	return svc, repo
}

func testFacility() *model.Facility {
	return &model.Facility{
		Name:     "Basketball Court",
		Location: "Building A, Floor 2",
		Capacity: 20,
	}
}

func TestCreate_DefaultsToAvailable(t *testing.T) {
	svc, _ := newTestService()
	f := testFacility()

	if err := svc.Create(context.Background(), f); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if f.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if !f.Available() {
		t.Error("facility created without is_available should default to available")
	}
	if f.CreatedAt.IsZero() {
		t.Error("Create() did not stamp CreatedAt")
	}
}

func TestCreate_ExplicitUnavailable(t *testing.T) {
	svc, _ := newTestService()
	unavailable := false
	f := testFacility()
	f.IsAvailable = &unavailable

	if err := svc.Create(context.Background(), f); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if f.Available() {
		t.Error("explicit is_available=false was overridden")
	}
}

func TestCreate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Facility)
	}{
		{"missing name", func(f *model.Facility) { f.Name = "" }},
		{"short name", func(f *model.Facility) { f.Name = "x" }},
		{"missing location", func(f *model.Facility) { f.Location = "" }},
		{"zero capacity", func(f *model.Facility) { f.Capacity = 0 }},
		{"negative capacity", func(f *model.Facility) { f.Capacity = -3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()
			f := testFacility()
			tt.mutate(f)

			err := svc.Create(context.Background(), f)
			if err == nil {
				t.Fatal("Create() accepted invalid facility")
			}
			appErr := apperrors.AsAppError(err)
			if appErr == nil || appErr.Code != apperrors.CodeValidation {
				t.Errorf("error = %v, want %s", err, apperrors.CodeValidation)
			}
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), "665f1f77bcf86cd799439099")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("error = %v, want %s", err, apperrors.CodeNotFound)
	}
}

func TestUpdate_TogglesAvailability(t *testing.T) {
	svc, _ := newTestService()
	f := testFacility()
	if err := svc.Create(context.Background(), f); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	unavailable := false
	updated, err := svc.Update(context.Background(), f.ID, &model.FacilityUpdate{IsAvailable: &unavailable})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Available() {
		t.Error("availability toggle did not stick")
	}
	if updated.Name != f.Name || updated.Capacity != f.Capacity {
		t.Error("untouched fields were not preserved")
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	svc, _ := newTestService()
	f := testFacility()
	if err := svc.Create(context.Background(), f); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	capacity := 50
	updated, err := svc.Update(context.Background(), f.ID, &model.FacilityUpdate{
		Name:     "Main Court",
		Capacity: &capacity,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "Main Court" || updated.Capacity != 50 {
		t.Errorf("updated facility = %+v", updated)
	}
	if updated.Location != f.Location {
		t.Error("location was not preserved")
	}
}

func TestDelete(t *testing.T) {
	svc, repo := newTestService()
	f := testFacility()
	if err := svc.Create(context.Background(), f); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(context.Background(), f.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(repo.store) != 0 {
		t.Error("facility still present after delete")
	}

	err := svc.Delete(context.Background(), f.ID)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeNotFound {
		t.Errorf("second delete error = %v, want %s", err, apperrors.CodeNotFound)
	}
}

func TestGetAvailable_FiltersClosed(t *testing.T) {
	svc, _ := newTestService()

	open := testFacility()
	if err := svc.Create(context.Background(), open); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	unavailable := false
	closed := testFacility()
	closed.Name = "Closed Court"
	closed.IsAvailable = &unavailable
	if err := svc.Create(context.Background(), closed); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := svc.GetAvailable(context.Background())
	if err != nil {
		t.Fatalf("GetAvailable() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != open.Name {
		t.Errorf("GetAvailable() = %+v, want only %s", got, open.Name)
	}
}
