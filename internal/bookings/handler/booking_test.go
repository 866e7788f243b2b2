package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "bookit/pkg/errors"
	httputil "bookit/pkg/http"
	"bookit/pkg/logger"
	"bookit/pkg/model"
)

type mockBookingService struct {
	createFunc            func(ctx context.Context, booking *model.Booking) error
	getByIDFunc           func(ctx context.Context, id string) (*model.Booking, error)
	getAllFunc            func(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	updateFunc            func(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error)
	cancelFunc            func(ctx context.Context, id string) error
	checkAvailabilityFunc func(ctx context.Context, facilityID, date, startTime, endTime string) (bool, error)
}

func (m *mockBookingService) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	return nil
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.Booking{ID: id}, nil
}

func (m *mockBookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockBookingService) GetByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingService) GetByFacility(ctx context.Context, facilityID string) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, updates)
	}
	return &model.Booking{ID: id}, nil
}

func (m *mockBookingService) Cancel(ctx context.Context, id string) error {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id)
	}
	return nil
}

func (m *mockBookingService) CheckAvailability(ctx context.Context, facilityID, date, startTime, endTime string) (bool, error) {
	if m.checkAvailabilityFunc != nil {
		return m.checkAvailabilityFunc(ctx, facilityID, date, startTime, endTime)
	}
	return true, nil
}

func newTestRouter(svc *mockBookingService) *httprouter.Router {
	log := logger.New(logger.Config{Level: "error", Format: "text", Output: io.Discard})
	router := httprouter.New()
	NewBookingHandler(svc, log).RegisterRoutes(router)
	return router
}

func TestCreate_ReturnsCreated(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			booking.ID = "60c72b2f9b1e8a5f4c8b4501"
			booking.Status = model.StatusConfirmed
			return nil
		},
	}
	router := newTestRouter(svc)

	body := `{"user_id":"507f1f77bcf86cd799439011","facility_id":"507f191e810c19729de860ea","date":"2030-06-01","start_time":"09:00","end_time":"10:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var resp struct {
		Data model.Booking `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Data.ID == "" || resp.Data.Status != model.StatusConfirmed {
		t.Errorf("response booking = %+v, want assigned ID and confirmed status", resp.Data)
	}
}

func TestCreate_InvalidBody(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreate_ConflictMapsTo409(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			return apperrors.Conflict("Booking overlaps an existing booking for this facility")
		},
	}
	router := newTestRouter(svc)

	body := `{"user_id":"507f1f77bcf86cd799439011","facility_id":"507f191e810c19729de860ea","date":"2030-06-01","start_time":"09:00","end_time":"10:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}

	var resp httputil.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Code != apperrors.CodeConflict {
		t.Errorf("error code = %s, want %s", resp.Code, apperrors.CodeConflict)
	}
}

func TestGetByID_NotFoundMapsTo404(t *testing.T) {
	svc := &mockBookingService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/id/60c72b2f9b1e8a5f4c8b4599", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestUpdate_ReturnsUpdatedBooking(t *testing.T) {
	svc := &mockBookingService{
		updateFunc: func(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
			return &model.Booking{ID: id, StartTime: updates.StartTime, EndTime: updates.EndTime}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/id/60c72b2f9b1e8a5f4c8b4501",
		strings.NewReader(`{"start_time":"14:00","end_time":"15:00"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Data model.Booking `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Data.StartTime != "14:00" {
		t.Errorf("start_time = %s, want 14:00", resp.Data.StartTime)
	}
}

func TestCancel_ReturnsNoContent(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/id/60c72b2f9b1e8a5f4c8b4501", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestCancel_InvalidStateMapsTo409(t *testing.T) {
	svc := &mockBookingService{
		cancelFunc: func(ctx context.Context, id string) error {
			return apperrors.InvalidState("Booking is already cancelled")
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/id/60c72b2f9b1e8a5f4c8b4501", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestCheckAvailability(t *testing.T) {
	svc := &mockBookingService{
		checkAvailabilityFunc: func(ctx context.Context, facilityID, date, startTime, endTime string) (bool, error) {
			return false, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/bookings/availability?facility_id=507f191e810c19729de860ea&date=2030-06-01&start_time=09:00&end_time=10:00", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Data map[string]any `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if avail, ok := resp.Data["available"].(bool); !ok || avail {
		t.Errorf("available = %v, want false", resp.Data["available"])
	}
}

func TestCheckAvailability_MissingParams(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/availability?facility_id=x", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
