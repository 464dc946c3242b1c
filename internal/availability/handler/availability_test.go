package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"venued/internal/availability/service"
	"venued/pkg/availability"
	apperrors "venued/pkg/errors"
	"venued/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type mockAvailabilityService struct {
	occupancyFunc func(ctx context.Context, venueID string, at time.Time) (*service.OccupancyView, error)
	dayGridFunc   func(ctx context.Context, venueID string, date availability.LocalDate) (*service.GridView, error)
	checkSlotFunc func(ctx context.Context, venueID string, start, end time.Time) (*service.ConflictView, error)
}

func (m *mockAvailabilityService) Occupancy(ctx context.Context, venueID string, at time.Time) (*service.OccupancyView, error) {
	if m.occupancyFunc != nil {
		return m.occupancyFunc(ctx, venueID, at)
	}
	return &service.OccupancyView{}, nil
}

func (m *mockAvailabilityService) DayGrid(ctx context.Context, venueID string, date availability.LocalDate) (*service.GridView, error) {
	if m.dayGridFunc != nil {
		return m.dayGridFunc(ctx, venueID, date)
	}
	return &service.GridView{}, nil
}

func (m *mockAvailabilityService) CheckSlot(ctx context.Context, venueID string, start, end time.Time) (*service.ConflictView, error) {
	if m.checkSlotFunc != nil {
		return m.checkSlotFunc(ctx, venueID, start, end)
	}
	return &service.ConflictView{}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
}

func newRouter(svc service.AvailabilityService) *httprouter.Router {
	h := NewAvailabilityHandler(svc, testLogger())
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func TestOccupancy_DefaultsToNow(t *testing.T) {
	var receivedAt time.Time
	router := newRouter(&mockAvailabilityService{
		occupancyFunc: func(ctx context.Context, venueID string, at time.Time) (*service.OccupancyView, error) {
			receivedAt = at
			return &service.OccupancyView{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/venues/v1/occupancy", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if time.Since(receivedAt) > time.Minute {
		t.Errorf("at defaulted to %v, want roughly now", receivedAt)
	}
}

func TestOccupancy_ExplicitAt(t *testing.T) {
	var receivedAt time.Time
	var receivedVenue string
	router := newRouter(&mockAvailabilityService{
		occupancyFunc: func(ctx context.Context, venueID string, at time.Time) (*service.OccupancyView, error) {
			receivedVenue = venueID
			receivedAt = at
			return &service.OccupancyView{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/venues/v1/occupancy?at=2026-03-04T11:00:00Z", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if receivedVenue != "v1" {
		t.Errorf("venue ID = %q, want %q", receivedVenue, "v1")
	}
	want := time.Date(2026, time.March, 4, 11, 0, 0, 0, time.UTC)
	if !receivedAt.Equal(want) {
		t.Errorf("at = %v, want %v", receivedAt, want)
	}
}

func TestOccupancy_InvalidAt(t *testing.T) {
	router := newRouter(&mockAvailabilityService{
		occupancyFunc: func(ctx context.Context, venueID string, at time.Time) (*service.OccupancyView, error) {
			t.Error("service called with an unparseable at parameter")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/venues/v1/occupancy?at=yesterday", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGrid_ParsesDate(t *testing.T) {
	var receivedDate availability.LocalDate
	router := newRouter(&mockAvailabilityService{
		dayGridFunc: func(ctx context.Context, venueID string, date availability.LocalDate) (*service.GridView, error) {
			receivedDate = date
			return &service.GridView{Date: date.String()}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/venues/v1/grid?date=2026-03-04", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	want := availability.LocalDate{Year: 2026, Month: time.March, Day: 4}
	if receivedDate != want {
		t.Errorf("date = %v, want %v", receivedDate, want)
	}
}

func TestGrid_MissingDateLeavesDefaultToService(t *testing.T) {
	received := availability.LocalDate{Year: 1, Month: 1, Day: 1}
	router := newRouter(&mockAvailabilityService{
		dayGridFunc: func(ctx context.Context, venueID string, date availability.LocalDate) (*service.GridView, error) {
			received = date
			return &service.GridView{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/venues/v1/grid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if received != (availability.LocalDate{}) {
		t.Errorf("date = %v, want the zero value so the service resolves the venue-local day", received)
	}
}

func TestGrid_VenueConfigErrorMapsTo422(t *testing.T) {
	router := newRouter(&mockAvailabilityService{
		dayGridFunc: func(ctx context.Context, venueID string, date availability.LocalDate) (*service.GridView, error) {
			return nil, apperrors.VenueConfig("operating window 22:00-08:00 crosses midnight")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/venues/v1/grid?date=2026-03-04", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body.Code != apperrors.CodeVenueConfig {
		t.Errorf("error code = %q, want %q", body.Code, apperrors.CodeVenueConfig)
	}
}

func TestConflicts_RequiresRange(t *testing.T) {
	router := newRouter(&mockAvailabilityService{
		checkSlotFunc: func(ctx context.Context, venueID string, start, end time.Time) (*service.ConflictView, error) {
			t.Error("service called without a complete time range")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/venues/v1/conflicts?start=2026-03-04T10:00:00Z", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestConflicts_ReturnsResult(t *testing.T) {
	router := newRouter(&mockAvailabilityService{
		checkSlotFunc: func(ctx context.Context, venueID string, start, end time.Time) (*service.ConflictView, error) {
			return &service.ConflictView{
				ConflictResult: availability.ConflictResult{
					Admitted:  false,
					Conflicts: []string{"r1"},
				},
				DroppedReservations: 0,
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/venues/v1/conflicts?start=2026-03-04T10:00:00Z&end=2026-03-04T12:00:00Z", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body struct {
		Data struct {
			Admitted  bool     `json:"admitted"`
			Conflicts []string `json:"conflicts"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Data.Admitted {
		t.Error("admitted = true, want false")
	}
	if len(body.Data.Conflicts) != 1 || body.Data.Conflicts[0] != "r1" {
		t.Errorf("conflicts = %v, want [r1]", body.Data.Conflicts)
	}
}
