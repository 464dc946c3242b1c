package service

import (
	"context"
	"io"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	admissionerrors "venued/internal/admissions/errors"
	"venued/internal/admissions/validator"
	venueerrors "venued/internal/venues/errors"
	venuevalidator "venued/internal/venues/validator"
	"venued/pkg/config"
	mongotx "venued/pkg/db/mongo"
	apperrors "venued/pkg/errors"
	"venued/pkg/logger"
	"venued/pkg/model"
)

// --- Mocks ---

type mockReservationRepo struct {
	CreateFunc       func(ctx context.Context, r *model.Reservation) error
	FindByIDFunc     func(ctx context.Context, id string) (*model.Reservation, error)
	FindByVenueFunc  func(ctx context.Context, venueID string, from, to time.Time) ([]*model.Reservation, error)
	UpdateStatusFunc func(ctx context.Context, id string, status string) error
}

func (m *mockReservationRepo) Create(ctx context.Context, r *model.Reservation) error {
	return m.CreateFunc(ctx, r)
}

func (m *mockReservationRepo) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockReservationRepo) FindByVenue(ctx context.Context, venueID string, from, to time.Time) ([]*model.Reservation, error) {
	return m.FindByVenueFunc(ctx, venueID, from, to)
}

func (m *mockReservationRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	return m.UpdateStatusFunc(ctx, id, status)
}

func (m *mockReservationRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.SessionContext(nil))
}

type mockVenueRepo struct {
	FindByIDFunc func(ctx context.Context, id string) (*model.Venue, error)
}

func (m *mockVenueRepo) Create(ctx context.Context, v *model.Venue) error { return nil }

func (m *mockVenueRepo) FindByID(ctx context.Context, id string) (*model.Venue, error) {
	return m.FindByIDFunc(ctx, id)
}

type mockLockRepo struct {
	AcquireFunc func(ctx context.Context, lock *model.VenueLock) error
	ReleaseFunc func(ctx context.Context, lockID string) error
	acquired    []string
	released    []string
}

func (m *mockLockRepo) Acquire(ctx context.Context, lock *model.VenueLock) error {
	m.acquired = append(m.acquired, lock.ID)
	if m.AcquireFunc != nil {
		return m.AcquireFunc(ctx, lock)
	}
	return nil
}

func (m *mockLockRepo) Release(ctx context.Context, lockID string) error {
	m.released = append(m.released, lockID)
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, lockID)
	}
	return nil
}

type mockPublisher struct {
	admitted  []*model.Reservation
	cancelled []*model.Reservation
	err       error
}

func (m *mockPublisher) ReservationAdmitted(ctx context.Context, r *model.Reservation) error {
	m.admitted = append(m.admitted, r)
	return m.err
}

func (m *mockPublisher) ReservationCancelled(ctx context.Context, r *model.Reservation) error {
	m.cancelled = append(m.cancelled, r)
	return m.err
}

// --- Fixtures ---

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log:                           logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard}),
		DefaultReservationDurationMin: 60,
		GridHourStep:                  1,
		AdmissionLockTTL:              10 * time.Second,
	}
}

func testVenue() *model.Venue {
	return &model.Venue{
		ID:        "507f1f77bcf86cd799439011",
		Name:      "Grand Hall",
		City:      "Lisbon",
		TimeZone:  "Europe/Lisbon",
		OpenTime:  "08:00",
		CloseTime: "22:00",
	}
}

func testReservation(startH, endH int) *model.Reservation {
	day := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	return &model.Reservation{
		VenueID:      "507f1f77bcf86cd799439011",
		ServiceLabel: "Wedding",
		StartTime:    day.Add(time.Duration(startH) * time.Hour),
		EndTime:      day.Add(time.Duration(endH) * time.Hour),
		Status:       model.StatusConfirmed,
	}
}

func newTestService(t *testing.T, reservations *mockReservationRepo, venues *mockVenueRepo, locks *mockLockRepo, publisher *mockPublisher) AdmissionService {
	t.Helper()
	cfg := testConfig(t)
	return NewAdmissionService(
		reservations,
		venues,
		locks,
		validator.NewReservationValidator(cfg.Log),
		venuevalidator.NewVenueValidator(cfg.Log),
		publisher,
		cfg,
	)
}

// --- Tests ---

func TestAdmit_Success(t *testing.T) {
	created := false
	reservations := &mockReservationRepo{
		FindByVenueFunc: func(ctx context.Context, venueID string, from, to time.Time) ([]*model.Reservation, error) {
			return nil, nil
		},
		CreateFunc: func(ctx context.Context, r *model.Reservation) error {
			created = true
			r.ID = "507f1f77bcf86cd799439099"
			return nil
		},
	}
	venues := &mockVenueRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*model.Venue, error) {
			return testVenue(), nil
		},
	}
	locks := &mockLockRepo{}
	publisher := &mockPublisher{}

	svc := newTestService(t, reservations, venues, locks, publisher)

	reservation := testReservation(10, 12)
	if err := svc.Admit(context.Background(), reservation); err != nil {
		t.Fatalf("Admit() error = %v, want nil", err)
	}
	if !created {
		t.Error("Admit() did not persist the reservation")
	}
	if len(publisher.admitted) != 1 {
		t.Errorf("published %d admitted events, want 1", len(publisher.admitted))
	}
	if len(locks.acquired) != 1 || len(locks.released) != 1 {
		t.Errorf("lock acquired %d / released %d times, want 1 / 1", len(locks.acquired), len(locks.released))
	}
	if locks.acquired[0] != "admission_lock_507f1f77bcf86cd799439011" {
		t.Errorf("lock ID = %q, want venue-derived ID", locks.acquired[0])
	}
}

func TestAdmit_Conflict(t *testing.T) {
	existing := testReservation(11, 13)
	existing.ID = "507f1f77bcf86cd799439022"

	reservations := &mockReservationRepo{
		FindByVenueFunc: func(ctx context.Context, venueID string, from, to time.Time) ([]*model.Reservation, error) {
			return []*model.Reservation{existing}, nil
		},
		CreateFunc: func(ctx context.Context, r *model.Reservation) error {
			t.Error("Create() called for a conflicting reservation")
			return nil
		},
	}
	venues := &mockVenueRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*model.Venue, error) {
			return testVenue(), nil
		},
	}
	locks := &mockLockRepo{}
	publisher := &mockPublisher{}

	svc := newTestService(t, reservations, venues, locks, publisher)

	err := svc.Admit(context.Background(), testReservation(10, 12))
	if err == nil {
		t.Fatal("Admit() error = nil, want conflict")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("error code = %q, want %q", appErr.Code, apperrors.CodeConflict)
	}
	conflicts, ok := appErr.Details["conflicts"].([]string)
	if !ok || len(conflicts) != 1 || conflicts[0] != existing.ID {
		t.Errorf("conflict details = %v, want [%s]", appErr.Details["conflicts"], existing.ID)
	}
	if len(publisher.admitted) != 0 {
		t.Error("published an admitted event for a rejected reservation")
	}
	if len(locks.released) != 1 {
		t.Error("lock was not released after a conflict")
	}
}

func TestAdmit_AdjacentWindowsAdmitted(t *testing.T) {
	existing := testReservation(10, 12)
	existing.ID = "507f1f77bcf86cd799439022"

	reservations := &mockReservationRepo{
		FindByVenueFunc: func(ctx context.Context, venueID string, from, to time.Time) ([]*model.Reservation, error) {
			return []*model.Reservation{existing}, nil
		},
		CreateFunc: func(ctx context.Context, r *model.Reservation) error { return nil },
	}
	venues := &mockVenueRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*model.Venue, error) {
			return testVenue(), nil
		},
	}
	svc := newTestService(t, reservations, venues, &mockLockRepo{}, &mockPublisher{})

	if err := svc.Admit(context.Background(), testReservation(12, 14)); err != nil {
		t.Errorf("Admit() error = %v, want nil for back-to-back windows", err)
	}
}

func TestAdmit_AdjacencyIsConflictOption(t *testing.T) {
	existing := testReservation(12, 14)
	existing.ID = "507f1f77bcf86cd799439022"

	var snapshotFrom, snapshotTo time.Time
	reservations := &mockReservationRepo{
		FindByVenueFunc: func(ctx context.Context, venueID string, from, to time.Time) ([]*model.Reservation, error) {
			snapshotFrom, snapshotTo = from, to
			// Mirror the storage range filter: strict bounds, like the
			// Mongo query.
			if !existing.StartTime.Before(to) || !existing.EndTime.After(from) {
				return nil, nil
			}
			return []*model.Reservation{existing}, nil
		},
		CreateFunc: func(ctx context.Context, r *model.Reservation) error {
			t.Error("Create() called for an adjacent reservation with adjacency-is-conflict set")
			return nil
		},
	}
	venues := &mockVenueRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*model.Venue, error) {
			return testVenue(), nil
		},
	}

	cfg := testConfig(t)
	cfg.AdjacencyIsConflict = true
	svc := NewAdmissionService(
		reservations,
		venues,
		&mockLockRepo{},
		validator.NewReservationValidator(cfg.Log),
		venuevalidator.NewVenueValidator(cfg.Log),
		&mockPublisher{},
		cfg,
	)

	candidate := testReservation(10, 12)
	err := svc.Admit(context.Background(), candidate)
	if err == nil {
		t.Fatal("Admit() error = nil, want conflict for a back-to-back reservation")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Fatalf("error code = %q, want %q", appErr.Code, apperrors.CodeConflict)
	}
	conflicts, ok := appErr.Details["conflicts"].([]string)
	if !ok || len(conflicts) != 1 || conflicts[0] != existing.ID {
		t.Errorf("conflict details = %v, want [%s]", appErr.Details["conflicts"], existing.ID)
	}
	if !snapshotFrom.Before(candidate.StartTime) || !snapshotTo.After(candidate.EndTime) {
		t.Errorf("snapshot range [%v, %v) not widened beyond the candidate", snapshotFrom, snapshotTo)
	}
}

func TestAdmit_LockBusy(t *testing.T) {
	reservations := &mockReservationRepo{
		FindByVenueFunc: func(ctx context.Context, venueID string, from, to time.Time) ([]*model.Reservation, error) {
			t.Error("snapshot read attempted without the lock")
			return nil, nil
		},
		CreateFunc: func(ctx context.Context, r *model.Reservation) error { return nil },
	}
	venues := &mockVenueRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*model.Venue, error) {
			return testVenue(), nil
		},
	}
	locks := &mockLockRepo{
		AcquireFunc: func(ctx context.Context, lock *model.VenueLock) error {
			return admissionerrors.ErrLockBusy
		},
	}
	svc := newTestService(t, reservations, venues, locks, &mockPublisher{})

	err := svc.Admit(context.Background(), testReservation(10, 12))
	if err == nil {
		t.Fatal("Admit() error = nil, want admission race")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeAdmissionRace {
		t.Errorf("error code = %q, want %q", appErr.Code, apperrors.CodeAdmissionRace)
	}
	if len(locks.released) != 0 {
		t.Error("released a lock that was never acquired")
	}
}

func TestAdmit_MalformedVenueConfig(t *testing.T) {
	venue := testVenue()
	venue.OpenTime = "22:00"
	venue.CloseTime = "08:00"

	venues := &mockVenueRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*model.Venue, error) {
			return venue, nil
		},
	}
	locks := &mockLockRepo{}
	svc := newTestService(t, &mockReservationRepo{}, venues, locks, &mockPublisher{})

	err := svc.Admit(context.Background(), testReservation(10, 12))
	if err == nil {
		t.Fatal("Admit() error = nil, want venue config error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeVenueConfig {
		t.Errorf("error code = %q, want %q", appErr.Code, apperrors.CodeVenueConfig)
	}
	if len(locks.acquired) != 0 {
		t.Error("acquired a lock for a venue with malformed configuration")
	}
}

func TestAdmit_VenueNotFound(t *testing.T) {
	venues := &mockVenueRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*model.Venue, error) {
			return nil, venueerrors.ErrNotFound
		},
	}
	svc := newTestService(t, &mockReservationRepo{}, venues, &mockLockRepo{}, &mockPublisher{})

	err := svc.Admit(context.Background(), testReservation(10, 12))
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("error code = %q, want %q", appErr.Code, apperrors.CodeNotFound)
	}
}

func TestAdmit_ValidationFailure(t *testing.T) {
	svc := newTestService(t, &mockReservationRepo{}, &mockVenueRepo{}, &mockLockRepo{}, &mockPublisher{})

	reservation := testReservation(10, 12)
	reservation.ServiceLabel = ""

	err := svc.Admit(context.Background(), reservation)
	if err == nil {
		t.Fatal("Admit() error = nil, want validation error")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
		t.Errorf("error code = %q, want %q", appErr.Code, apperrors.CodeValidation)
	}
}

func TestAdmit_DerivedEndFromDuration(t *testing.T) {
	var persisted *model.Reservation
	reservations := &mockReservationRepo{
		FindByVenueFunc: func(ctx context.Context, venueID string, from, to time.Time) ([]*model.Reservation, error) {
			if got := to.Sub(from); got != 90*time.Minute {
				t.Errorf("snapshot window = %s, want 90m derived from duration", got)
			}
			return nil, nil
		},
		CreateFunc: func(ctx context.Context, r *model.Reservation) error {
			persisted = r
			return nil
		},
	}
	venues := &mockVenueRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*model.Venue, error) {
			return testVenue(), nil
		},
	}
	svc := newTestService(t, reservations, venues, &mockLockRepo{}, &mockPublisher{})

	reservation := testReservation(10, 0)
	reservation.EndTime = time.Time{}
	reservation.DurationMin = 90

	if err := svc.Admit(context.Background(), reservation); err != nil {
		t.Fatalf("Admit() error = %v, want nil", err)
	}
	if persisted == nil {
		t.Fatal("reservation was not persisted")
	}
}

func TestCancel_Success(t *testing.T) {
	updated := ""
	reservations := &mockReservationRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*model.Reservation, error) {
			r := testReservation(10, 12)
			r.ID = id
			return r, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id string, status string) error {
			updated = status
			return nil
		},
	}
	publisher := &mockPublisher{}
	svc := newTestService(t, reservations, &mockVenueRepo{}, &mockLockRepo{}, publisher)

	if err := svc.Cancel(context.Background(), "507f1f77bcf86cd799439099"); err != nil {
		t.Fatalf("Cancel() error = %v, want nil", err)
	}
	if updated != model.StatusCancelled {
		t.Errorf("status = %q, want %q", updated, model.StatusCancelled)
	}
	if len(publisher.cancelled) != 1 {
		t.Errorf("published %d cancelled events, want 1", len(publisher.cancelled))
	}
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	reservations := &mockReservationRepo{
		FindByIDFunc: func(ctx context.Context, id string) (*model.Reservation, error) {
			r := testReservation(10, 12)
			r.ID = id
			r.Status = model.StatusCancelled
			return r, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id string, status string) error {
			t.Error("UpdateStatus() called for an already cancelled reservation")
			return nil
		},
	}
	publisher := &mockPublisher{}
	svc := newTestService(t, reservations, &mockVenueRepo{}, &mockLockRepo{}, publisher)

	if err := svc.Cancel(context.Background(), "507f1f77bcf86cd799439099"); err != nil {
		t.Fatalf("Cancel() error = %v, want nil", err)
	}
	if len(publisher.cancelled) != 0 {
		t.Error("published a cancelled event without a state change")
	}
}
