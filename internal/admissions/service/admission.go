package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	admissionerrors "venued/internal/admissions/errors"
	"venued/internal/admissions/events"
	lockrepo "venued/internal/admissions/repository"
	"venued/internal/admissions/validator"
	reservationerrors "venued/internal/reservations/errors"
	reservationrepo "venued/internal/reservations/repository"
	venueerrors "venued/internal/venues/errors"
	venuerepo "venued/internal/venues/repository"
	venuevalidator "venued/internal/venues/validator"
	"venued/pkg/availability"
	"venued/pkg/config"
	apperrors "venued/pkg/errors"
	"venued/pkg/model"
)

// AdmissionService is the single writer of reservations. Admit runs the
// check-then-persist sequence as one critical section per venue; admissions
// against different venues proceed in parallel, and read queries never wait
// on the lock.
type AdmissionService interface {
	Admit(ctx context.Context, reservation *model.Reservation) error
	Cancel(ctx context.Context, id string) error
}

type admissionService struct {
	reservations   reservationrepo.ReservationRepository
	venues         venuerepo.VenueRepository
	locks          lockrepo.VenueLockRepository
	validator      *validator.ReservationValidator
	venueValidator *venuevalidator.VenueValidator
	events         events.Publisher
	cfg            *config.Config
}

func NewAdmissionService(
	reservations reservationrepo.ReservationRepository,
	venues venuerepo.VenueRepository,
	locks lockrepo.VenueLockRepository,
	reservationValidator *validator.ReservationValidator,
	venueValidator *venuevalidator.VenueValidator,
	publisher events.Publisher,
	cfg *config.Config,
) AdmissionService {
	return &admissionService{
		reservations:   reservations,
		venues:         venues,
		locks:          locks,
		validator:      reservationValidator,
		venueValidator: venueValidator,
		events:         publisher,
		cfg:            cfg,
	}
}

func (s *admissionService) Admit(ctx context.Context, reservation *model.Reservation) error {
	s.applyDefaults(reservation)

	if err := s.validator.Validate(reservation); err != nil {
		s.cfg.Log.Warn("Reservation validation failed", "error", err)
		return apperrors.Validation("Reservation validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	venue, err := s.loadVenue(ctx, reservation.VenueID)
	if err != nil {
		return err
	}
	if err := s.venueValidator.Validate(venue); err != nil {
		s.cfg.Log.Error("Venue has malformed configuration",
			"venue_id", venue.ID,
			"error", err,
		)
		return apperrors.VenueConfig(err.Error())
	}

	opts := s.cfg.EngineOptions()
	candidate, err := s.candidateWindow(reservation, opts)
	if err != nil {
		return apperrors.InvalidInput(err.Error())
	}

	if err := s.acquireVenueLock(ctx, reservation.VenueID); err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseVenueLock(ctx, reservation.VenueID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release admission lock",
				"venue_id", reservation.VenueID,
				"error", releaseErr,
			)
		}
	}()

	horizon := availability.SnapshotHorizon(candidate, opts)

	err = s.reservations.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		snapshot, err := s.reservations.FindByVenue(sessCtx, reservation.VenueID, horizon.Start, horizon.End)
		if err != nil {
			return apperrors.Internal("Failed to load reservation snapshot", err)
		}

		idx := availability.BuildIndex(reservation.VenueID, snapshot, horizon, opts)
		if idx.Dropped > 0 {
			s.cfg.Log.Warn("Dropped malformed reservations during admission check",
				"venue_id", reservation.VenueID,
				"dropped", idx.Dropped,
				"warnings", idx.Warnings,
			)
		}

		result := availability.Check(idx, candidate, opts)
		if !result.Admitted {
			return apperrors.Conflict("Requested window overlaps existing reservations").
				WithDetails(map[string]any{"conflicts": result.Conflicts})
		}

		if err := s.reservations.Create(sessCtx, reservation); err != nil {
			return apperrors.Internal("Failed to create reservation", err)
		}
		return nil
	})
	if err != nil {
		if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
			s.cfg.Log.Error("Failed to admit reservation",
				"venue_id", reservation.VenueID,
				"error", err,
			)
		}
		return err
	}

	s.publish(ctx, events.EventReservationAdmitted, reservation, s.events.ReservationAdmitted)

	s.cfg.Log.Info("Reservation admitted",
		"id", reservation.ID,
		"venue_id", reservation.VenueID,
		"start_time", candidate.Start,
		"end_time", candidate.End,
	)
	return nil
}

func (s *admissionService) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	reservation, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationerrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Reservation", id)
		}
		if errors.Is(err, reservationerrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid reservation ID format")
		}
		return apperrors.Internal("Failed to retrieve reservation", err)
	}

	if reservation.Status == model.StatusCancelled {
		return nil
	}

	if err := s.reservations.UpdateStatus(ctx, id, model.StatusCancelled); err != nil {
		return apperrors.Internal("Failed to cancel reservation", err)
	}
	reservation.Status = model.StatusCancelled

	s.publish(ctx, events.EventReservationCancelled, reservation, s.events.ReservationCancelled)

	s.cfg.Log.Info("Reservation cancelled", "id", id, "venue_id", reservation.VenueID)
	return nil
}

// --- Helpers ---

func (s *admissionService) applyDefaults(r *model.Reservation) {
	if r.Status == "" {
		r.Status = model.StatusConfirmed
	}
}

func (s *admissionService) loadVenue(ctx context.Context, venueID string) (*model.Venue, error) {
	venue, err := s.venues.FindByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Venue", venueID)
		}
		if errors.Is(err, venueerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid venue ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve venue", err)
	}
	return venue, nil
}

// candidateWindow derives the half-open window the admission is asking for,
// using the same end-derivation rules as the reservation index.
func (s *admissionService) candidateWindow(r *model.Reservation, opts availability.Options) (availability.TimeWindow, error) {
	end := r.EndTime
	if end.IsZero() {
		d := opts.DefaultReservationDuration
		if r.DurationMin > 0 {
			d = time.Duration(r.DurationMin) * time.Minute
		}
		end = r.StartTime.Add(d)
	}
	w, err := availability.NewTimeWindow(r.StartTime, end)
	if err != nil {
		return availability.TimeWindow{}, fmt.Errorf("%w: %v", admissionerrors.ErrInvalidTimeRange, err)
	}
	return w, nil
}

// acquireVenueLock claims the venue's admission critical section. The lock ID
// is derived from the venue alone, so all admissions for one venue serialize
// while other venues proceed in parallel.
func (s *admissionService) acquireVenueLock(ctx context.Context, venueID string) error {
	lock := &model.VenueLock{
		ID:        lockID(venueID),
		ExpiresAt: time.Now().Add(s.cfg.AdmissionLockTTL),
	}

	if err := s.locks.Acquire(ctx, lock); err != nil {
		if errors.Is(err, admissionerrors.ErrLockBusy) {
			return apperrors.AdmissionRace("Another admission for this venue is in progress. Retry the request.")
		}
		return apperrors.Internal("Failed to acquire admission lock", err)
	}
	return nil
}

func (s *admissionService) releaseVenueLock(ctx context.Context, venueID string) error {
	return s.locks.Release(ctx, lockID(venueID))
}

func lockID(venueID string) string {
	return fmt.Sprintf("admission_lock_%s", venueID)
}

func (s *admissionService) publish(ctx context.Context, eventType string, r *model.Reservation, fn func(context.Context, *model.Reservation) error) {
	if s.events == nil {
		return
	}
	if err := fn(ctx, r); err != nil {
		s.cfg.Log.Error("Failed to publish admission event",
			"event_type", eventType,
			"reservation_id", r.ID,
			"venue_id", r.VenueID,
			"error", err,
		)
	}
}
