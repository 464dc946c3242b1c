package service

import (
	"context"
	"errors"
	"time"

	reservationrepo "venued/internal/reservations/repository"
	venueerrors "venued/internal/venues/errors"
	venuerepo "venued/internal/venues/repository"
	"venued/pkg/availability"
	"venued/pkg/config"
	apperrors "venued/pkg/errors"
	"venued/pkg/model"
)

// occupancyLookahead bounds how far ahead the occupancy query scans for the
// next transition. Beyond it ChangesAt is simply reported as open-ended.
const occupancyLookahead = 24 * time.Hour

// OccupancyView is the wire shape of an occupancy query. DroppedReservations
// counts records that were skipped as malformed while answering it.
type OccupancyView struct {
	availability.OccupancyStatus
	DroppedReservations int `json:"dropped_reservations"`
}

type GridView struct {
	Date                string                    `json:"date"`
	TimeZone            string                    `json:"time_zone"`
	Cells               []availability.HourlyCell `json:"cells"`
	DroppedReservations int                       `json:"dropped_reservations"`
}

type ConflictView struct {
	availability.ConflictResult
	DroppedReservations int `json:"dropped_reservations"`
}

// AvailabilityService answers read-only availability questions. It never
// writes and never takes the admission lock, so queries cannot delay or be
// delayed by writers.
type AvailabilityService interface {
	Occupancy(ctx context.Context, venueID string, at time.Time) (*OccupancyView, error)
	DayGrid(ctx context.Context, venueID string, date availability.LocalDate) (*GridView, error)
	CheckSlot(ctx context.Context, venueID string, start, end time.Time) (*ConflictView, error)
}

type availabilityService struct {
	venues       venuerepo.VenueRepository
	reservations reservationrepo.ReservationRepository
	cfg          *config.Config
}

func NewAvailabilityService(
	venues venuerepo.VenueRepository,
	reservations reservationrepo.ReservationRepository,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		venues:       venues,
		reservations: reservations,
		cfg:          cfg,
	}
}

func (s *availabilityService) Occupancy(ctx context.Context, venueID string, at time.Time) (*OccupancyView, error) {
	if _, err := s.loadVenue(ctx, venueID); err != nil {
		return nil, err
	}

	horizon, err := availability.NewTimeWindow(at, at.Add(occupancyLookahead))
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	idx, err := s.buildIndex(ctx, venueID, horizon)
	if err != nil {
		return nil, err
	}

	status := availability.Evaluate(idx, at)
	return &OccupancyView{
		OccupancyStatus:     status,
		DroppedReservations: idx.Dropped,
	}, nil
}

func (s *availabilityService) DayGrid(ctx context.Context, venueID string, date availability.LocalDate) (*GridView, error) {
	venue, err := s.loadVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	loc, err := availability.LoadZone(venue.TimeZone)
	if err != nil {
		return nil, apperrors.VenueConfig(err.Error())
	}

	// The zero date means "today", resolved in the venue's zone so venues far
	// from UTC get the right civil day.
	if date == (availability.LocalDate{}) {
		date = availability.LocalDateOf(time.Now(), loc)
	}

	horizon, err := dayHorizon(date, loc)
	if err != nil {
		return nil, apperrors.Internal("Failed to compute day horizon", err)
	}

	idx, err := s.buildIndex(ctx, venueID, horizon)
	if err != nil {
		return nil, err
	}

	cells, err := availability.DayGrid(idx, venue, date, s.cfg.EngineOptions())
	if err != nil {
		if errors.Is(err, availability.ErrInvalidVenueConfig) {
			return nil, apperrors.VenueConfig(err.Error())
		}
		return nil, apperrors.Internal("Failed to generate hourly grid", err)
	}

	return &GridView{
		Date:                date.String(),
		TimeZone:            venue.TimeZone,
		Cells:               cells,
		DroppedReservations: idx.Dropped,
	}, nil
}

func (s *availabilityService) CheckSlot(ctx context.Context, venueID string, start, end time.Time) (*ConflictView, error) {
	if _, err := s.loadVenue(ctx, venueID); err != nil {
		return nil, err
	}

	opts := s.cfg.EngineOptions()
	candidate, err := availability.NewTimeWindow(start, end)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	idx, err := s.buildIndex(ctx, venueID, availability.SnapshotHorizon(candidate, opts))
	if err != nil {
		return nil, err
	}

	result := availability.Check(idx, candidate, opts)
	return &ConflictView{
		ConflictResult:      result,
		DroppedReservations: idx.Dropped,
	}, nil
}

func (s *availabilityService) loadVenue(ctx context.Context, venueID string) (*model.Venue, error) {
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

func (s *availabilityService) buildIndex(ctx context.Context, venueID string, horizon availability.TimeWindow) (*availability.Index, error) {
	snapshot, err := s.reservations.FindByVenue(ctx, venueID, horizon.Start, horizon.End)
	if err != nil {
		return nil, apperrors.Internal("Failed to load reservations", err)
	}

	idx := availability.BuildIndex(venueID, snapshot, horizon, s.cfg.EngineOptions())
	if idx.Dropped > 0 {
		s.cfg.Log.Warn("Dropped malformed reservations during availability query",
			"venue_id", venueID,
			"dropped", idx.Dropped,
			"warnings", idx.Warnings,
		)
	}
	return idx, nil
}

// dayHorizon spans the venue-local calendar day, DST transitions included.
func dayHorizon(date availability.LocalDate, loc *time.Location) (availability.TimeWindow, error) {
	start := date.At(availability.ClockTime{}, loc)
	next := availability.LocalDate{Year: date.Year, Month: date.Month, Day: date.Day + 1}
	end := next.At(availability.ClockTime{}, loc)
	return availability.NewTimeWindow(start, end)
}
