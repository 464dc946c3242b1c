package service

import (
	"context"
	"errors"

	venueerrors "venued/internal/venues/errors"
	"venued/internal/venues/repository"
	"venued/internal/venues/validator"
	"venued/pkg/config"
	apperrors "venued/pkg/errors"
	"venued/pkg/model"
)

type VenueService interface {
	Create(ctx context.Context, venue *model.Venue) error
	GetByID(ctx context.Context, id string) (*model.Venue, error)
}

type venueService struct {
	repo      repository.VenueRepository
	validator *validator.VenueValidator
	cfg       *config.Config
}

func NewVenueService(
	repo repository.VenueRepository,
	validator *validator.VenueValidator,
	cfg *config.Config,
) VenueService {
	return &venueService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *venueService) Create(ctx context.Context, venue *model.Venue) error {
	if err := s.validator.Validate(venue); err != nil {
		s.cfg.Log.Warn("Venue validation failed",
			"name", venue.Name,
			"error", err,
		)
		return apperrors.Validation("Venue validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if err := s.repo.Create(ctx, venue); err != nil {
		s.cfg.Log.Error("Failed to create venue", "name", venue.Name, "error", err)
		return apperrors.Internal("Failed to create venue", err)
	}

	s.cfg.Log.Info("Venue created", "id", venue.ID, "name", venue.Name, "city", venue.City)
	return nil
}

func (s *venueService) GetByID(ctx context.Context, id string) (*model.Venue, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Venue ID cannot be empty")
	}

	venue, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, venueerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Venue", id)
		}
		if errors.Is(err, venueerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid venue ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve venue", err)
	}
	return venue, nil
}
