package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ankit-bind/shared-space-seekers/internal/metrics"
	"github.com/ankit-bind/shared-space-seekers/internal/models"
	"github.com/ankit-bind/shared-space-seekers/internal/repository"
	"github.com/ankit-bind/shared-space-seekers/pkg/utils"
)

type listingStore interface {
	ListAll(ctx context.Context) ([]models.Listing, error)
	GetByID(ctx context.Context, id string) (*models.Listing, error)
}

type AppliedFilters struct {
	Criteria  FilterCriteria   `json:"criteria"`
	Listings  []models.Listing `json:"listings"`
	AppliedAt time.Time        `json:"applied_at"`
}

type ListingService struct {
	catalog   listingStore
	matcher   *ListingMatcher
	filterSim *Simulator
	saveSim   *Simulator
	notifier  Notifier
	log       zerolog.Logger

	mu      sync.RWMutex
	applied AppliedFilters
}

func NewListingService(
	ctx context.Context,
	catalog listingStore,
	filterSim *Simulator,
	saveSim *Simulator,
	notifier Notifier,
	log zerolog.Logger,
) (*ListingService, error) {
	all, err := catalog.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load listing catalog: %w", err)
	}

	return &ListingService{
		catalog:   catalog,
		matcher:   NewListingMatcher(catalog),
		filterSim: filterSim,
		saveSim:   saveSim,
		notifier:  notifierOrNop(notifier),
		log:       log.With().Str("component", "listings").Logger(),
		applied: AppliedFilters{
			Criteria:  DefaultFilterCriteria(),
			Listings:  all,
			AppliedAt: time.Now().UTC(),
		},
	}, nil
}

// Browse filters the catalog synchronously.
func (s *ListingService) Browse(ctx context.Context, criteria FilterCriteria) ([]models.Listing, error) {
	all, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterListings(all, criteria)
	metrics.FilterRunsTotal.WithLabelValues("browse").Inc()
	metrics.FilterResults.Observe(float64(len(filtered)))
	return filtered, nil
}

// ApplyFilters filters through the simulated remote call and records the
// result as the viewer's applied view.
func (s *ListingService) ApplyFilters(
	ctx context.Context,
	viewerID string,
	criteria FilterCriteria,
) ([]models.Listing, error) {
	all, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var filtered []models.Listing
	op := s.filterSim.Submit(ctx, func() error {
		filtered = FilterListings(all, criteria)

		s.mu.Lock()
		s.applied = AppliedFilters{
			Criteria:  criteria,
			Listings:  filtered,
			AppliedAt: time.Now().UTC(),
		}
		s.mu.Unlock()
		return nil
	})

	err = op.Wait()
	metrics.SimulatedOperationsTotal.WithLabelValues("apply_filters", outcomeLabel(err)).Inc()
	if err != nil {
		s.log.Warn().Err(err).Str("viewer_id", viewerID).Msg("apply filters did not commit")
		if errors.Is(err, ErrSimulatedFailure) {
			s.notifier.Notify(ctx, viewerID, errorNotification("Failed to apply filters"))
		}
		return nil, err
	}

	metrics.FilterRunsTotal.WithLabelValues("apply").Inc()
	metrics.FilterResults.Observe(float64(len(filtered)))
	s.log.Debug().Str("viewer_id", viewerID).Int("results", len(filtered)).Msg("filters applied")
	return filtered, nil
}

func (s *ListingService) Applied() AppliedFilters {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.applied
	out.Listings = make([]models.Listing, 0, len(s.applied.Listings))
	for _, listing := range s.applied.Listings {
		out.Listings = append(out.Listings, listing.Clone())
	}
	return out
}

func (s *ListingService) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	listing, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("listing %q: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return listing, nil
}

func (s *ListingService) ContactOwner(ctx context.Context, viewerID string, id string) error {
	listing, err := s.GetListing(ctx, id)
	if err != nil {
		return err
	}

	recipient := "the lister"
	if listing.Owner != nil && listing.Owner.Name != "" {
		recipient = listing.Owner.Name
	}
	s.notifier.Notify(ctx, viewerID, successNotification(
		"Message Sent!",
		fmt.Sprintf("Your interest in %q was shared with %s.", listing.Title, recipient),
	))
	return nil
}

func (s *ListingService) Featured(ctx context.Context, profile *models.Profile, limit int) ([]models.ListingWithScore, error) {
	return s.matcher.GetMatchedListings(ctx, profile, limit)
}

// SubmitDraft validates a new listing and runs the simulated save. Listings
// have no creation lifecycle, so the catalog is left as it is.
func (s *ListingService) SubmitDraft(
	ctx context.Context,
	viewerID string,
	draft models.ListingDraft,
) (*models.ListingSubmission, error) {
	normalized, err := normalizeDraft(draft)
	if err != nil {
		return nil, err
	}

	var submission *models.ListingSubmission
	op := s.saveSim.Submit(ctx, func() error {
		submission = &models.ListingSubmission{
			ID:          uuid.NewString(),
			Location:    normalized.Neighborhood + ", " + normalized.City,
			Draft:       normalized,
			SubmittedAt: utils.FormatTimestamp(time.Now()),
		}
		return nil
	})

	err = op.Wait()
	metrics.SimulatedOperationsTotal.WithLabelValues("submit_listing", outcomeLabel(err)).Inc()
	if err != nil {
		s.log.Warn().Err(err).Str("viewer_id", viewerID).Msg("listing submission failed")
		if !errors.Is(err, ErrSuperseded) {
			s.notifier.Notify(ctx, viewerID, errorNotification("Failed to create listing"))
		}
		return nil, err
	}

	s.log.Info().Str("viewer_id", viewerID).Str("submission_id", submission.ID).Msg("listing submitted")
	s.notifier.Notify(ctx, viewerID, successNotification("Success!", "Your listing has been created."))
	return submission, nil
}

func normalizeDraft(draft models.ListingDraft) (models.ListingDraft, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Description = strings.TrimSpace(draft.Description)
	draft.City = strings.TrimSpace(draft.City)
	draft.Neighborhood = strings.TrimSpace(draft.Neighborhood)
	draft.AvailableFrom = strings.TrimSpace(draft.AvailableFrom)
	if draft.GenderPreference == "" {
		draft.GenderPreference = string(GenderAny)
	}

	if err := validate.Struct(draft); err != nil {
		return models.ListingDraft{}, translateValidation(err)
	}

	date, err := models.ParseDate(draft.AvailableFrom)
	if err != nil {
		return models.ListingDraft{}, newValidationError("available_from", "must be a date in YYYY-MM-DD form")
	}
	draft.AvailableFrom = date.String()

	if len(draft.Images) > MaxListingImages {
		draft.Images = draft.Images[:MaxListingImages]
	}
	images := make([]string, 0, len(draft.Images))
	for i, ref := range draft.Images {
		if err := ValidateImageReference(fmt.Sprintf("images[%d]", i), ref); err != nil {
			return models.ListingDraft{}, err
		}
		images = append(images, strings.TrimSpace(ref))
	}
	draft.Images = images
	if draft.Amenities == nil {
		draft.Amenities = []string{}
	}

	return draft, nil
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrSuperseded):
		return "superseded"
	case errors.Is(err, ErrBusy):
		return "busy"
	case errors.Is(err, ErrSimulatedFailure):
		return "failure"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
