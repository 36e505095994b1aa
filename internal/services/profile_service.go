package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ankit-bind/shared-space-seekers/internal/metrics"
	"github.com/ankit-bind/shared-space-seekers/internal/models"
	"github.com/ankit-bind/shared-space-seekers/internal/repository"
)

type ProfileStore interface {
	Get(ctx context.Context) (*models.Profile, error)
	UpdatePartial(ctx context.Context, input repository.UpdateProfileInput) (*models.Profile, error)
}

type ProfileService struct {
	profiles ProfileStore
	saveSim  *Simulator
	notifier Notifier
	log      zerolog.Logger
}

func NewProfileService(profiles ProfileStore, saveSim *Simulator, notifier Notifier, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		saveSim:  saveSim,
		notifier: notifierOrNop(notifier),
		log:      log.With().Str("component", "profile").Logger(),
	}
}

func (s *ProfileService) GetProfile(ctx context.Context) (*models.Profile, error) {
	return s.profiles.Get(ctx)
}

// UpdateProfile saves input through the simulated call. Nothing is written
// unless the save commits.
func (s *ProfileService) UpdateProfile(
	ctx context.Context,
	viewerID string,
	input repository.UpdateProfileInput,
) (*models.Profile, error) {
	current, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkBudgetRange(current.Preferences, input); err != nil {
		return nil, err
	}

	var updated *models.Profile
	op := s.saveSim.Submit(ctx, func() error {
		profile, err := s.profiles.UpdatePartial(ctx, input)
		if err != nil {
			return err
		}
		updated = profile
		return nil
	})

	err = op.Wait()
	metrics.SimulatedOperationsTotal.WithLabelValues("update_profile", outcomeLabel(err)).Inc()
	if err != nil {
		s.log.Warn().Err(err).Str("viewer_id", viewerID).Msg("profile update failed")
		if !errors.Is(err, ErrSuperseded) {
			s.notifier.Notify(ctx, viewerID, errorNotification("Failed to update profile"))
		}
		return nil, err
	}

	s.notifier.Notify(ctx, viewerID, successNotification("Profile Updated", "Your profile has been successfully updated."))
	return updated, nil
}

// checkBudgetRange validates the budget bounds after merging the partial
// update into the current preferences.
func checkBudgetRange(current models.ProfilePreferences, input repository.UpdateProfileInput) error {
	budgetMin, budgetMax := current.BudgetMin, current.BudgetMax
	if input.BudgetMin != nil {
		budgetMin = *input.BudgetMin
	}
	if input.BudgetMax != nil {
		budgetMax = *input.BudgetMax
	}
	if budgetMin < 0 {
		return newValidationError("budget_min", "must be 0 or greater")
	}
	if budgetMax < budgetMin {
		return newValidationError("budget_max", "must be greater than or equal to budget_min")
	}
	return nil
}
