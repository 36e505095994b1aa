package repository

import (
	"context"
	"sync"

	"github.com/ankit-bind/shared-space-seekers/internal/models"
)

type ProfileRepository struct {
	mu      sync.RWMutex
	profile models.Profile
}

func NewProfileRepository(profile models.Profile) *ProfileRepository {
	return &ProfileRepository{profile: profile}
}

func (r *ProfileRepository) Get(_ context.Context) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile := r.profile
	return &profile, nil
}

// UpdatePartial applies every non-nil field of input in one step.
func (r *ProfileRepository) UpdatePartial(_ context.Context, input UpdateProfileInput) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := &r.profile
	setString(&p.FirstName, input.FirstName)
	setString(&p.LastName, input.LastName)
	setString(&p.Email, input.Email)
	setString(&p.Phone, input.Phone)
	setString(&p.Occupation, input.Occupation)
	setString(&p.Bio, input.Bio)
	setString(&p.ProfilePhotoURL, input.ProfilePhotoURL)

	prefs := &p.Preferences
	if input.BudgetMin != nil {
		prefs.BudgetMin = *input.BudgetMin
	}
	if input.BudgetMax != nil {
		prefs.BudgetMax = *input.BudgetMax
	}
	setString(&prefs.PreferredLocation, input.PreferredLocation)
	setString(&prefs.GenderPreference, input.GenderPreference)
	setString(&prefs.Lifestyle, input.Lifestyle)
	if input.PetFriendly != nil {
		prefs.PetFriendly = *input.PetFriendly
	}

	profile := r.profile
	return &profile, nil
}

func setString(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}

type UpdateProfileInput struct {
	FirstName         *string
	LastName          *string
	Email             *string
	Phone             *string
	Occupation        *string
	Bio               *string
	ProfilePhotoURL   *string
	BudgetMin         *float64
	BudgetMax         *float64
	PreferredLocation *string
	GenderPreference  *string
	Lifestyle         *string
	PetFriendly       *bool
}
