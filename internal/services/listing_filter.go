package services

import (
	"strings"
	"time"

	"github.com/ankit-bind/shared-space-seekers/internal/models"
	"github.com/ankit-bind/shared-space-seekers/pkg/utils"
)

const (
	DefaultMinRent = 0
	DefaultMaxRent = 3000
)

type GenderPreference string

const (
	GenderAny       GenderPreference = "any"
	GenderMale      GenderPreference = "male"
	GenderFemale    GenderPreference = "female"
	GenderNonBinary GenderPreference = "non-binary"
)

type PetPreference string

const (
	PetsAny PetPreference = "any"
	PetsYes PetPreference = "yes"
	PetsNo  PetPreference = "no"
)

// FilterInput is the raw criteria as collected by the search form.
type FilterInput struct {
	Location         string   `json:"location"`
	MinRent          *float64 `json:"min_rent" validate:"omitempty,gte=0"`
	MaxRent          *float64 `json:"max_rent" validate:"omitempty,gte=0"`
	GenderPreference string   `json:"gender_preference" validate:"omitempty,oneof=any male female non-binary"`
	PetFriendly      string   `json:"pet_friendly" validate:"omitempty,oneof=any yes no"`
	AvailableFrom    string   `json:"available_from"`
}

type FilterCriteria struct {
	Location         string           `json:"location"`
	MinRent          float64          `json:"min_rent"`
	MaxRent          float64          `json:"max_rent"`
	GenderPreference GenderPreference `json:"gender_preference"`
	PetFriendly      PetPreference    `json:"pet_friendly"`
	AvailableFrom    *models.Date     `json:"available_from,omitempty"`
}

func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		MinRent:          DefaultMinRent,
		MaxRent:          DefaultMaxRent,
		GenderPreference: GenderAny,
		PetFriendly:      PetsAny,
	}
}

// NewFilterCriteria validates input and fills unset fields from the defaults.
func NewFilterCriteria(input FilterInput) (FilterCriteria, error) {
	if err := validate.Struct(input); err != nil {
		return FilterCriteria{}, translateValidation(err)
	}

	criteria := DefaultFilterCriteria()
	criteria.Location = strings.TrimSpace(input.Location)
	if input.MinRent != nil {
		criteria.MinRent = *input.MinRent
	}
	if input.MaxRent != nil {
		criteria.MaxRent = *input.MaxRent
	}
	if criteria.MinRent > criteria.MaxRent {
		return FilterCriteria{}, newValidationError("max_rent", "must be greater than or equal to min_rent")
	}
	if input.GenderPreference != "" {
		criteria.GenderPreference = GenderPreference(input.GenderPreference)
	}
	if input.PetFriendly != "" {
		criteria.PetFriendly = PetPreference(input.PetFriendly)
	}
	if raw := strings.TrimSpace(input.AvailableFrom); raw != "" {
		date, err := models.ParseDate(raw)
		if err != nil {
			return FilterCriteria{}, newValidationError("available_from", "must be a date in YYYY-MM-DD form")
		}
		criteria.AvailableFrom = &date
	}

	return criteria, nil
}

// FilterListings returns the listings matching every clause of criteria, in
// input order.
func FilterListings(listings []models.Listing, criteria FilterCriteria) []models.Listing {
	location := strings.ToLower(criteria.Location)
	var availableFrom time.Time
	if criteria.AvailableFrom != nil {
		availableFrom = utils.TruncateDay(criteria.AvailableFrom.Time)
	}

	filtered := make([]models.Listing, 0, len(listings))
	for _, listing := range listings {
		if location != "" && !strings.Contains(strings.ToLower(listing.Location), location) {
			continue
		}
		if listing.RentAmount < criteria.MinRent || listing.RentAmount > criteria.MaxRent {
			continue
		}
		if !availableFrom.IsZero() && utils.TruncateDay(listing.AvailableFrom.Time).Before(availableFrom) {
			continue
		}
		if !matchesPreferences(listing, criteria) {
			continue
		}
		filtered = append(filtered, listing.Clone())
	}
	return filtered
}

// matchesPreferences is the gender and pet clause. Listings carry no
// occupant or pet attributes yet, so both preferences are accepted and
// validated but never exclude a listing.
func matchesPreferences(_ models.Listing, _ FilterCriteria) bool {
	return true
}
