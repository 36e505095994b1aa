package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankit-bind/shared-space-seekers/internal/models"
)

func seedListings() []models.Listing {
	return []models.Listing{
		buildListing("1", "Downtown, New York", 850, "2025-05-15", "2025-04-01"),
		buildListing("2", "Brooklyn, New York", 700, "2025-05-01", "2025-04-05"),
		buildListing("3", "Manhattan, New York", 1200, "2025-06-01", "2025-04-10"),
		buildListing("4", "Queens, New York", 750, "2025-05-20", "2025-04-07"),
		buildListing("5", "Williamsburg, Brooklyn", 1100, "2025-06-15", "2025-04-12"),
		buildListing("6", "Park Slope, Brooklyn", 950, "2025-05-25", "2025-04-14"),
	}
}

func buildListing(id, location string, rent float64, availableFrom, createdAt string) models.Listing {
	available, err := models.ParseDate(availableFrom)
	if err != nil {
		panic(err)
	}
	created, err := models.ParseDate(createdAt)
	if err != nil {
		panic(err)
	}
	return models.Listing{
		ID:            id,
		Title:         "Listing " + id,
		Location:      location,
		RentAmount:    rent,
		AvailableFrom: available,
		CreatedAt:     created,
		Images:        []string{},
		Amenities:     []string{},
	}
}

func listingIDs(listings []models.Listing) []string {
	ids := make([]string, 0, len(listings))
	for _, listing := range listings {
		ids = append(ids, listing.ID)
	}
	return ids
}

func mustCriteria(t *testing.T, input FilterInput) FilterCriteria {
	t.Helper()
	criteria, err := NewFilterCriteria(input)
	require.NoError(t, err)
	return criteria
}

func floatPtr(v float64) *float64 { return &v }

func TestFilterListingsDefaultCriteriaIsIdentity(t *testing.T) {
	listings := seedListings()

	filtered := FilterListings(listings, DefaultFilterCriteria())

	assert.Equal(t, listingIDs(listings), listingIDs(filtered))
}

func TestFilterListingsLocationIsCaseInsensitiveSubstring(t *testing.T) {
	criteria := mustCriteria(t, FilterInput{Location: "  BROOKLYN "})

	filtered := FilterListings(seedListings(), criteria)

	assert.Equal(t, []string{"2", "5", "6"}, listingIDs(filtered))
}

func TestFilterListingsRentBoundsAreInclusive(t *testing.T) {
	criteria := mustCriteria(t, FilterInput{MinRent: floatPtr(750), MaxRent: floatPtr(950)})

	filtered := FilterListings(seedListings(), criteria)

	assert.Equal(t, []string{"1", "4", "6"}, listingIDs(filtered))
}

func TestFilterListingsAvailableFromComparesDates(t *testing.T) {
	criteria := mustCriteria(t, FilterInput{AvailableFrom: "2025-06-01"})

	filtered := FilterListings(seedListings(), criteria)

	assert.Equal(t, []string{"3", "5"}, listingIDs(filtered))
}

func TestFilterListingsAvailableFromIgnoresClockPart(t *testing.T) {
	criteria := mustCriteria(t, FilterInput{AvailableFrom: "2025-06-01T18:30:00Z"})

	filtered := FilterListings(seedListings(), criteria)

	assert.Equal(t, []string{"3", "5"}, listingIDs(filtered))
}

func TestFilterListingsCombinesClauses(t *testing.T) {
	criteria := mustCriteria(t, FilterInput{
		Location:      "new york",
		MinRent:       floatPtr(700),
		MaxRent:       floatPtr(900),
		AvailableFrom: "2025-05-10",
	})

	filtered := FilterListings(seedListings(), criteria)

	assert.Equal(t, []string{"1", "4"}, listingIDs(filtered))
}

func TestFilterListingsSingleListingMatchesIffClausesHold(t *testing.T) {
	listing := buildListing("x", "Queens, New York", 750, "2025-05-20", "2025-04-07")

	cases := []struct {
		name  string
		input FilterInput
		match bool
	}{
		{"defaults", FilterInput{}, true},
		{"location hit", FilterInput{Location: "queens"}, true},
		{"location miss", FilterInput{Location: "bronx"}, false},
		{"rent at min", FilterInput{MinRent: floatPtr(750)}, true},
		{"rent below min", FilterInput{MinRent: floatPtr(751)}, false},
		{"rent above max", FilterInput{MaxRent: floatPtr(749)}, false},
		{"available same day", FilterInput{AvailableFrom: "2025-05-20"}, true},
		{"available too early", FilterInput{AvailableFrom: "2025-05-21"}, false},
		{"reserved preferences", FilterInput{GenderPreference: "female", PetFriendly: "yes"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			filtered := FilterListings([]models.Listing{listing}, mustCriteria(t, tc.input))
			if tc.match {
				assert.Equal(t, []string{"x"}, listingIDs(filtered))
			} else {
				assert.Empty(t, filtered)
			}
		})
	}
}

func TestFilterListingsNoMatchReturnsEmptySlice(t *testing.T) {
	filtered := FilterListings(seedListings(), mustCriteria(t, FilterInput{Location: "Chicago"}))

	require.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func TestFilterListingsPreservesInputOrder(t *testing.T) {
	listings := seedListings()
	reversed := make([]models.Listing, 0, len(listings))
	for i := len(listings) - 1; i >= 0; i-- {
		reversed = append(reversed, listings[i])
	}

	filtered := FilterListings(reversed, mustCriteria(t, FilterInput{Location: "brooklyn"}))

	assert.Equal(t, []string{"6", "5", "2"}, listingIDs(filtered))
}

func TestFilterListingsDoesNotShareSlicesWithInput(t *testing.T) {
	listings := seedListings()
	listings[0].Amenities = []string{"WiFi"}

	filtered := FilterListings(listings, DefaultFilterCriteria())
	filtered[0].Amenities[0] = "Pool"

	assert.Equal(t, "WiFi", listings[0].Amenities[0])
}

func TestNewFilterCriteriaDefaults(t *testing.T) {
	criteria, err := NewFilterCriteria(FilterInput{})
	require.NoError(t, err)

	assert.Equal(t, DefaultFilterCriteria(), criteria)
}

func TestNewFilterCriteriaRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		input FilterInput
		field string
	}{
		{"malformed date", FilterInput{AvailableFrom: "15/05/2025"}, "available_from"},
		{"negative min", FilterInput{MinRent: floatPtr(-1)}, "min_rent"},
		{"min above max", FilterInput{MinRent: floatPtr(900), MaxRent: floatPtr(800)}, "max_rent"},
		{"min above default max", FilterInput{MinRent: floatPtr(3500)}, "max_rent"},
		{"unknown gender", FilterInput{GenderPreference: "robot"}, "gender_preference"},
		{"unknown pet choice", FilterInput{PetFriendly: "maybe"}, "pet_friendly"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFilterCriteria(tc.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}
