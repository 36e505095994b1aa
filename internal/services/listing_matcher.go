package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/ankit-bind/shared-space-seekers/internal/models"
	"github.com/ankit-bind/shared-space-seekers/pkg/utils"
)

type ListingCatalog interface {
	ListAll(ctx context.Context) ([]models.Listing, error)
}

// ListingMatcher ranks listings against a seeker's profile preferences.
type ListingMatcher struct {
	catalog ListingCatalog
	now     func() time.Time
}

func NewListingMatcher(catalog ListingCatalog) *ListingMatcher {
	return &ListingMatcher{catalog: catalog, now: time.Now}
}

func (m *ListingMatcher) GetMatchedListings(
	ctx context.Context,
	profile *models.Profile,
	limit int,
) ([]models.ListingWithScore, error) {
	listings, err := m.catalog.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	reference := utils.TruncateDay(m.now())
	matched := make([]models.ListingWithScore, 0, len(listings))
	for _, listing := range listings {
		matched = append(matched, models.ListingWithScore{
			Listing:    listing,
			MatchScore: calculateMatchScore(profile, &listing, reference),
		})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].MatchScore == matched[j].MatchScore {
			return matched[i].CreatedAt.After(matched[j].CreatedAt.Time)
		}
		return matched[i].MatchScore > matched[j].MatchScore
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

func calculateMatchScore(profile *models.Profile, listing *models.Listing, reference time.Time) int {
	if profile == nil {
		return 0
	}
	prefs := profile.Preferences
	score := 0

	if location := normalize(prefs.PreferredLocation); location != "" &&
		strings.Contains(normalize(listing.Location), location) {
		score += 40
	}

	if prefs.BudgetMax > 0 {
		switch {
		case listing.RentAmount >= prefs.BudgetMin && listing.RentAmount <= prefs.BudgetMax:
			score += 30
		case listing.RentAmount > prefs.BudgetMax && listing.RentAmount <= prefs.BudgetMax*1.1:
			score += 15
		}
	}

	amenityScore := 0
	amenities := normalizeValues(listing.Amenities)
	for _, wanted := range lifestyleAmenities(prefs.Lifestyle) {
		if _, ok := amenities[wanted]; ok {
			amenityScore += 10
		}
	}
	if amenityScore > 20 {
		amenityScore = 20
	}
	score += amenityScore

	if !listing.AvailableFrom.IsZero() && !listing.AvailableFrom.After(reference) {
		score += 5
	}

	return score
}

func lifestyleAmenities(lifestyle string) []string {
	switch normalize(lifestyle) {
	case "professional":
		return []string{"wifi", "furnished", "private_bath"}
	case "student":
		return []string{"wifi", "kitchen_access", "laundry"}
	case "social", "social_outgoing":
		return []string{"rooftop_access", "backyard", "kitchen_access"}
	case "quiet", "quiet_private":
		return []string{"private_bath", "close_to_park"}
	case "family", "family_oriented":
		return []string{"parking", "backyard", "laundry"}
	default:
		return nil
	}
}

func normalizeValues(values []string) map[string]struct{} {
	normalized := make(map[string]struct{}, len(values))
	for _, value := range values {
		if key := normalize(value); key != "" {
			normalized[key] = struct{}{}
		}
	}
	return normalized
}

func normalize(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	value = strings.ReplaceAll(value, " ", "_")
	value = strings.ReplaceAll(value, "-", "_")
	return value
}
