package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/ankit-bind/shared-space-seekers/internal/models"
)

// ListingRepository is the read-only listing catalog for the session.
type ListingRepository struct {
	listings []models.Listing
	byID     map[string]int
}

func NewListingRepository(listings []models.Listing) (*ListingRepository, error) {
	repo := &ListingRepository{
		listings: make([]models.Listing, 0, len(listings)),
		byID:     make(map[string]int, len(listings)),
	}
	for _, listing := range listings {
		if strings.TrimSpace(listing.ID) == "" {
			return nil, fmt.Errorf("listing %q: empty id", listing.Title)
		}
		if _, exists := repo.byID[listing.ID]; exists {
			return nil, fmt.Errorf("listing %q: duplicate id", listing.ID)
		}
		if listing.RentAmount < 0 {
			return nil, fmt.Errorf("listing %q: rent amount must not be negative", listing.ID)
		}
		repo.byID[listing.ID] = len(repo.listings)
		repo.listings = append(repo.listings, listing.Clone())
	}
	return repo, nil
}

func (r *ListingRepository) ListAll(_ context.Context) ([]models.Listing, error) {
	out := make([]models.Listing, 0, len(r.listings))
	for _, listing := range r.listings {
		out = append(out, listing.Clone())
	}
	return out, nil
}

func (r *ListingRepository) GetByID(_ context.Context, id string) (*models.Listing, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	listing := r.listings[idx].Clone()
	return &listing, nil
}
