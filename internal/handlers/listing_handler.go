package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ankit-bind/shared-space-seekers/internal/models"
	"github.com/ankit-bind/shared-space-seekers/internal/services"
)

const (
	defaultFeaturedLimit = 3
	maxFeaturedLimit     = 20
)

type listingApplicationService interface {
	Browse(ctx context.Context, criteria services.FilterCriteria) ([]models.Listing, error)
	ApplyFilters(ctx context.Context, viewerID string, criteria services.FilterCriteria) ([]models.Listing, error)
	Applied() services.AppliedFilters
	GetListing(ctx context.Context, id string) (*models.Listing, error)
	ContactOwner(ctx context.Context, viewerID string, id string) error
	Featured(ctx context.Context, profile *models.Profile, limit int) ([]models.ListingWithScore, error)
	SubmitDraft(ctx context.Context, viewerID string, draft models.ListingDraft) (*models.ListingSubmission, error)
}

type profileReader interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
}

type ListingHandler struct {
	service  listingApplicationService
	profiles profileReader
}

func NewListingHandler(service listingApplicationService, profiles profileReader) *ListingHandler {
	return &ListingHandler{
		service:  service,
		profiles: profiles,
	}
}

func (h *ListingHandler) ListListings(c *fiber.Ctx) error {
	input := services.FilterInput{
		Location:         c.Query("location"),
		GenderPreference: strings.TrimSpace(c.Query("gender_preference")),
		PetFriendly:      strings.TrimSpace(c.Query("pet_friendly")),
		AvailableFrom:    c.Query("available_from"),
	}

	var err error
	if input.MinRent, err = parseOptionalFloat(c.Query("min_rent")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "min_rent must be a valid number"})
	}
	if input.MaxRent, err = parseOptionalFloat(c.Query("max_rent")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "max_rent must be a valid number"})
	}

	criteria, err := services.NewFilterCriteria(input)
	if err != nil {
		return mapServiceError(c, err, "Listing")
	}

	listings, err := h.service.Browse(c.Context(), criteria)
	if err != nil {
		return mapServiceError(c, err, "Listing")
	}

	return c.JSON(fiber.Map{
		"criteria": criteria,
		"listings": listings,
		"count":    len(listings),
	})
}

func (h *ListingHandler) SearchListings(c *fiber.Ctx) error {
	viewer, err := viewerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing viewer"})
	}

	var input services.FilterInput
	if err := decodeStrict(c, &input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	criteria, err := services.NewFilterCriteria(input)
	if err != nil {
		return mapServiceError(c, err, "Listing")
	}

	listings, err := h.service.ApplyFilters(c.Context(), viewer, criteria)
	if err != nil {
		return mapServiceError(c, err, "Listing")
	}

	return c.JSON(fiber.Map{
		"criteria": criteria,
		"listings": listings,
		"count":    len(listings),
	})
}

func (h *ListingHandler) GetAppliedFilters(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"applied": h.service.Applied()})
}

func (h *ListingHandler) GetFeaturedListings(c *fiber.Ctx) error {
	limit := parsePositiveInt(c.Query("limit"), defaultFeaturedLimit)
	if limit > maxFeaturedLimit {
		limit = maxFeaturedLimit
	}

	profile, err := h.profiles.GetProfile(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	listings, err := h.service.Featured(c.Context(), profile, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch featured listings"})
	}

	return c.JSON(fiber.Map{"listings": listings})
}

func (h *ListingHandler) GetListing(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing id"})
	}

	listing, err := h.service.GetListing(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err, "Listing")
	}

	return c.JSON(fiber.Map{"listing": listing})
}

func (h *ListingHandler) ContactOwner(c *fiber.Ctx) error {
	viewer, err := viewerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing viewer"})
	}

	if err := h.service.ContactOwner(c.Context(), viewer, c.Params("id")); err != nil {
		return mapServiceError(c, err, "Listing")
	}

	return c.JSON(fiber.Map{"status": "sent"})
}

func (h *ListingHandler) CreateListing(c *fiber.Ctx) error {
	viewer, err := viewerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing viewer"})
	}

	var draft models.ListingDraft
	if err := decodeStrict(c, &draft); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	submission, err := h.service.SubmitDraft(c.Context(), viewer, draft)
	if err != nil {
		return mapServiceError(c, err, "Listing")
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"submission": submission})
}

func parseOptionalFloat(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
