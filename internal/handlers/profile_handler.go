package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/ankit-bind/shared-space-seekers/internal/models"
	"github.com/ankit-bind/shared-space-seekers/internal/repository"
)

type profileApplicationService interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, viewerID string, input repository.UpdateProfileInput) (*models.Profile, error)
}

type ProfileHandler struct {
	service profileApplicationService
}

func NewProfileHandler(service profileApplicationService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type updateProfileRequest struct {
	FirstName       *string                   `json:"first_name"`
	LastName        *string                   `json:"last_name"`
	Email           *string                   `json:"email"`
	Phone           *string                   `json:"phone"`
	Occupation      *string                   `json:"occupation"`
	Bio             *string                   `json:"bio"`
	ProfilePhotoURL *string                   `json:"profile_photo_url"`
	Preferences     *updatePreferencesRequest `json:"preferences"`
}

type updatePreferencesRequest struct {
	BudgetMin         *float64 `json:"budget_min"`
	BudgetMax         *float64 `json:"budget_max"`
	PreferredLocation *string  `json:"preferred_location"`
	GenderPreference  *string  `json:"gender_preference"`
	Lifestyle         *string  `json:"lifestyle"`
	PetFriendly       *bool    `json:"pet_friendly"`
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.service.GetProfile(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	return c.JSON(fiber.Map{"profile": profile})
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	viewer, err := viewerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing viewer"})
	}

	var req updateProfileRequest
	if err := decodeStrict(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateProfileUpdateRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	input := repository.UpdateProfileInput{
		FirstName:       trimmed(req.FirstName),
		LastName:        trimmed(req.LastName),
		Email:           trimmed(req.Email),
		Phone:           trimmed(req.Phone),
		Occupation:      trimmed(req.Occupation),
		Bio:             req.Bio,
		ProfilePhotoURL: trimmed(req.ProfilePhotoURL),
	}
	if prefs := req.Preferences; prefs != nil {
		input.BudgetMin = prefs.BudgetMin
		input.BudgetMax = prefs.BudgetMax
		input.PreferredLocation = trimmed(prefs.PreferredLocation)
		input.GenderPreference = trimmed(prefs.GenderPreference)
		input.Lifestyle = trimmed(prefs.Lifestyle)
		input.PetFriendly = prefs.PetFriendly
	}

	profile, err := h.service.UpdateProfile(c.Context(), viewer, input)
	if err != nil {
		return mapServiceError(c, err, "Profile")
	}

	return c.JSON(fiber.Map{"profile": profile})
}
