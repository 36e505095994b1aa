package handlers

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ankit-bind/shared-space-seekers/internal/services"
)

var fieldValidator = validator.New()

var allowedGenderPreferences = map[string]struct{}{
	"any":        {},
	"male":       {},
	"female":     {},
	"non-binary": {},
}

var allowedLifestyles = map[string]struct{}{
	"professional": {},
	"student":      {},
	"social":       {},
	"quiet":        {},
	"family":       {},
}

func validateProfileUpdateRequest(req updateProfileRequest) string {
	if req.FirstName != nil && strings.TrimSpace(*req.FirstName) == "" {
		return "first_name must not be empty"
	}
	if req.LastName != nil && strings.TrimSpace(*req.LastName) == "" {
		return "last_name must not be empty"
	}
	if req.Email != nil {
		if err := fieldValidator.Var(strings.TrimSpace(*req.Email), "required,email"); err != nil {
			return "email must be a valid email address"
		}
	}
	if req.Phone != nil && len(strings.TrimSpace(*req.Phone)) > 32 {
		return "phone must not exceed 32 characters"
	}
	if req.Bio != nil && len(*req.Bio) > 2000 {
		return "bio must not exceed 2000 characters"
	}
	if req.ProfilePhotoURL != nil && strings.TrimSpace(*req.ProfilePhotoURL) != "" {
		if err := services.ValidateImageReference("profile_photo_url", *req.ProfilePhotoURL); err != nil {
			return err.Error()
		}
	}
	if req.Preferences != nil {
		return validatePreferencesRequest(*req.Preferences)
	}
	return ""
}

func validatePreferencesRequest(req updatePreferencesRequest) string {
	if req.BudgetMin != nil && *req.BudgetMin < 0 {
		return "budget_min must be 0 or greater"
	}
	if req.BudgetMax != nil && *req.BudgetMax < 0 {
		return "budget_max must be 0 or greater"
	}
	if req.BudgetMin != nil && req.BudgetMax != nil && *req.BudgetMin > *req.BudgetMax {
		return "budget_min must not exceed budget_max"
	}
	if req.GenderPreference != nil {
		if err := validateGenderPreference(*req.GenderPreference); err != "" {
			return err
		}
	}
	if req.Lifestyle != nil {
		if err := validateLifestyle(*req.Lifestyle); err != "" {
			return err
		}
	}
	return ""
}

func validateGenderPreference(gender string) string {
	if _, ok := allowedGenderPreferences[strings.TrimSpace(gender)]; !ok {
		return "gender_preference must be one of: any, male, female, non-binary"
	}
	return ""
}

func validateLifestyle(lifestyle string) string {
	if _, ok := allowedLifestyles[strings.TrimSpace(lifestyle)]; !ok {
		return "lifestyle must be one of: professional, student, social, quiet, family"
	}
	return ""
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	out := strings.TrimSpace(*value)
	return &out
}
