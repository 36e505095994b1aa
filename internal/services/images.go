package services

import (
	"net/url"
	"strings"
)

const MaxListingImages = 5

// ValidateImageReference accepts http(s) URLs and locally created blob
// references. Image bytes are never handled here.
func ValidateImageReference(field, ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return newValidationError(field, "must not be empty")
	}
	if strings.HasPrefix(ref, "blob:") {
		if len(ref) == len("blob:") {
			return newValidationError(field, "blob reference is empty")
		}
		return nil
	}

	parsed, err := url.Parse(ref)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return newValidationError(field, "must be an http(s) URL or a blob: reference")
	}
	return nil
}
