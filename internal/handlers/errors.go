package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/ankit-bind/shared-space-seekers/internal/services"
)

var errMissingViewer = errors.New("missing viewer")

func mapServiceError(c *fiber.Ctx, err error, subject string) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Error()})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": subject + " not found"})
	case errors.Is(err, services.ErrSuperseded):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Superseded by a newer request"})
	case errors.Is(err, services.ErrBusy):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Another request is still pending"})
	case errors.Is(err, services.ErrSimulatedFailure):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Something went wrong, please try again"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process request"})
	}
}

// decodeStrict parses a JSON body and rejects unknown fields and trailing data.
func decodeStrict(c *fiber.Ctx, dst any) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func viewerID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals("user_id").(string)
	if !ok || id == "" {
		return "", errMissingViewer
	}
	return id, nil
}
