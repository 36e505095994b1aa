package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ViewerHeader lets a client act as a different viewer, e.g. in tests.
const ViewerHeader = "X-Viewer-ID"

// ViewerSession binds every request to a viewer. There is no
// authentication: the configured viewer is used unless the request names one.
func ViewerSession(defaultViewerID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewerID := strings.TrimSpace(c.Get(ViewerHeader))
		if viewerID == "" {
			viewerID = defaultViewerID
		}
		if viewerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing viewer",
			})
		}

		c.Locals("user_id", viewerID)

		return c.Next()
	}
}
