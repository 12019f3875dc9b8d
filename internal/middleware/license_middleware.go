package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Informaticspro/proyecto-factura/internal/service"
)

// RequireLicense gates the API routes behind a valid activation. The
// license routes themselves stay open so activation is reachable.
func RequireLicense(lic service.LicenseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !lic.IsLicensed() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "application is not licensed",
			})
		}
		return c.Next()
	}
}
