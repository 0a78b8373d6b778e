package utils

import "github.com/gofiber/fiber/v2"

// JSONSuccess writes the standard {success, message, ...} envelope. Extra
// top-level fields are merged in from extra.
func JSONSuccess(c *fiber.Ctx, status int, message string, extra fiber.Map) error {
	body := fiber.Map{"success": true, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}
