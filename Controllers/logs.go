package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"PreStart/Models"
)

// GetRequestLogs returns the most recent persisted request logs, newest first.
// ?limit= caps the page size (default 100, max 500).
func GetRequestLogs(c *fiber.Ctx) error {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid limit"})
		}
		if parsed > 500 {
			parsed = 500
		}
		limit = parsed
	}

	var logs []Models.RequestLog
	if err := Models.DB.Order("timestamp desc").Limit(limit).Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load request logs"})
	}
	return c.JSON(logs)
}
