package middleware

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"PreStart/Models"
)

// LogConfig holds configuration for the request logging middleware
type LogConfig struct {
	// Enable console logging
	Console bool
	// Persist request logs to the database
	Database bool
	// Include request body in the persisted details
	IncludeBody bool
	// Skip logging for specific paths
	SkipPaths []string
}

// DefaultLogConfig returns a default configuration for the logging middleware
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Console:     true,
		Database:    true,
		IncludeBody: false,
		SkipPaths:   []string{"/health"},
	}
}

// RequestLogger logs every handled request to the console and, when enabled,
// persists a Models.RequestLog row with a JSON details column.
func RequestLogger(config ...LogConfig) fiber.Handler {
	cfg := DefaultLogConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(c *fiber.Ctx) error {
		for _, skipPath := range cfg.SkipPaths {
			if c.Path() == skipPath {
				return c.Next()
			}
		}

		start := time.Now()

		details := map[string]interface{}{
			"url":        c.OriginalURL(),
			"user_agent": string(c.Request().Header.UserAgent()),
		}
		if cfg.IncludeBody && c.Method() != "GET" {
			body := c.Body()
			if len(body) > 0 {
				var jsonData interface{}
				if err := json.Unmarshal(body, &jsonData); err == nil {
					details["request_body"] = jsonData
				} else {
					details["request_body"] = string(body)
				}
			}
		}

		err := c.Next()
		latency := time.Since(start)
		status := c.Response().StatusCode()

		var userID uint
		if user, ok := c.Locals("user").(Models.User); ok {
			userID = user.ID
		}

		if cfg.Console {
			log.Printf("%s %s -> %d (%s)", c.Method(), c.Path(), status, latency)
		}

		if cfg.Database && Models.DB != nil {
			detailsJSON, jsonErr := json.Marshal(details)
			if jsonErr != nil {
				detailsJSON = []byte("{}")
			}
			entry := Models.RequestLog{
				Timestamp: start,
				Method:    c.Method(),
				Path:      c.Path(),
				Status:    status,
				LatencyMS: latency.Milliseconds(),
				IP:        c.IP(),
				UserID:    userID,
				Details:   datatypes.JSON(detailsJSON),
			}
			if dbErr := Models.DB.Create(&entry).Error; dbErr != nil {
				log.Printf("Failed to persist request log: %v", dbErr)
			}
		}

		return err
	}
}
