package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	RequestIDHeader   = "X-Request-ID"
	RequestIDLocalKey = "request_id"

	maxRequestIDLen = 128
)

// RequestID keeps a caller-supplied X-Request-ID when it is short printable
// ASCII and otherwise issues a UUID. The id is echoed on the response and
// stored in locals for the logger and the error handler.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(RequestIDHeader)
		if !acceptableRequestID(rid) {
			rid = uuid.NewString()
		}
		c.Set(RequestIDHeader, rid)
		c.Locals(RequestIDLocalKey, rid)
		return c.Next()
	}
}

// acceptableRequestID rejects ids that would be unsafe to copy into logs.
func acceptableRequestID(rid string) bool {
	if rid == "" || len(rid) > maxRequestIDLen {
		return false
	}
	for _, b := range []byte(rid) {
		if b <= ' ' || b > '~' {
			return false
		}
	}
	return true
}
