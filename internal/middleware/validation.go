package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// HeaderUserID carries the caller's opaque account ID. Session handling
// happens upstream; by the time a request reaches this service the identity
// is already a hex hash.
const HeaderUserID = "X-User-ID"

// Field length limits matching database schema constraints.
const (
	MaxUserIDLen      = 64  // channels.user_id VARCHAR(64)
	MaxChannelNameLen = 128 // channels.channel_name VARCHAR(128)
	MaxRangeExprLen   = 64  // "range:YYYY-MM-DD..YYYY-MM-DD" plus slack
)

var (
	// userIDRe matches hex SHA256 hashes (64 chars) or shorter hashed IDs.
	userIDRe = regexp.MustCompile(`^[0-9a-f]+$`)
	// rangeExprRe covers the filter grammar: 28d, all, year:2024,
	// month:2024-7, range:2024-01-01..2024-03-31. Anything else is still
	// accepted by the resolver (fail-open), but arbitrary bytes are not
	// worth letting through the HTTP surface.
	rangeExprRe = regexp.MustCompile(`^[0-9a-z:.\-]+$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateUserID checks that a user ID is a valid hex hash.
func ValidateUserID(id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", "userId is required"
	}
	if len(id) > MaxUserIDLen {
		return "", "userId must be at most 64 characters"
	}
	if !userIDRe.MatchString(id) {
		return "", "userId must be a hexadecimal hash"
	}
	return id, ""
}

// ValidateChannelName checks that a channel name is storable: non-empty,
// within DB limits, and free of control characters. Channel names come from
// folder names, so spaces and unicode are fine.
func ValidateChannelName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "channel name is required"
	}
	if len(name) > MaxChannelNameLen {
		return "", "channel name must be at most 128 characters"
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return "", "channel name contains control characters"
		}
	}
	return name, ""
}

// ValidateRangeExpr normalizes a date-filter expression. Empty input gets
// the default window; unknown expressions pass through for the resolver's
// fail-open handling.
func ValidateRangeExpr(expr string) (string, string) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "28d", ""
	}
	if len(expr) > MaxRangeExprLen {
		return "", "range expression too long"
	}
	if !rangeExprRe.MatchString(strings.ToLower(expr)) {
		return "", "range expression contains invalid characters"
	}
	return expr, ""
}

// RequireUserID returns a middleware that rejects requests without a valid
// X-User-ID header and stashes the normalized ID in the request locals.
func RequireUserID() fiber.Handler {
	return func(c fiber.Ctx) error {
		userID, errMsg := ValidateUserID(c.Get(HeaderUserID))
		if errMsg != "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "A valid X-User-ID header is required")
		}
		c.Locals("userID", userID)
		return c.Next()
	}
}

// UserID returns the validated account ID stashed by RequireUserID.
func UserID(c fiber.Ctx) string {
	if id, ok := c.Locals("userID").(string); ok {
		return id
	}
	return ""
}
