package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/models"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/token"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/utils"
)

const (
	LocalUserID   = "userID"
	LocalUserRole = "userRole"
)

// RequireAuth reads the access-token cookie and puts the caller's id and role
// into the request locals. An expired token asks the client to refresh, a
// malformed one is rejected outright.
func RequireAuth(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(token.AccessCookieName)
		if tokenStr == "" {
			return utils.JSONError(c, fiber.StatusUnauthorized, "No access token.")
		}

		claims, err := tokens.VerifyAccessToken(tokenStr)
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				return utils.JSONError(c, fiber.StatusUnauthorized, "Access token expired.")
			}
			return utils.JSONError(c, fiber.StatusForbidden, "Invalid access token.")
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			return utils.JSONError(c, fiber.StatusForbidden, "Invalid access token.")
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalUserRole, claims.Role)
		return c.Next()
	}
}

// UserID returns the authenticated caller id set by RequireAuth.
func UserID(c *fiber.Ctx) primitive.ObjectID {
	id, _ := c.Locals(LocalUserID).(primitive.ObjectID)
	return id
}

// UserRole returns the authenticated caller role set by RequireAuth.
func UserRole(c *fiber.Ctx) models.Role {
	role, _ := c.Locals(LocalUserRole).(models.Role)
	return role
}
