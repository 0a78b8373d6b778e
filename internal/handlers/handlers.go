package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/otp"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/services"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/token"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/utils"
)

// Handler is the HTTP edge over the flow controllers.
type Handler struct {
	auth    *services.AuthService
	catalog *services.CatalogService
	cart    *services.CartService
	tokens  *token.Manager
	logger  *zap.Logger
}

func NewHandler(
	auth *services.AuthService,
	catalog *services.CatalogService,
	cart *services.CartService,
	tokens *token.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{auth: auth, catalog: catalog, cart: cart, tokens: tokens, logger: logger}
}

// fail converts a domain error into the HTTP response. Unclassified errors
// are logged and surfaced as a generic 500 with no internal detail.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if services.IsValidation(err) {
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
	}

	switch {
	case errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrMissingImages),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrPizzaUnavailable):
		return utils.JSONError(c, fiber.StatusBadRequest, err.Error())

	case errors.Is(err, services.ErrNoToken),
		errors.Is(err, token.ErrTokenExpired):
		return utils.JSONError(c, fiber.StatusUnauthorized, err.Error())

	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrAccountUnverified),
		errors.Is(err, services.ErrAlreadyVerified),
		errors.Is(err, services.ErrResetNotAuthorized),
		errors.Is(err, services.ErrUnrecognizedToken),
		errors.Is(err, token.ErrInvalidToken),
		errors.Is(err, otp.ErrNoOtpPending),
		errors.Is(err, otp.ErrOtpExpired),
		errors.Is(err, otp.ErrOtpMismatch):
		return utils.JSONError(c, fiber.StatusForbidden, err.Error())

	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPizzaNotFound),
		errors.Is(err, services.ErrItemNotFound):
		return utils.JSONError(c, fiber.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrOtpRateLimited):
		return utils.JSONError(c, fiber.StatusTooManyRequests, err.Error())
	}

	h.logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
	return utils.JSONError(c, fiber.StatusInternalServerError, "Internal server error.")
}

func (h *Handler) failValidation(c *fiber.Ctx, errs []utils.ValidationError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation failed.",
		"errors":  errs,
	})
}
