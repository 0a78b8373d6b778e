package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/middleware"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/services"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/token"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/utils"
)

type registerReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return h.failValidation(c, errs)
	}

	if _, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password); err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, "User registration successful.", nil)
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return h.failValidation(c, errs)
	}

	user, access, refresh, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrAccountUnverified) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success":             false,
				"message":             "In order to continue please verify your account.",
				"verificationOtpLink": fmt.Sprintf("/users/send-verification-otp/%s", user.ID.Hex()),
			})
		}
		return h.fail(c, err)
	}

	h.tokens.SetSessionCookies(c, access, refresh)
	return utils.JSONSuccess(c, fiber.StatusOK, fmt.Sprintf("%s logged in successfully.", user.Role), nil)
}

func (h *Handler) Dashboard(c *fiber.Ctx) error {
	user, err := h.auth.Dashboard(c.Context(), middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "User data fetched.", fiber.Map{
		"user": fiber.Map{
			"name":            user.Name,
			"email":           user.Email,
			"role":            user.Role,
			"profile_picture": user.ProfilePicture,
		},
	})
}

func (h *Handler) Refresh(c *fiber.Ctx) error {
	access, err := h.auth.Refresh(c.Context(), c.Cookies(token.RefreshCookieName))
	if err != nil {
		return h.fail(c, err)
	}
	h.tokens.SetAccessCookie(c, access)
	return utils.JSONSuccess(c, fiber.StatusOK, "Access token refreshed.", nil)
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.Context(), c.Cookies(token.RefreshCookieName)); err != nil {
		return h.fail(c, err)
	}
	token.ClearSessionCookies(c)
	return utils.JSONSuccess(c, fiber.StatusOK, "Logged out successfully.", nil)
}

func (h *Handler) CreateAdmin(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return h.failValidation(c, errs)
	}

	if _, err := h.auth.CreateAdmin(c.Context(), middleware.UserID(c), req.Name, req.Email, req.Password); err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, "Admin registration successful.", nil)
}

func (h *Handler) HostDashboard(c *fiber.Ctx) error {
	admins, err := h.auth.ListAdmins(c.Context(), middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "Admins fetched.", fiber.Map{"admins": admins})
}

func (h *Handler) SendVerificationOtp(c *fiber.Ctx) error {
	userID, err := parseObjectID(c.Params("id"))
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid user id.")
	}
	if err := h.auth.SendVerificationOtp(c.Context(), userID); err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "Verification otp sent to your email.", fiber.Map{
		"verificationLink": fmt.Sprintf("/users/verify-account/%s", userID.Hex()),
	})
}

type otpReq struct {
	Otp string `json:"otp" validate:"required,len=6"`
}

func (h *Handler) VerifyAccount(c *fiber.Ctx) error {
	userID, err := parseObjectID(c.Params("id"))
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid user id.")
	}
	var req otpReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return h.failValidation(c, errs)
	}

	if err := h.auth.VerifyAccount(c.Context(), userID, req.Otp); err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "Account verified successfully! Navigate to login.", nil)
}

type sendResetOtpReq struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *Handler) SendResetOtp(c *fiber.Ctx) error {
	var req sendResetOtpReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return h.failValidation(c, errs)
	}

	user, err := h.auth.SendResetOtp(c.Context(), req.Email)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "Password reset otp sent to your email.", fiber.Map{
		"validationLink": fmt.Sprintf("/users/validate-reset-otp/%s", user.ID.Hex()),
	})
}

func (h *Handler) ValidateResetOtp(c *fiber.Ctx) error {
	userID, err := parseObjectID(c.Params("id"))
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid user id.")
	}
	var req otpReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return h.failValidation(c, errs)
	}

	if err := h.auth.ValidateResetOtp(c.Context(), userID, req.Otp); err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "Otp validated. You may now reset your password.", fiber.Map{
		"resetLink": fmt.Sprintf("/users/reset-password/%s", userID.Hex()),
	})
}

type resetPasswordReq struct {
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	userID, err := parseObjectID(c.Params("id"))
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid user id.")
	}
	var req resetPasswordReq
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body.")
	}
	if errs := utils.ValidateStruct(req); errs != nil {
		return h.failValidation(c, errs)
	}

	if err := h.auth.ResetPassword(c.Context(), userID, req.Password, req.ConfirmPassword); err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "Password reset successfully. Navigate to login.", nil)
}

func (h *Handler) UploadProfilePicture(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Image file missing.")
	}
	file, err := readImageFile(fileHeader)
	if err != nil {
		return h.fail(c, err)
	}

	user, err := h.auth.UploadProfilePicture(c.Context(), middleware.UserID(c), file.Filename, file.ContentType, file.Data)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, "Profile picture uploaded.", fiber.Map{
		"profile_picture": user.ProfilePicture,
	})
}

func parseObjectID(hex string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(hex)
}
