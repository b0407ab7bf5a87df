package otp

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vageesh-kudutini-ramesh/finance-app-project/internal/auth"
)

type Handler struct {
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

type resetRequest struct {
	Email       string `json:"email"`
	Action      string `json:"action"` // send_otp | verify_otp
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// PasswordReset drives the whole reset flow from one endpoint, mirroring the
// client's two-step dialog: request a code, then verify it (optionally with
// the new password in the same call).
func (h *Handler) PasswordReset(c *fiber.Ctx) error {
	var req resetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email required")
	}

	ctx := auth.UserContext(c)

	switch req.Action {
	case "send_otp":
		if err := h.Service.Issue(ctx, req.Email); err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to send otp email")
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Password reset OTP sent successfully to your email.",
		})

	case "verify_otp":
		if req.OTP == "" {
			return fiber.NewError(fiber.StatusBadRequest, "otp required")
		}

		if req.NewPassword == "" {
			if err := h.Service.Verify(ctx, req.Email, req.OTP); err != nil {
				return resetError(err)
			}
			return c.JSON(fiber.Map{
				"success": true,
				"message": "OTP verified successfully. You can now set your new password.",
			})
		}

		if err := h.Service.CompleteReset(ctx, req.Email, req.OTP, req.NewPassword); err != nil {
			return resetError(err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Password updated successfully. You can now login with your new password.",
		})

	default:
		return fiber.NewError(fiber.StatusBadRequest, "action must be send_otp or verify_otp")
	}
}

func resetError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrExpired),
		errors.Is(err, ErrAlreadyUsed),
		errors.Is(err, ErrMismatch):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reset password")
	}
}
