package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"roadwatch/internal/middleware"
	"roadwatch/internal/services"
	"roadwatch/internal/utils"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

type adminAuthRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

type createSuperAdminRequest struct {
	Secret   string `json:"secret" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// adminView is the wire shape for an admin in auth responses.
type adminView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Authenticate handles login-or-register on a single endpoint.
func (h *AdminHandler) Authenticate(c *gin.Context) {
	var request adminAuthRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Email and password are required.")
		return
	}
	if !utils.IsValidEmail(request.Email) {
		utils.BadRequestResponse(c, "Please provide a valid email address.")
		return
	}

	result, err := h.adminService.Authenticate(c.Request.Context(), request.Email, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			utils.BadRequestResponse(c, utils.ErrWrongPassword)
		case errors.Is(err, services.ErrAccountDeactivated):
			utils.ForbiddenResponse(c, utils.ErrAccountDeactivated)
		case errors.Is(err, services.ErrEmailNotVerified):
			utils.UnauthorizedResponse(c, utils.ErrEmailNotVerified)
		case errors.Is(err, services.ErrNotAllowed):
			utils.ForbiddenResponse(c, utils.ErrAccessDenied)
		case errors.Is(err, services.ErrPasswordTooShort):
			utils.BadRequestResponse(c, "Password must be at least 6 characters.")
		case errors.Is(err, services.ErrDuplicateEmail):
			utils.BadRequestResponse(c, "Admin with this email already exists.")
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	if result.Registered {
		utils.CreatedResponse(c, "Registration successful. Please verify your email.", nil)
		return
	}

	utils.SuccessResponse(c, "Login successful.", gin.H{
		"token": result.Token,
		"admin": adminView{
			ID:    result.Admin.ID.Hex(),
			Email: result.Admin.Email,
			Role:  string(result.Admin.Role),
		},
	})
}

func (h *AdminHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")

	if err := h.adminService.VerifyEmail(c.Request.Context(), token); err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			utils.BadRequestResponse(c, "Invalid or expired verification token.")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Email verified successfully. You can now log in.", nil)
}

func (h *AdminHandler) ForgotPassword(c *gin.Context) {
	var request forgotPasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Email is required.")
		return
	}

	if err := h.adminService.ForgotPassword(c.Request.Context(), request.Email); err != nil {
		if errors.Is(err, services.ErrEmailNotVerified) {
			utils.ForbiddenResponse(c, "Please verify your email first.")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "If that email exists, a password reset link has been sent.", nil)
}

func (h *AdminHandler) ResetPassword(c *gin.Context) {
	token := c.Param("token")

	var request resetPasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Password is required.")
		return
	}

	if err := h.adminService.ResetPassword(c.Request.Context(), token, request.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordTooShort):
			utils.BadRequestResponse(c, "Password must be at least 6 characters.")
		case errors.Is(err, services.ErrInvalidToken):
			utils.BadRequestResponse(c, "Invalid or expired reset token.")
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Password reset successful. You can now log in.", nil)
}

func (h *AdminHandler) ChangePassword(c *gin.Context) {
	adminID, exists := c.Get(middleware.ContextAdminID)
	if !exists {
		utils.UnauthorizedResponse(c, utils.ErrNoToken)
		return
	}

	var request changePasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Current and new passwords are required.")
		return
	}

	err := h.adminService.ChangePassword(c.Request.Context(), adminID.(primitive.ObjectID), request.CurrentPassword, request.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			utils.BadRequestResponse(c, utils.ErrWrongPassword)
		case errors.Is(err, services.ErrPasswordTooShort):
			utils.BadRequestResponse(c, "Password must be at least 6 characters.")
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, "Admin not found.")
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Password changed successfully.", nil)
}

func (h *AdminHandler) CreateSuperAdmin(c *gin.Context) {
	var request createSuperAdminRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Secret, email and password are required.")
		return
	}
	if !utils.IsValidEmail(request.Email) {
		utils.BadRequestResponse(c, "Please provide a valid email address.")
		return
	}

	admin, err := h.adminService.CreateSuperAdmin(c.Request.Context(), request.Secret, request.Email, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidSecret):
			utils.ForbiddenResponse(c, utils.ErrAccessDenied)
		case errors.Is(err, services.ErrDuplicateEmail):
			utils.BadRequestResponse(c, "Admin with this email already exists.")
		case errors.Is(err, services.ErrPasswordTooShort):
			utils.BadRequestResponse(c, "Password must be at least 6 characters.")
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.CreatedResponse(c, "Super admin created successfully.", adminView{
		ID:    admin.ID.Hex(),
		Email: admin.Email,
		Role:  string(admin.Role),
	})
}
