package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"roadwatch/internal/middleware"
	"roadwatch/internal/services"
	"roadwatch/internal/utils"
)

// User-facing auth endpoints answer with an {ok, ...} envelope, distinct from
// the dashboard's {success, ...} shape.
func userOK(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func userError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"ok": false, "message": message})
}

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

type requestOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (h *UserHandler) RequestOTP(c *gin.Context) {
	var request requestOTPRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		userError(c, http.StatusBadRequest, "Phone number is required.")
		return
	}

	isNewUser, err := h.userService.RequestOTP(c.Request.Context(), request.Phone, request.Name, request.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPhone):
			userError(c, http.StatusBadRequest, "Please provide a valid phone number.")
		case errors.Is(err, services.ErrInvalidEmail):
			userError(c, http.StatusBadRequest, "Please provide a valid email address.")
		case errors.Is(err, services.ErrSMSDelivery):
			userError(c, http.StatusInternalServerError, "Failed to send OTP. Please try again.")
		default:
			userError(c, http.StatusInternalServerError, utils.ErrInternalServer)
		}
		return
	}

	userOK(c, http.StatusOK, gin.H{
		"message":   "OTP sent successfully.",
		"isNewUser": isNewUser,
		"expiresIn": int(utils.OTPExpiry.Seconds()),
	})
}

func (h *UserHandler) VerifyOTP(c *gin.Context) {
	var request verifyOTPRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		userError(c, http.StatusBadRequest, "Phone number and code are required.")
		return
	}

	user, token, err := h.userService.VerifyOTP(c.Request.Context(), request.Phone, request.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			userError(c, http.StatusNotFound, "User not found. Please request an OTP first.")
		case errors.Is(err, services.ErrNoPendingOTP):
			userError(c, http.StatusBadRequest, "No OTP requested. Please request an OTP first.")
		case errors.Is(err, services.ErrOTPExpired):
			userError(c, http.StatusBadRequest, "OTP has expired. Please request a new one.")
		case errors.Is(err, services.ErrOTPMismatch):
			userError(c, http.StatusBadRequest, "Invalid OTP. Please try again.")
		default:
			userError(c, http.StatusInternalServerError, utils.ErrInternalServer)
		}
		return
	}

	userOK(c, http.StatusOK, gin.H{
		"message": "Login successful.",
		"token":   token,
		"user":    user.ToProfile(),
	})
}

func (h *UserHandler) Me(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(primitive.ObjectID)

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			userError(c, http.StatusNotFound, "User not found.")
			return
		}
		userError(c, http.StatusInternalServerError, utils.ErrInternalServer)
		return
	}

	userOK(c, http.StatusOK, gin.H{"user": user.ToProfile()})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(primitive.ObjectID)

	var request updateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		userError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, request.Name, request.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail):
			userError(c, http.StatusBadRequest, "Please provide a valid email address.")
		case errors.Is(err, services.ErrDuplicateEmail):
			userError(c, http.StatusBadRequest, "That email is already in use.")
		case errors.Is(err, services.ErrNotFound):
			userError(c, http.StatusNotFound, "User not found.")
		default:
			userError(c, http.StatusInternalServerError, utils.ErrInternalServer)
		}
		return
	}

	userOK(c, http.StatusOK, gin.H{
		"message": "Profile updated successfully.",
		"user":    user.ToProfile(),
	})
}

// Logout is a stateless acknowledgement; tokens expire on their own.
func (h *UserHandler) Logout(c *gin.Context) {
	userOK(c, http.StatusOK, gin.H{"message": "Logged out successfully."})
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(primitive.ObjectID)

	if err := h.userService.DeleteAccount(c.Request.Context(), userID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			userError(c, http.StatusNotFound, "User not found.")
			return
		}
		userError(c, http.StatusInternalServerError, utils.ErrInternalServer)
		return
	}

	userOK(c, http.StatusOK, gin.H{"message": "Account deleted successfully."})
}
