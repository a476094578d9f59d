package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"roadwatch/internal/middleware"
	"roadwatch/internal/models"
	"roadwatch/internal/services"
	"roadwatch/internal/utils"
)

type SubAdminHandler struct {
	subAdminService services.SubAdminService
}

func NewSubAdminHandler(subAdminService services.SubAdminService) *SubAdminHandler {
	return &SubAdminHandler{
		subAdminService: subAdminService,
	}
}

type createSubAdminRequest struct {
	Email       string   `json:"email" binding:"required"`
	Permissions []string `json:"permissions"`
}

type updateSubAdminRequest struct {
	Permissions []string `json:"permissions"`
	IsActive    *bool    `json:"isActive"`
}

// subAdminView strips timestamps the dashboard does not need and keeps the
// sensitive fields out via the model's json tags.
type subAdminView struct {
	ID          string                   `json:"id"`
	Email       string                   `json:"email"`
	Permissions []models.AdminPermission `json:"permissions"`
	IsActive    bool                     `json:"isActive"`
	CreatedBy   string                   `json:"createdBy,omitempty"`
	CreatedAt   string                   `json:"createdAt"`
}

func toSubAdminView(admin *models.Admin) subAdminView {
	view := subAdminView{
		ID:          admin.ID.Hex(),
		Email:       admin.Email,
		Permissions: admin.Permissions,
		IsActive:    admin.IsActive,
		CreatedAt:   admin.CreatedAt.UTC().Format(time.RFC3339),
	}
	if admin.CreatedBy != nil {
		view.CreatedBy = admin.CreatedBy.Hex()
	}
	return view
}

func (h *SubAdminHandler) List(c *gin.Context) {
	admins, err := h.subAdminService.List(c.Request.Context())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	views := make([]subAdminView, 0, len(admins))
	for _, admin := range admins {
		views = append(views, toSubAdminView(admin))
	}

	utils.SuccessListResponse(c, len(views), views)
}

func (h *SubAdminHandler) Create(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextAdminID).(primitive.ObjectID)

	var request createSubAdminRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Email is required.")
		return
	}

	admin, password, err := h.subAdminService.Create(c.Request.Context(), callerID, request.Email, request.Permissions)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail):
			utils.BadRequestResponse(c, "Please provide a valid email address.")
		case errors.Is(err, services.ErrInvalidPermission):
			utils.BadRequestResponse(c, "Invalid permissions in request.")
		case errors.Is(err, services.ErrDuplicateEmail):
			utils.BadRequestResponse(c, "Admin with this email already exists.")
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	// The plaintext password appears here once and is never recoverable.
	utils.CreatedResponse(c, "Sub-admin created successfully.", gin.H{
		"subAdmin": toSubAdminView(admin),
		"password": password,
	})
}

func (h *SubAdminHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid sub-admin ID.")
		return
	}

	var request updateSubAdminRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request body.")
		return
	}

	admin, err := h.subAdminService.Update(c.Request.Context(), id, request.Permissions, request.IsActive)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPermission):
			utils.BadRequestResponse(c, "Invalid permissions in request.")
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, "Sub-admin not found.")
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Sub-admin updated successfully.", toSubAdminView(admin))
}

func (h *SubAdminHandler) ResetPassword(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid sub-admin ID.")
		return
	}

	admin, password, err := h.subAdminService.ResetPassword(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Sub-admin not found.")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Password reset successfully.", gin.H{
		"email":    admin.Email,
		"password": password,
	})
}

func (h *SubAdminHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid sub-admin ID.")
		return
	}

	if err := h.subAdminService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Sub-admin not found.")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Sub-admin deleted successfully.", nil)
}
