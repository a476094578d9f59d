package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"roadwatch/internal/models"
	"roadwatch/internal/repositories/interfaces"
	"roadwatch/internal/services"
	"roadwatch/internal/utils"
)

type PotholeHandler struct {
	potholeService services.PotholeService
}

func NewPotholeHandler(potholeService services.PotholeService) *PotholeHandler {
	return &PotholeHandler{
		potholeService: potholeService,
	}
}

type updatePotholeRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create handles a multipart report submission: an image plus form fields.
func (h *PotholeHandler) Create(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "Image is required.")
		return
	}
	defer file.Close()

	if !utils.IsImageUpload(header) {
		utils.BadRequestResponse(c, "Only image files are allowed.")
		return
	}
	if header.Size > utils.MaxImageSize {
		utils.BadRequestResponse(c, "Image must be 5MB or smaller.")
		return
	}

	latitude, err := strconv.ParseFloat(c.PostForm("latitude"), 64)
	if err != nil {
		utils.BadRequestResponse(c, "Valid latitude is required.")
		return
	}
	longitude, err := strconv.ParseFloat(c.PostForm("longitude"), 64)
	if err != nil {
		utils.BadRequestResponse(c, "Valid longitude is required.")
		return
	}

	severity := models.PotholeSeverity(c.PostForm("severity"))
	if !models.IsValidSeverity(severity) {
		utils.BadRequestResponse(c, "Severity must be one of: mild, severe, dangerous.")
		return
	}
	position := models.PotholePosition(c.PostForm("position"))
	if !models.IsValidPosition(position) {
		utils.BadRequestResponse(c, "Position must be one of: left, middle, right, full-width.")
		return
	}

	input := &services.PotholeInput{
		ImageReader: file,
		ImageSize:   header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
		Location: models.Location{
			Latitude:  latitude,
			Longitude: longitude,
			Address:   c.PostForm("address"),
		},
		Severity:    severity,
		Position:    position,
		Description: c.PostForm("description"),
		ReportedBy:  c.PostForm("reportedBy"),
	}

	pothole, err := h.potholeService.Create(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrImageRequired),
			errors.Is(err, services.ErrNotAnImage),
			errors.Is(err, services.ErrImageTooLarge),
			errors.Is(err, services.ErrInvalidField):
			utils.BadRequestResponse(c, "Invalid report submission.")
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.CreatedResponse(c, "Pothole reported successfully.", pothole)
}

func (h *PotholeHandler) List(c *gin.Context) {
	filter := &interfaces.PotholeFilter{}

	if status := c.Query("status"); status != "" {
		s := models.PotholeStatus(status)
		if !models.IsValidStatus(s) {
			utils.BadRequestResponse(c, "Invalid status filter.")
			return
		}
		filter.Status = s
	}
	if severity := c.Query("severity"); severity != "" {
		s := models.PotholeSeverity(severity)
		if !models.IsValidSeverity(s) {
			utils.BadRequestResponse(c, "Invalid severity filter.")
			return
		}
		filter.Severity = s
	}
	if startDate := c.Query("startDate"); startDate != "" {
		t, err := time.Parse(time.RFC3339, startDate)
		if err != nil {
			utils.BadRequestResponse(c, "startDate must be RFC3339.")
			return
		}
		filter.StartDate = &t
	}
	if endDate := c.Query("endDate"); endDate != "" {
		t, err := time.Parse(time.RFC3339, endDate)
		if err != nil {
			utils.BadRequestResponse(c, "endDate must be RFC3339.")
			return
		}
		filter.EndDate = &t
	}

	potholes, err := h.potholeService.List(c.Request.Context(), filter)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessListResponse(c, len(potholes), potholes)
}

func (h *PotholeHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid pothole ID.")
		return
	}

	pothole, err := h.potholeService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Pothole not found.")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "", pothole)
}

func (h *PotholeHandler) UpdateStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid pothole ID.")
		return
	}

	var request updatePotholeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Status is required.")
		return
	}

	pothole, err := h.potholeService.UpdateStatus(c.Request.Context(), id, models.PotholeStatus(request.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidField):
			utils.BadRequestResponse(c, "Status must be one of: reported, in-progress, resolved.")
		case errors.Is(err, services.ErrNotFound):
			utils.NotFoundResponse(c, "Pothole not found.")
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Pothole updated successfully.", pothole)
}

func (h *PotholeHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid pothole ID.")
		return
	}

	if _, err := h.potholeService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFoundResponse(c, "Pothole not found.")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Pothole deleted successfully.", nil)
}

func (h *PotholeHandler) Stats(c *gin.Context) {
	stats, err := h.potholeService.Stats(c.Request.Context())
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "", stats)
}
