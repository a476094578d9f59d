package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"roadwatch/internal/models"
	"roadwatch/internal/repositories/interfaces"
	"roadwatch/internal/utils"
	"roadwatch/pkg/logger"
	"roadwatch/pkg/storage"
)

var (
	ErrImageRequired = errors.New("image required")
	ErrNotAnImage    = errors.New("file is not an image")
	ErrImageTooLarge = errors.New("image too large")
	ErrInvalidField  = errors.New("invalid field value")
)

// PotholeInput is a validated report submission; the image has already been
// pulled out of the multipart form by the handler.
type PotholeInput struct {
	ImageReader io.Reader
	ImageSize   int64
	ContentType string
	Filename    string

	Location    models.Location
	Severity    models.PotholeSeverity
	Position    models.PotholePosition
	Description string
	ReportedBy  string
}

type PotholeService interface {
	Create(ctx context.Context, input *PotholeInput) (*models.Pothole, error)
	List(ctx context.Context, filter *interfaces.PotholeFilter) ([]*models.Pothole, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Pothole, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PotholeStatus) (*models.Pothole, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Pothole, error)
	Stats(ctx context.Context) (*models.PotholeStats, error)
}

type potholeService struct {
	potholeRepo interfaces.PotholeRepository
	storage     storage.Provider
	logger      *logger.Logger
}

func NewPotholeService(potholeRepo interfaces.PotholeRepository, storageProvider storage.Provider, log *logger.Logger) PotholeService {
	return &potholeService{
		potholeRepo: potholeRepo,
		storage:     storageProvider,
		logger:      log,
	}
}

func (s *potholeService) Create(ctx context.Context, input *PotholeInput) (*models.Pothole, error) {
	if input.ImageReader == nil {
		return nil, ErrImageRequired
	}
	if !strings.HasPrefix(input.ContentType, "image/") {
		return nil, ErrNotAnImage
	}
	if input.ImageSize > utils.MaxImageSize {
		return nil, ErrImageTooLarge
	}
	if !models.IsValidSeverity(input.Severity) || !models.IsValidPosition(input.Position) {
		return nil, ErrInvalidField
	}

	upload, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         utils.PotholeImageKey(input.Filename),
		Reader:      input.ImageReader,
		ContentType: input.ContentType,
		Size:        input.ImageSize,
		ACL:         "public-read",
	})
	if err != nil {
		return nil, err
	}

	reportedBy := input.ReportedBy
	if reportedBy == "" {
		reportedBy = "Anonymous"
	}
	location := input.Location
	if location.Address == "" {
		location.Address = "Unknown location"
	}

	pothole := &models.Pothole{
		Image:       upload.URL,
		Location:    location,
		Severity:    input.Severity,
		Position:    input.Position,
		Description: input.Description,
		Status:      models.StatusReported,
		ReportedBy:  reportedBy,
		Timestamp:   time.Now(),
	}

	if err := s.potholeRepo.Create(ctx, pothole); err != nil {
		return nil, err
	}

	s.logger.WithField("pothole_id", pothole.ID.Hex()).WithField("severity", pothole.Severity).Info("pothole reported")
	return pothole, nil
}

func (s *potholeService) List(ctx context.Context, filter *interfaces.PotholeFilter) ([]*models.Pothole, error) {
	return s.potholeRepo.List(ctx, filter)
}

func (s *potholeService) Get(ctx context.Context, id primitive.ObjectID) (*models.Pothole, error) {
	pothole, err := s.potholeRepo.GetByID(ctx, id)
	if errors.Is(err, interfaces.ErrNotFound) {
		return nil, ErrNotFound
	}
	return pothole, err
}

func (s *potholeService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PotholeStatus) (*models.Pothole, error) {
	if !models.IsValidStatus(status) {
		return nil, ErrInvalidField
	}

	pothole, err := s.potholeRepo.UpdateStatus(ctx, id, status)
	if errors.Is(err, interfaces.ErrNotFound) {
		return nil, ErrNotFound
	}
	return pothole, err
}

func (s *potholeService) Delete(ctx context.Context, id primitive.ObjectID) (*models.Pothole, error) {
	pothole, err := s.potholeRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// The document is already gone; a failed image delete only leaks an
	// object, so it is logged and not surfaced.
	if key := s.storage.KeyFromURL(pothole.Image); key != "" {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("failed to delete pothole image")
		}
	}

	return pothole, nil
}

func (s *potholeService) Stats(ctx context.Context) (*models.PotholeStats, error) {
	return s.potholeRepo.Stats(ctx)
}
