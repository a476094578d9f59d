package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"roadwatch/internal/models"
)

// PotholeFilter narrows List results; zero values mean "no constraint".
type PotholeFilter struct {
	Status    models.PotholeStatus
	Severity  models.PotholeSeverity
	StartDate *time.Time
	EndDate   *time.Time
}

type PotholeRepository interface {
	Create(ctx context.Context, pothole *models.Pothole) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Pothole, error)
	List(ctx context.Context, filter *PotholeFilter) ([]*models.Pothole, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PotholeStatus) (*models.Pothole, error)
	// Delete removes the document and returns it, so callers can clean up
	// the stored image.
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Pothole, error)
	Stats(ctx context.Context) (*models.PotholeStats, error)
}
