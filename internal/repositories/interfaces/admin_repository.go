package interfaces

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"roadwatch/internal/models"
)

// ErrNotFound is returned by every repository when no document matches.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique index rejects a write.
var ErrDuplicate = errors.New("duplicate key")

type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// ConsumeVerifyToken atomically flips an admin to verified and clears the
	// token fields, so a second presentation of the same token fails.
	ConsumeVerifyToken(ctx context.Context, token string, now time.Time) (*models.Admin, error)

	// ConsumeResetToken atomically installs the new password hash and clears
	// the reset token fields.
	ConsumeResetToken(ctx context.Context, token string, now time.Time, passwordHash string) (*models.Admin, error)

	// Sub-admin management; all of these are scoped to role=sub-admin.
	ListSubAdmins(ctx context.Context) ([]*models.Admin, error)
	GetSubAdminByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
	DeleteSubAdmin(ctx context.Context, id primitive.ObjectID) error
}
