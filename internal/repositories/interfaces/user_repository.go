package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"roadwatch/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	SetOTP(ctx context.Context, id primitive.ObjectID, otp *models.OTP) error
	// ClearOTP removes the transient OTP document; markLogin also stamps
	// last_login in the same update.
	ClearOTP(ctx context.Context, id primitive.ObjectID, markLogin bool) error
	// UnsetEmail removes the optional email field entirely, keeping the
	// sparse unique index happy.
	UnsetEmail(ctx context.Context, id primitive.ObjectID) error
}
