package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Phone     string             `json:"phone" bson:"phone"`
	Name      string             `json:"name,omitempty" bson:"name,omitempty"`
	Email     string             `json:"email,omitempty" bson:"email,omitempty"`
	OTP       *OTP               `json:"-" bson:"otp,omitempty"`
	IsActive  bool               `json:"is_active" bson:"is_active"`
	LastLogin *time.Time         `json:"last_login,omitempty" bson:"last_login,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// OTP is transient login state; it exists only between request-otp and
// verification or expiry.
type OTP struct {
	Code      string    `json:"-" bson:"code"`
	ExpiresAt time.Time `json:"-" bson:"expires_at"`
}

func (o *OTP) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// Profile is the wire shape for a user, with OTP state stripped.
type Profile struct {
	ID        primitive.ObjectID `json:"id"`
	Phone     string             `json:"phone"`
	Name      string             `json:"name,omitempty"`
	Email     string             `json:"email,omitempty"`
	LastLogin *time.Time         `json:"lastLogin,omitempty"`
}

func (u *User) ToProfile() *Profile {
	return &Profile{
		ID:        u.ID,
		Phone:     u.Phone,
		Name:      u.Name,
		Email:     u.Email,
		LastLogin: u.LastLogin,
	}
}
