package utils

import "time"

// Application Constants
const (
	AppName = "RoadWatch"

	// Authentication
	SessionTokenTTL   = 30 * 24 * time.Hour
	EmailTokenTTL     = time.Hour
	PasswordMinLength = 6
	OTPLength         = 6
	OTPExpiry         = 5 * time.Minute

	// Generated sub-admin passwords: 8 random bytes, hex encoded.
	GeneratedPasswordBytes = 8

	// File upload
	MaxImageSize = 5 * 1024 * 1024 // 5MB
)

// Collection names
const (
	CollectionAdmins   = "admins"
	CollectionUsers    = "users"
	CollectionPotholes = "potholes"
)

// Error messages
const (
	ErrAccessDenied       = "Access denied."
	ErrSuperAdminOnly     = "Access denied. Super admin only."
	ErrNoToken            = "No token provided"
	ErrInvalidToken       = "Invalid token"
	ErrInactiveAdmin      = "Invalid or inactive admin"
	ErrWrongPassword      = "Wrong password."
	ErrEmailNotVerified   = "Email not verified."
	ErrAccountDeactivated = "Your account has been deactivated."
	ErrInternalServer     = "Server error. Please try again."
)
