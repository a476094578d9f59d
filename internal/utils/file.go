package utils

import (
	"fmt"
	"mime/multipart"
	"strings"
	"time"
)

// IsImageUpload checks the declared content type of a multipart file header.
func IsImageUpload(header *multipart.FileHeader) bool {
	return strings.HasPrefix(header.Header.Get("Content-Type"), "image/")
}

// PotholeImageKey builds the object key for an uploaded report image.
func PotholeImageKey(filename string) string {
	return fmt.Sprintf("potholes/%d_%s", time.Now().UnixMilli(), filename)
}

// VerificationLink builds the email verification URL served by the frontend.
// The base URL is expected to carry a trailing slash.
func VerificationLink(frontendURL, token string) string {
	return fmt.Sprintf("%sapi/admin/verify-email/%s", frontendURL, token)
}

// PasswordResetLink builds the password reset URL served by the frontend.
func PasswordResetLink(frontendURL, token string) string {
	return fmt.Sprintf("%sreset-password/%s", frontendURL, token)
}
