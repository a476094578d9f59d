package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"roadwatch/internal/config"
	"roadwatch/internal/models"
	"roadwatch/internal/repositories/interfaces"
	"roadwatch/internal/utils"
	"roadwatch/pkg/logger"
	"roadwatch/pkg/mailer"
)

// Sentinel errors handlers map onto status codes.
var (
	ErrWrongPassword       = errors.New("wrong password")
	ErrAccountDeactivated  = errors.New("account deactivated")
	ErrEmailNotVerified    = errors.New("email not verified")
	ErrNotAllowed          = errors.New("access denied")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrPasswordTooShort    = errors.New("password too short")
	ErrInvalidSecret       = errors.New("invalid secret")
	ErrNotFound            = errors.New("not found")
	ErrEmailDeliveryFailed = errors.New("email delivery failed")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrInvalidPhone        = errors.New("invalid phone number")
)

type AdminService interface {
	// Authenticate logs an existing admin in, or registers a new super-admin
	// when the email is on the allow list.
	Authenticate(ctx context.Context, email, password string) (*AdminAuthResult, error)
	VerifyEmail(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, adminID primitive.ObjectID, currentPassword, newPassword string) error
	CreateSuperAdmin(ctx context.Context, secret, email, password string) (*models.Admin, error)
}

// AdminAuthResult carries either a session (login) or a freshly registered
// admin awaiting email verification.
type AdminAuthResult struct {
	Admin      *models.Admin
	Token      string
	Registered bool
}

type adminService struct {
	adminRepo interfaces.AdminRepository
	mail      mailer.Sender
	auth      *config.AuthConfig
	logger    *logger.Logger
}

func NewAdminService(adminRepo interfaces.AdminRepository, mail mailer.Sender, auth *config.AuthConfig, log *logger.Logger) AdminService {
	return &adminService{
		adminRepo: adminRepo,
		mail:      mail,
		auth:      auth,
		logger:    log,
	}
}

func (s *adminService) Authenticate(ctx context.Context, email, password string) (*AdminAuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err == nil {
		return s.login(ctx, admin, password)
	}
	if !errors.Is(err, interfaces.ErrNotFound) {
		return nil, err
	}

	if !s.isAllowListed(email) {
		return nil, ErrNotAllowed
	}
	return s.register(ctx, email, password)
}

func (s *adminService) login(ctx context.Context, admin *models.Admin, password string) (*AdminAuthResult, error) {
	if !utils.CheckPassword(password, admin.Password) {
		return nil, ErrWrongPassword
	}
	if admin.Role == models.AdminRoleSubAdmin && !admin.IsActive {
		return nil, ErrAccountDeactivated
	}
	if !admin.IsVerified {
		return nil, ErrEmailNotVerified
	}

	token, err := utils.GenerateAdminToken(admin.ID, admin.Email, admin.Role, s.auth.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.WithAdminID(admin.ID).WithField("role", admin.Role).Info("admin logged in")

	return &AdminAuthResult{Admin: admin, Token: token}, nil
}

func (s *adminService) register(ctx context.Context, email, password string) (*AdminAuthResult, error) {
	if len(password) < utils.PasswordMinLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	verifyToken := utils.GenerateEmailToken()
	expiry := time.Now().Add(utils.EmailTokenTTL)

	admin := &models.Admin{
		Email:       email,
		Password:    hash,
		Role:        models.AdminRoleSuperAdmin,
		Permissions: models.AllPermissions,
		IsVerified:  false,
		IsActive:    true,
		VerifyToken: verifyToken,
		TokenExpiry: &expiry,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	if err := s.sendVerificationEmail(ctx, email, verifyToken); err != nil {
		s.logger.WithError(err).WithField("email", email).Error("failed to send verification email")
		return nil, ErrEmailDeliveryFailed
	}

	s.logger.WithAdminID(admin.ID).Info("super-admin registered, verification pending")

	return &AdminAuthResult{Admin: admin, Registered: true}, nil
}

func (s *adminService) VerifyEmail(ctx context.Context, token string) error {
	admin, err := s.adminRepo.ConsumeVerifyToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	s.logger.WithAdminID(admin.ID).Info("admin email verified")
	return nil
}

func (s *adminService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			// Do not reveal whether the email exists.
			return nil
		}
		return err
	}

	if !admin.IsVerified {
		return ErrEmailNotVerified
	}

	resetToken := utils.GenerateEmailToken()
	expiry := time.Now().Add(utils.EmailTokenTTL)

	err = s.adminRepo.Update(ctx, admin.ID, map[string]interface{}{
		"reset_password_token":  resetToken,
		"reset_password_expiry": expiry,
	})
	if err != nil {
		return err
	}

	if err := s.sendResetEmail(ctx, email, resetToken); err != nil {
		s.logger.WithError(err).WithField("email", email).Error("failed to send reset email")
		return ErrEmailDeliveryFailed
	}
	return nil
}

func (s *adminService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < utils.PasswordMinLength {
		return ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin, err := s.adminRepo.ConsumeResetToken(ctx, token, time.Now(), hash)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	s.logger.WithAdminID(admin.ID).Info("admin password reset")
	return nil
}

func (s *adminService) ChangePassword(ctx context.Context, adminID primitive.ObjectID, currentPassword, newPassword string) error {
	if len(newPassword) < utils.PasswordMinLength {
		return ErrPasswordTooShort
	}

	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !utils.CheckPassword(currentPassword, admin.Password) {
		return ErrWrongPassword
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.adminRepo.Update(ctx, admin.ID, map[string]interface{}{
		"password": hash,
	})
}

func (s *adminService) CreateSuperAdmin(ctx context.Context, secret, email, password string) (*models.Admin, error) {
	if s.auth.SuperAdminSecret == "" || secret != s.auth.SuperAdminSecret {
		return nil, ErrInvalidSecret
	}
	if len(password) < utils.PasswordMinLength {
		return nil, ErrPasswordTooShort
	}

	email = strings.ToLower(strings.TrimSpace(email))

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Email:       email,
		Password:    hash,
		Role:        models.AdminRoleSuperAdmin,
		Permissions: models.AllPermissions,
		IsVerified:  true,
		IsActive:    true,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.logger.WithAdminID(admin.ID).Warn("super-admin created via shared secret")
	return admin, nil
}

func (s *adminService) isAllowListed(email string) bool {
	for _, allowed := range s.auth.AllowedAdminEmails {
		if strings.EqualFold(strings.TrimSpace(allowed), email) {
			return true
		}
	}
	return false
}

func (s *adminService) sendVerificationEmail(ctx context.Context, email, token string) error {
	link := utils.VerificationLink(s.auth.FrontendURL, token)
	body := fmt.Sprintf(`<h2>Verify your email</h2>
<p>Click the link below to verify your admin account. The link expires in 1 hour.</p>
<p><a href="%s">%s</a></p>`, link, link)
	return s.mail.Send(ctx, email, "Verify your admin account", body)
}

func (s *adminService) sendResetEmail(ctx context.Context, email, token string) error {
	link := utils.PasswordResetLink(s.auth.FrontendURL, token)
	body := fmt.Sprintf(`<h2>Reset your password</h2>
<p>Click the link below to choose a new password. The link expires in 1 hour.</p>
<p><a href="%s">%s</a></p>
<p>If you did not request this, you can ignore this email.</p>`, link, link)
	return s.mail.Send(ctx, email, "Password reset request", body)
}
