package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"roadwatch/internal/models"
	"roadwatch/internal/repositories/interfaces"
	"roadwatch/internal/utils"
	"roadwatch/pkg/logger"
)

// ErrInvalidPermission is returned when a payload carries a capability string
// outside the enumerated set.
var ErrInvalidPermission = errors.New("invalid permission")

type SubAdminService interface {
	List(ctx context.Context) ([]*models.Admin, error)
	// Create generates a random password and returns it in plaintext exactly
	// once; only the hash is stored.
	Create(ctx context.Context, createdBy primitive.ObjectID, email string, permissions []string) (*models.Admin, string, error)
	Update(ctx context.Context, id primitive.ObjectID, permissions []string, isActive *bool) (*models.Admin, error)
	ResetPassword(ctx context.Context, id primitive.ObjectID) (*models.Admin, string, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type subAdminService struct {
	adminRepo interfaces.AdminRepository
	logger    *logger.Logger
}

func NewSubAdminService(adminRepo interfaces.AdminRepository, log *logger.Logger) SubAdminService {
	return &subAdminService{
		adminRepo: adminRepo,
		logger:    log,
	}
}

func (s *subAdminService) List(ctx context.Context) ([]*models.Admin, error) {
	return s.adminRepo.ListSubAdmins(ctx)
}

func (s *subAdminService) Create(ctx context.Context, createdBy primitive.ObjectID, email string, permissions []string) (*models.Admin, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !utils.IsValidEmail(email) {
		return nil, "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	perms := []models.AdminPermission{models.PermissionRead}
	if len(permissions) > 0 {
		parsed, err := models.ParsePermissions(permissions)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrInvalidPermission, err)
		}
		perms = parsed
	}

	password := utils.GeneratePassword()
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Email:       email,
		Password:    hash,
		Role:        models.AdminRoleSubAdmin,
		Permissions: perms,
		IsVerified:  true,
		IsActive:    true,
		CreatedBy:   &createdBy,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, "", ErrDuplicateEmail
		}
		return nil, "", err
	}

	s.logger.WithAdminID(createdBy).WithField("sub_admin_id", admin.ID.Hex()).Info("sub-admin created")

	return admin, password, nil
}

func (s *subAdminService) Update(ctx context.Context, id primitive.ObjectID, permissions []string, isActive *bool) (*models.Admin, error) {
	updates := make(map[string]interface{})

	if permissions != nil {
		parsed, err := models.ParsePermissions(permissions)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPermission, err)
		}
		updates["permissions"] = parsed
	}
	if isActive != nil {
		updates["is_active"] = *isActive
	}
	if len(updates) == 0 {
		return nil, errors.New("nothing to update")
	}

	// Role-scoped lookup so super-admin accounts cannot be modified here.
	if _, err := s.adminRepo.GetSubAdminByID(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.adminRepo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.adminRepo.GetSubAdminByID(ctx, id)
}

func (s *subAdminService) ResetPassword(ctx context.Context, id primitive.ObjectID) (*models.Admin, string, error) {
	admin, err := s.adminRepo.GetSubAdminByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	password := utils.GeneratePassword()
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.adminRepo.Update(ctx, id, map[string]interface{}{"password": hash}); err != nil {
		return nil, "", err
	}

	s.logger.WithField("sub_admin_id", admin.ID.Hex()).Info("sub-admin password reset")
	return admin, password, nil
}

func (s *subAdminService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.adminRepo.DeleteSubAdmin(ctx, id)
	if errors.Is(err, interfaces.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
