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
	"roadwatch/pkg/sms"
)

var (
	ErrNoPendingOTP = errors.New("no pending otp")
	ErrOTPExpired   = errors.New("otp expired")
	ErrOTPMismatch  = errors.New("otp mismatch")
	ErrSMSDelivery  = errors.New("sms delivery failed")
)

type UserService interface {
	// RequestOTP finds or creates the user by phone, stores a fresh code and
	// sends it. Reports whether the user was created by this call.
	RequestOTP(ctx context.Context, phone, name, email string) (bool, error)
	// VerifyOTP checks the pending code and, on success, opens a session.
	VerifyOTP(ctx context.Context, phone, code string) (*models.User, string, error)
	GetProfile(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email *string) (*models.User, error)
	DeleteAccount(ctx context.Context, id primitive.ObjectID) error
}

type userService struct {
	userRepo interfaces.UserRepository
	sms      sms.Provider
	auth     *config.AuthConfig
	logger   *logger.Logger
}

func NewUserService(userRepo interfaces.UserRepository, smsProvider sms.Provider, auth *config.AuthConfig, log *logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		sms:      smsProvider,
		auth:     auth,
		logger:   log,
	}
}

func (s *userService) RequestOTP(ctx context.Context, phone, name, email string) (bool, error) {
	if !utils.IsValidPhone(phone) {
		return false, ErrInvalidPhone
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && !utils.IsValidEmail(email) {
		return false, ErrInvalidEmail
	}

	isNewUser := false
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if errors.Is(err, interfaces.ErrNotFound) {
		user = &models.User{
			Phone:    phone,
			Name:     strings.TrimSpace(name),
			Email:    email,
			IsActive: true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return false, err
		}
		isNewUser = true
	} else if err != nil {
		return false, err
	} else {
		// Profile fields are only filled in, never overwritten here.
		updates := make(map[string]interface{})
		if user.Name == "" && name != "" {
			updates["name"] = strings.TrimSpace(name)
		}
		if user.Email == "" && email != "" {
			updates["email"] = email
		}
		if len(updates) > 0 {
			if err := s.userRepo.Update(ctx, user.ID, updates); err != nil {
				return false, err
			}
		}
	}

	otp := &models.OTP{
		Code:      utils.GenerateOTP(),
		ExpiresAt: time.Now().Add(utils.OTPExpiry),
	}
	if err := s.userRepo.SetOTP(ctx, user.ID, otp); err != nil {
		return isNewUser, err
	}

	message := fmt.Sprintf("Your %s verification code is %s. It expires in 5 minutes.", utils.AppName, otp.Code)
	_, err = s.sms.SendSMS(ctx, &sms.SMSRequest{To: phone, Message: message})
	if err != nil {
		s.logger.WithError(err).WithField("phone", phone).Error("failed to send otp sms")
		if isNewUser {
			// Do not leave behind accounts that never received a code.
			if delErr := s.userRepo.Delete(ctx, user.ID); delErr != nil {
				s.logger.WithError(delErr).WithUserID(user.ID).Error("failed to roll back user after sms failure")
			}
		}
		return isNewUser, ErrSMSDelivery
	}

	return isNewUser, nil
}

func (s *userService) VerifyOTP(ctx context.Context, phone, code string) (*models.User, string, error) {
	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	if user.OTP == nil {
		return nil, "", ErrNoPendingOTP
	}
	if user.OTP.IsExpired(time.Now()) {
		if err := s.userRepo.ClearOTP(ctx, user.ID, false); err != nil {
			s.logger.WithError(err).WithUserID(user.ID).Error("failed to clear expired otp")
		}
		return nil, "", ErrOTPExpired
	}
	if user.OTP.Code != code {
		// Wrong guesses keep the code alive until it expires.
		return nil, "", ErrOTPMismatch
	}

	if err := s.userRepo.ClearOTP(ctx, user.ID, true); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateUserToken(user.ID, user.Phone, s.auth.JWTSecret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	now := time.Now()
	user.OTP = nil
	user.LastLogin = &now

	s.logger.WithUserID(user.ID).Info("user logged in via otp")
	return user, token, nil
}

func (s *userService) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, interfaces.ErrNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

func (s *userService) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email *string) (*models.User, error) {
	updates := make(map[string]interface{})

	if name != nil {
		updates["name"] = strings.TrimSpace(*name)
	}
	if email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*email))
		if normalized == "" {
			// Empty string clears the field entirely so the sparse unique
			// index does not collide on "".
			if err := s.userRepo.UnsetEmail(ctx, id); err != nil {
				if errors.Is(err, interfaces.ErrNotFound) {
					return nil, ErrNotFound
				}
				return nil, err
			}
		} else {
			if !utils.IsValidEmail(normalized) {
				return nil, ErrInvalidEmail
			}
			updates["email"] = normalized
		}
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, id, updates); err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, ErrNotFound
			}
			if errors.Is(err, interfaces.ErrDuplicate) {
				return nil, ErrDuplicateEmail
			}
			return nil, err
		}
	}

	return s.GetProfile(ctx, id)
}

func (s *userService) DeleteAccount(ctx context.Context, id primitive.ObjectID) error {
	err := s.userRepo.Delete(ctx, id)
	if errors.Is(err, interfaces.ErrNotFound) {
		return ErrNotFound
	}
	if err == nil {
		s.logger.WithUserID(id).Info("user account deleted")
	}
	return err
}
