package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadwatch/internal/models"
	"roadwatch/internal/utils"
)

func newAdminService(repo *fakeAdminRepo, mail *fakeMailer) AdminService {
	return NewAdminService(repo, mail, testAuthConfig(), testLogger())
}

func seedAdmin(t *testing.T, repo *fakeAdminRepo, email, password string, role models.AdminRole, verified, active bool) *models.Admin {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	admin := &models.Admin{
		Email:       email,
		Password:    hash,
		Role:        role,
		Permissions: []models.AdminPermission{models.PermissionRead},
		IsVerified:  verified,
		IsActive:    active,
	}
	require.NoError(t, repo.Create(context.Background(), admin))
	return admin
}

func TestAuthenticate_RegistersAllowListedEmail(t *testing.T) {
	repo := newFakeAdminRepo()
	mail := &fakeMailer{}
	svc := newAdminService(repo, mail)

	result, err := svc.Authenticate(context.Background(), "boss@example.com", "secret1")
	require.NoError(t, err)
	assert.True(t, result.Registered)
	assert.Empty(t, result.Token, "no session before email verification")

	created, err := repo.GetByEmail(context.Background(), "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.AdminRoleSuperAdmin, created.Role)
	assert.False(t, created.IsVerified)
	assert.ElementsMatch(t, models.AllPermissions, created.Permissions)
	assert.NotEmpty(t, created.VerifyToken)

	email := mail.lastEmail()
	require.NotNil(t, email)
	assert.Equal(t, "boss@example.com", email.To)
	assert.Contains(t, email.Body, created.VerifyToken)
}

func TestAuthenticate_RejectsUnknownEmail(t *testing.T) {
	svc := newAdminService(newFakeAdminRepo(), &fakeMailer{})

	_, err := svc.Authenticate(context.Background(), "stranger@example.com", "secret1")
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestAuthenticate_LoginPaths(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := newAdminService(repo, &fakeMailer{})
	ctx := context.Background()

	seedAdmin(t, repo, "verified@example.com", "secret1", models.AdminRoleSuperAdmin, true, true)
	seedAdmin(t, repo, "unverified@example.com", "secret1", models.AdminRoleSuperAdmin, false, true)
	seedAdmin(t, repo, "frozen@example.com", "secret1", models.AdminRoleSubAdmin, true, false)
	seedAdmin(t, repo, "sub@example.com", "secret1", models.AdminRoleSubAdmin, true, true)

	result, err := svc.Authenticate(ctx, "verified@example.com", "secret1")
	require.NoError(t, err)
	assert.False(t, result.Registered)
	assert.NotEmpty(t, result.Token)

	_, err = svc.Authenticate(ctx, "verified@example.com", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Authenticate(ctx, "unverified@example.com", "secret1")
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	_, err = svc.Authenticate(ctx, "frozen@example.com", "secret1")
	assert.ErrorIs(t, err, ErrAccountDeactivated)

	// Sub-admins are not on the allow list but can still log in; the list
	// gates registration only.
	result, err = svc.Authenticate(ctx, "sub@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	claims, err := utils.ValidateAdminToken(result.Token, testAuthConfig().JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, models.AdminRoleSubAdmin, claims.Role)
}

func TestVerifyEmail_TokenIsSingleUse(t *testing.T) {
	repo := newFakeAdminRepo()
	mail := &fakeMailer{}
	svc := newAdminService(repo, mail)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "boss@example.com", "secret1")
	require.NoError(t, err)

	token := tokenFromBody(mail.lastEmail().Body, "verify-email/")
	require.NotEmpty(t, token)

	require.NoError(t, svc.VerifyEmail(ctx, token))

	admin, err := repo.GetByEmail(ctx, "boss@example.com")
	require.NoError(t, err)
	assert.True(t, admin.IsVerified)
	assert.Empty(t, admin.VerifyToken)

	// The same token cannot be presented twice.
	assert.ErrorIs(t, svc.VerifyEmail(ctx, token), ErrInvalidToken)
}

func TestVerifyEmail_BadToken(t *testing.T) {
	svc := newAdminService(newFakeAdminRepo(), &fakeMailer{})
	assert.ErrorIs(t, svc.VerifyEmail(context.Background(), "nope"), ErrInvalidToken)
}

func TestForgotPassword_Asymmetry(t *testing.T) {
	repo := newFakeAdminRepo()
	mail := &fakeMailer{}
	svc := newAdminService(repo, mail)
	ctx := context.Background()

	seedAdmin(t, repo, "verified@example.com", "secret1", models.AdminRoleSuperAdmin, true, true)
	seedAdmin(t, repo, "unverified@example.com", "secret1", models.AdminRoleSuperAdmin, false, true)

	// Unknown emails look identical to successful requests.
	assert.NoError(t, svc.ForgotPassword(ctx, "ghost@example.com"))
	assert.Nil(t, mail.lastEmail())

	// Unverified admins get an explicit error.
	assert.ErrorIs(t, svc.ForgotPassword(ctx, "unverified@example.com"), ErrEmailNotVerified)

	require.NoError(t, svc.ForgotPassword(ctx, "verified@example.com"))
	email := mail.lastEmail()
	require.NotNil(t, email)
	assert.Equal(t, "verified@example.com", email.To)
}

func TestResetPassword_FullFlow(t *testing.T) {
	repo := newFakeAdminRepo()
	mail := &fakeMailer{}
	svc := newAdminService(repo, mail)
	ctx := context.Background()

	seedAdmin(t, repo, "verified@example.com", "oldpass", models.AdminRoleSuperAdmin, true, true)
	require.NoError(t, svc.ForgotPassword(ctx, "verified@example.com"))

	token := tokenFromBody(mail.lastEmail().Body, "reset-password/")
	require.NotEmpty(t, token)

	assert.ErrorIs(t, svc.ResetPassword(ctx, token, "short"), ErrPasswordTooShort)
	require.NoError(t, svc.ResetPassword(ctx, token, "newpass1"))

	// New password works, old one does not, token is spent.
	_, err := svc.Authenticate(ctx, "verified@example.com", "newpass1")
	assert.NoError(t, err)
	_, err = svc.Authenticate(ctx, "verified@example.com", "oldpass")
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.ErrorIs(t, svc.ResetPassword(ctx, token, "another1"), ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := newAdminService(repo, &fakeMailer{})
	ctx := context.Background()

	admin := seedAdmin(t, repo, "verified@example.com", "oldpass", models.AdminRoleSuperAdmin, true, true)

	assert.ErrorIs(t, svc.ChangePassword(ctx, admin.ID, "wrong", "newpass1"), ErrWrongPassword)
	assert.ErrorIs(t, svc.ChangePassword(ctx, admin.ID, "oldpass", "tiny"), ErrPasswordTooShort)

	require.NoError(t, svc.ChangePassword(ctx, admin.ID, "oldpass", "newpass1"))
	_, err := svc.Authenticate(ctx, "verified@example.com", "newpass1")
	assert.NoError(t, err)
}

func TestCreateSuperAdmin_SecretGate(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := newAdminService(repo, &fakeMailer{})
	ctx := context.Background()

	_, err := svc.CreateSuperAdmin(ctx, "wrong-secret", "root@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidSecret)

	admin, err := svc.CreateSuperAdmin(ctx, "bootstrap-secret", "root@example.com", "secret1")
	require.NoError(t, err)
	assert.True(t, admin.IsVerified)
	assert.True(t, admin.IsActive)
	assert.Equal(t, models.AdminRoleSuperAdmin, admin.Role)

	_, err = svc.CreateSuperAdmin(ctx, "bootstrap-secret", "root@example.com", "secret1")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegister_EmailDeliveryFailure(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := newAdminService(repo, &fakeMailer{fail: true})

	_, err := svc.Authenticate(context.Background(), "boss@example.com", "secret1")
	assert.ErrorIs(t, err, ErrEmailDeliveryFailed)
}
