package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"roadwatch/internal/config"
	"roadwatch/internal/models"
	"roadwatch/internal/repositories/interfaces"
	"roadwatch/pkg/logger"
	"roadwatch/pkg/sms"
	"roadwatch/pkg/storage"
)

func testLogger() *logger.Logger {
	log, _ := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	return log
}

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:          "unit-test-secret",
		AllowedAdminEmails: []string{"boss@example.com"},
		SuperAdminSecret:   "bootstrap-secret",
		FrontendURL:        "https://dash.example.com/",
	}
}

// fakeAdminRepo is an in-memory AdminRepository.
type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[primitive.ObjectID]*models.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[primitive.ObjectID]*models.Admin)}
}

func (r *fakeAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.admins {
		if existing.Email == admin.Email {
			return interfaces.ErrDuplicate
		}
	}
	admin.ID = primitive.NewObjectID()
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = time.Now()
	clone := *admin
	r.admins[admin.ID] = &clone
	return nil
}

func (r *fakeAdminRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	clone := *admin
	return &clone, nil
}

func (r *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, admin := range r.admins {
		if admin.Email == email {
			clone := *admin
			return &clone, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeAdminRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	for key, value := range updates {
		switch key {
		case "password":
			admin.Password = value.(string)
		case "permissions":
			admin.Permissions = value.([]models.AdminPermission)
		case "is_active":
			admin.IsActive = value.(bool)
		case "reset_password_token":
			admin.ResetPasswordToken = value.(string)
		case "reset_password_expiry":
			expiry := value.(time.Time)
			admin.ResetPasswordExpiry = &expiry
		}
	}
	admin.UpdatedAt = time.Now()
	return nil
}

func (r *fakeAdminRepo) ConsumeVerifyToken(ctx context.Context, token string, now time.Time) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, admin := range r.admins {
		if admin.HasValidVerifyToken(token, now) {
			admin.IsVerified = true
			admin.VerifyToken = ""
			admin.TokenExpiry = nil
			clone := *admin
			return &clone, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeAdminRepo) ConsumeResetToken(ctx context.Context, token string, now time.Time, passwordHash string) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, admin := range r.admins {
		if admin.HasValidResetToken(token, now) {
			admin.Password = passwordHash
			admin.ResetPasswordToken = ""
			admin.ResetPasswordExpiry = nil
			clone := *admin
			return &clone, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeAdminRepo) ListSubAdmins(ctx context.Context) ([]*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Admin
	for _, admin := range r.admins {
		if admin.Role == models.AdminRoleSubAdmin {
			clone := *admin
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeAdminRepo) GetSubAdminByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[id]
	if !ok || admin.Role != models.AdminRoleSubAdmin {
		return nil, interfaces.ErrNotFound
	}
	clone := *admin
	return &clone, nil
}

func (r *fakeAdminRepo) DeleteSubAdmin(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[id]
	if !ok || admin.Role != models.AdminRoleSubAdmin {
		return interfaces.ErrNotFound
	}
	delete(r.admins, id)
	return nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Phone == user.Phone {
			return interfaces.ErrDuplicate
		}
		if user.Email != "" && existing.Email == user.Email {
			return interfaces.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Phone == phone {
			clone := *user
			return &clone, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	for key, value := range updates {
		switch key {
		case "name":
			user.Name = value.(string)
		case "email":
			email := value.(string)
			for otherID, other := range r.users {
				if otherID != id && other.Email == email {
					return interfaces.ErrDuplicate
				}
			}
			user.Email = email
		case "otp":
			user.OTP = value.(*models.OTP)
		}
	}
	user.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) SetOTP(ctx context.Context, id primitive.ObjectID, otp *models.OTP) error {
	return r.Update(ctx, id, map[string]interface{}{"otp": otp})
}

func (r *fakeUserRepo) ClearOTP(ctx context.Context, id primitive.ObjectID, markLogin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	user.OTP = nil
	if markLogin {
		now := time.Now()
		user.LastLogin = &now
	}
	return nil
}

func (r *fakeUserRepo) UnsetEmail(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	user.Email = ""
	return nil
}

// fakePotholeRepo is an in-memory PotholeRepository.
type fakePotholeRepo struct {
	mu       sync.Mutex
	potholes map[primitive.ObjectID]*models.Pothole
}

func newFakePotholeRepo() *fakePotholeRepo {
	return &fakePotholeRepo{potholes: make(map[primitive.ObjectID]*models.Pothole)}
}

func (r *fakePotholeRepo) Create(ctx context.Context, pothole *models.Pothole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	pothole.ID = primitive.NewObjectID()
	pothole.CreatedAt = time.Now()
	pothole.UpdatedAt = time.Now()
	clone := *pothole
	r.potholes[pothole.ID] = &clone
	return nil
}

func (r *fakePotholeRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Pothole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pothole, ok := r.potholes[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	clone := *pothole
	return &clone, nil
}

func (r *fakePotholeRepo) List(ctx context.Context, filter *interfaces.PotholeFilter) ([]*models.Pothole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Pothole, 0)
	for _, pothole := range r.potholes {
		if filter != nil {
			if filter.Status != "" && pothole.Status != filter.Status {
				continue
			}
			if filter.Severity != "" && pothole.Severity != filter.Severity {
				continue
			}
		}
		clone := *pothole
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakePotholeRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.PotholeStatus) (*models.Pothole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pothole, ok := r.potholes[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	pothole.Status = status
	pothole.UpdatedAt = time.Now()
	clone := *pothole
	return &clone, nil
}

func (r *fakePotholeRepo) Delete(ctx context.Context, id primitive.ObjectID) (*models.Pothole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pothole, ok := r.potholes[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	delete(r.potholes, id)
	return pothole, nil
}

func (r *fakePotholeRepo) Stats(ctx context.Context) (*models.PotholeStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &models.PotholeStats{
		ByStatus:   make(map[string]int64),
		BySeverity: make(map[string]int64),
	}
	for _, pothole := range r.potholes {
		stats.Total++
		stats.ByStatus[string(pothole.Status)]++
		stats.BySeverity[string(pothole.Severity)]++
	}
	return stats, nil
}

// fakeSMS records sent messages and can be told to fail.
type fakeSMS struct {
	mu   sync.Mutex
	sent []sms.SMSRequest
	fail bool
}

func (f *fakeSMS) SendSMS(ctx context.Context, request *sms.SMSRequest) (*sms.SMSResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.New("sms gateway down")
	}
	f.sent = append(f.sent, *request)
	return &sms.SMSResponse{MessageID: "fake", Status: "sent"}, nil
}

func (f *fakeSMS) lastMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1].Message
}

// fakeMailer records sent emails and can be told to fail.
type fakeMailer struct {
	mu   sync.Mutex
	sent []fakeEmail
	fail bool
}

type fakeEmail struct {
	To      string
	Subject string
	Body    string
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, fakeEmail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (f *fakeMailer) lastEmail() *fakeEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return nil
	}
	return &f.sent[len(f.sent)-1]
}

// tokenFromBody pulls the opaque token out of a verification or reset link,
// given the path segment preceding it ("verify-email/" or "reset-password/").
func tokenFromBody(body, marker string) string {
	idx := strings.Index(body, marker)
	if idx == -1 {
		return ""
	}
	rest := body[idx+len(marker):]
	if end := strings.IndexAny(rest, `"<`); end != -1 {
		rest = rest[:end]
	}
	return rest
}

// fakeStorage is an in-memory storage.Provider.
type fakeStorage struct {
	mu       sync.Mutex
	objects  map[string][]byte
	deleted  []string
	failPut  bool
	failDrop bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(ctx context.Context, request *storage.UploadRequest) (*storage.UploadResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut {
		return nil, errors.New("upload failed")
	}
	f.objects[request.Key] = nil
	return &storage.UploadResponse{
		Key: request.Key,
		URL: "https://bucket.s3.us-east-1.amazonaws.com/" + request.Key,
	}, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDrop {
		return errors.New("delete failed")
	}
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) FileExists(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeStorage) KeyFromURL(url string) string {
	marker := ".amazonaws.com/"
	idx := strings.Index(url, marker)
	if idx == -1 {
		return ""
	}
	return url[idx+len(marker):]
}
