package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"roadwatch/internal/models"
	"roadwatch/internal/services"
)

type stubUserService struct {
	requestErr error
	isNewUser  bool
	verifyErr  error
	verifyUser *models.User
	token      string
}

func (s *stubUserService) RequestOTP(ctx context.Context, phone, name, email string) (bool, error) {
	return s.isNewUser, s.requestErr
}

func (s *stubUserService) VerifyOTP(ctx context.Context, phone, code string) (*models.User, string, error) {
	return s.verifyUser, s.token, s.verifyErr
}

func (s *stubUserService) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.verifyUser, nil
}

func (s *stubUserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, email *string) (*models.User, error) {
	return s.verifyUser, nil
}

func (s *stubUserService) DeleteAccount(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func userRouter(svc services.UserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewUserHandler(svc)
	r.POST("/api/auth/request-otp", h.RequestOTP)
	r.POST("/api/auth/verify-otp", h.VerifyOTP)
	return r
}

func TestRequestOTP_Envelope(t *testing.T) {
	r := userRouter(&stubUserService{isNewUser: true})
	w := postJSON(r, "/api/auth/request-otp", gin.H{"phone": "9876543210"})
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, true, body["isNewUser"])
	assert.Equal(t, float64(300), body["expiresIn"])
}

func TestRequestOTP_SMSFailure(t *testing.T) {
	r := userRouter(&stubUserService{requestErr: services.ErrSMSDelivery})
	w := postJSON(r, "/api/auth/request-otp", gin.H{"phone": "9876543210"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Failed to send OTP. Please try again.", body["message"])
}

func TestVerifyOTP_StatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"unknown user", services.ErrNotFound, http.StatusNotFound, "User not found. Please request an OTP first."},
		{"no pending", services.ErrNoPendingOTP, http.StatusBadRequest, "No OTP requested. Please request an OTP first."},
		{"expired", services.ErrOTPExpired, http.StatusBadRequest, "OTP has expired. Please request a new one."},
		{"wrong code", services.ErrOTPMismatch, http.StatusBadRequest, "Invalid OTP. Please try again."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := userRouter(&stubUserService{verifyErr: tc.err})
			w := postJSON(r, "/api/auth/verify-otp", gin.H{"phone": "9876543210", "code": "123456"})

			assert.Equal(t, tc.wantStatus, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, tc.wantMsg, body["message"])
		})
	}
}

func TestVerifyOTP_SuccessEnvelope(t *testing.T) {
	user := &models.User{
		ID:    primitive.NewObjectID(),
		Phone: "9876543210",
		Name:  "Asha",
	}
	r := userRouter(&stubUserService{verifyUser: user, token: "jwt-token"})
	w := postJSON(r, "/api/auth/verify-otp", gin.H{"phone": "9876543210", "code": "123456"})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		OK    bool   `json:"ok"`
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Phone string `json:"phone"`
			Name  string `json:"name"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Equal(t, "jwt-token", body.Token)
	assert.Equal(t, user.ID.Hex(), body.User.ID)
	assert.Equal(t, "9876543210", body.User.Phone)
}
