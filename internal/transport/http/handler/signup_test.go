package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Nnvvee96/planora.ai-sub005/internal/application/signup"
	"github.com/Nnvvee96/planora.ai-sub005/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mock ---

type mockSignupSvc struct{ mock.Mock }

func (m *mockSignupSvc) InitiateSignup(ctx context.Context, req signup.InitiateRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockSignupSvc) CompleteSignup(ctx context.Context, req signup.CompleteRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// --- helpers ---

func signupBody(t *testing.T, action string, payload interface{}) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	body, err := json.Marshal(map[string]json.RawMessage{
		"action":  json.RawMessage(fmt.Sprintf("%q", action)),
		"payload": raw,
	})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func serveSignup(svc signup.Service, body *bytes.Reader) *httptest.ResponseRecorder {
	h := NewSignupHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/signup", body)
	rr := httptest.NewRecorder()
	h.Action(rr, r)
	return rr
}

// --- tests ---

func TestSignupAction_InvalidBody(t *testing.T) {
	svc := &mockSignupSvc{}
	h := NewSignupHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/signup", bytes.NewBufferString("not-json"))
	rr := httptest.NewRecorder()
	h.Action(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSignupAction_UnknownAction(t *testing.T) {
	svc := &mockSignupSvc{}
	rr := serveSignup(svc, signupBody(t, "reset-password", map[string]string{}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var resp MessageEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "unknown action", resp.Error)
}

func TestInitiate_ValidationFailure(t *testing.T) {
	svc := &mockSignupSvc{}
	rr := serveSignup(svc, signupBody(t, "initiate-signup", signup.InitiateRequest{
		Email: "not-an-email", Password: "secret123",
	}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "InitiateSignup", mock.Anything, mock.Anything)
}

func TestInitiate_DeliveryFailure(t *testing.T) {
	svc := &mockSignupSvc{}
	svc.On("InitiateSignup", mock.Anything, mock.Anything).
		Return(fmt.Errorf("send code email: smtp down (%w)", domain.ErrDelivery))
	rr := serveSignup(svc, signupBody(t, "initiate-signup", signup.InitiateRequest{
		Email: "alice@example.com", Password: "secret123",
	}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertExpectations(t)
}

func TestInitiate_HappyPath(t *testing.T) {
	svc := &mockSignupSvc{}
	svc.On("InitiateSignup", mock.Anything, signup.InitiateRequest{
		Email: "alice@example.com", Password: "secret123",
	}).Return(nil)
	rr := serveSignup(svc, signupBody(t, "initiate-signup", signup.InitiateRequest{
		Email: "alice@example.com", Password: "secret123",
	}))
	assert.Equal(t, http.StatusOK, rr.Code)
	var resp MessageEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "verification code sent", resp.Message)
	svc.AssertExpectations(t)
}

func TestComplete_CodeLengthValidation(t *testing.T) {
	svc := &mockSignupSvc{}
	rr := serveSignup(svc, signupBody(t, "complete-signup", signup.CompleteRequest{
		Email: "alice@example.com", Code: "12345",
	}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "CompleteSignup", mock.Anything, mock.Anything)
}

func TestComplete_ExpiredCode(t *testing.T) {
	svc := &mockSignupSvc{}
	svc.On("CompleteSignup", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("verification code expired (%w)", domain.ErrExpired))
	rr := serveSignup(svc, signupBody(t, "complete-signup", signup.CompleteRequest{
		Email: "alice@example.com", Code: "123456",
	}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var resp MessageEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Contains(t, resp.Error, "expired")
	svc.AssertExpectations(t)
}

func TestComplete_HappyPath(t *testing.T) {
	svc := &mockSignupSvc{}
	svc.On("CompleteSignup", mock.Anything, signup.CompleteRequest{
		Email: "alice@example.com", Code: "042137",
	}).Return("u1", nil)
	rr := serveSignup(svc, signupBody(t, "complete-signup", signup.CompleteRequest{
		Email: "alice@example.com", Code: "042137",
	}))
	assert.Equal(t, http.StatusOK, rr.Code)
	var resp SignupEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "signup completed", resp.Message)
	assert.Equal(t, "u1", resp.UserID)
	svc.AssertExpectations(t)
}
