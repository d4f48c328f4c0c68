package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/avolkov/fittrack/internal/errs"
	"github.com/avolkov/fittrack/internal/model"
)

func TestRegister_Created(t *testing.T) {
	uid := uuid.Must(uuid.NewV4())
	f := &fakes{auth: fakeAuthSvc{
		registerFn: func(_ context.Context, username, email, password string) (model.Tokens, uuid.UUID, error) {
			require.Equal(t, "alice", username)
			require.Equal(t, "alice@example.com", email)
			require.Equal(t, "pwd", password)
			return model.Tokens{AccessToken: "signed-token"}, uid, nil
		},
	}}
	h := newTestServer(f)

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"username":"alice","email":"alice@example.com","password":"pwd"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "signed-token", body.AccessToken)
	require.Equal(t, uid.String(), body.UserID)
	require.Equal(t, "user registered successfully", body.Message)
}

func TestRegister_Errors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"validation", fmt.Errorf("%w: username, email and password are required", errs.ErrValidation), http.StatusBadRequest, "required"},
		{"duplicate username", fmt.Errorf("%w: username", errs.ErrAlreadyExists), http.StatusBadRequest, "username already exists"},
		{"duplicate email", fmt.Errorf("%w: email", errs.ErrAlreadyExists), http.StatusBadRequest, "email already exists"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakes{auth: fakeAuthSvc{
				registerFn: func(context.Context, string, string, string) (model.Tokens, uuid.UUID, error) {
					return model.Tokens{}, uuid.Nil, tc.err
				},
			}}
			h := newTestServer(f)

			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{}`))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tc.wantCode, rec.Code)
			require.Contains(t, rec.Body.String(), tc.wantBody)
		})
	}
}

func TestRegister_MalformedJSON(t *testing.T) {
	h := newTestServer(&fakes{})

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"username":`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid JSON body")
}

func TestLogin_OK(t *testing.T) {
	uid := uuid.Must(uuid.NewV4())
	f := &fakes{auth: fakeAuthSvc{
		loginFn: func(_ context.Context, username, password, ip string) (model.Tokens, uuid.UUID, error) {
			require.Equal(t, "alice", username)
			require.NotEmpty(t, ip)
			return model.Tokens{AccessToken: "signed-token"}, uid, nil
		},
	}}
	h := newTestServer(f)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"alice","password":"pwd"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "login successful", body.Message)
	require.Equal(t, uid.String(), body.UserID)
}

func TestLogin_Errors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"bad credentials", fmt.Errorf("%w: invalid username or password", errs.ErrUnauthorized), http.StatusUnauthorized},
		{"rate limited", errs.ErrRateLimited, http.StatusTooManyRequests},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakes{auth: fakeAuthSvc{
				loginFn: func(context.Context, string, string, string) (model.Tokens, uuid.UUID, error) {
					return model.Tokens{}, uuid.Nil, tc.err
				},
			}}
			h := newTestServer(f)

			req := httptest.NewRequest(http.MethodPost, "/auth/login",
				strings.NewReader(`{"username":"alice","password":"nope"}`))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tc.wantCode, rec.Code)
		})
	}
}

func TestLogout_RequiresAuth(t *testing.T) {
	h := newTestServer(&fakes{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doAuthed(t, h, uuid.Must(uuid.NewV4()), http.MethodPost, "/auth/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "logged out successfully")
}
