package api

import (
	"accountstore/internal/service"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func decodeRecorded(t *testing.T, w *httptest.ResponseRecorder) APIError {
	t.Helper()
	var response APIError
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return response
}

func TestRespondServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		expectedMsg    string
	}{
		{"duplicate", service.OpError{Op: "op", Kind: service.ErrDuplicateValue, Msg: "bob already in use"}, http.StatusConflict, ErrCodeDuplicateUsername, "bob already in use"},
		{"time set", service.OpError{Op: "op", Kind: service.ErrTimeSet, Msg: "end before start"}, http.StatusBadRequest, ErrCodeTimeSet, "end before start"},
		{"format", service.OpError{Op: "op", Kind: service.ErrFormat}, http.StatusBadRequest, ErrCodeInvalidTimeFormat, "op: format error"},
		{"invalid input", service.OpError{Op: "op", Kind: service.ErrInvalidInput, Msg: "empty batch"}, http.StatusBadRequest, ErrCodeInvalidRequest, "empty batch"},
		{"password", service.OpError{Op: "op", Kind: service.ErrPassword, Msg: "bob's password is wrong"}, http.StatusUnauthorized, ErrCodeInvalidPassword, "wrong password"},
		{"account", fmt.Errorf("wrapped: %w", service.OpError{Op: "op", Kind: service.ErrAccount}), http.StatusNotFound, ErrCodeAccountNotFound, "account not found"},
		{"storage", errors.New("disk I/O error"), http.StatusInternalServerError, ErrCodeInternalError, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondServiceError(c, tt.err, "failed")

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			response := decodeRecorded(t, w)
			if response.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, response.Code)
			}
			if response.Message != tt.expectedMsg {
				t.Errorf("expected message %q, got %q", tt.expectedMsg, response.Message)
			}
		})
	}
}

func TestValidUsername(t *testing.T) {
	tests := []struct {
		username string
		want     bool
	}{
		{"bob", true},
		{"Bob", true},
		{"bob smith", true},
		{"", false},
		{" ", false},
		{"bob ", false},
		{" bob", false},
		{"bob\t", false},
		{"\nbob", false},
	}
	for _, tt := range tests {
		if got := validUsername(tt.username); got != tt.want {
			t.Errorf("validUsername(%q): expected %v, got %v", tt.username, tt.want, got)
		}
	}
}

func TestInvalidUsernameResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	InvalidUsername(c, " bob")

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	response := decodeRecorded(t, w)
	if response.Code != ErrCodeInvalidUsername {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidUsername, response.Code)
	}
	details, ok := response.Details.(map[string]any)
	if !ok || details["username"] != " bob" {
		t.Errorf("expected offending username in details, got %#v", response.Details)
	}
}

func TestAccountResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		respond        func(c *gin.Context)
		expectedStatus int
		expectedCode   string
	}{
		{"expired window", accountExpired, http.StatusForbidden, ErrCodeAccountExpired},
		{"admin required", func(c *gin.Context) { Forbidden(c, "admin role required") }, http.StatusForbidden, ErrCodeForbidden},
		{"no session", func(c *gin.Context) { Unauthorized(c, "missing bearer token") }, http.StatusUnauthorized, ErrCodeUnauthorized},
		{"unknown account", func(c *gin.Context) { NotFound(c, ErrCodeAccountNotFound, "account not found") }, http.StatusNotFound, ErrCodeAccountNotFound},
		{"weak password", func(c *gin.Context) { BadRequest(c, ErrCodeWeakPassword, "weak") }, http.StatusBadRequest, ErrCodeWeakPassword},
		{"bad payload", InvalidPayload, http.StatusBadRequest, ErrCodeInvalidRequest},
		{"storage failure", func(c *gin.Context) { InternalError(c, "failed to list accounts") }, http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.respond(c)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if response := decodeRecorded(t, w); response.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, response.Code)
			}
		})
	}
}
