// Package helpers provides HTTP and token utilities for end-to-end tests.
//
// It includes a token minter that plays the campus identity provider,
// request builders, and assertions on RFC 9457 problem responses.
package helpers

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/snuhangout/api/internal/model"
	"github.com/snuhangout/api/pkg/jwt"
)

// TestIssuer is the iss claim on tokens minted by JWTHelper
const TestIssuer = "snu-idp-test"

// ============================================================================
// JWT Helpers
// ============================================================================

// JWTHelper mints identity provider tokens signed with an in-memory key
type JWTHelper struct {
	service *jwt.Service
}

// NewJWTHelper creates a new JWT helper with a fresh key
func NewJWTHelper(t *testing.T) *JWTHelper {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("helpers: failed to generate RSA key: %v", err)
	}

	return &JWTHelper{service: jwt.NewTestService(privateKey, TestIssuer, time.Hour)}
}

// Validator returns the service that verifies tokens minted by this helper
func (h *JWTHelper) Validator() *jwt.Service {
	return h.service
}

// GenerateToken creates a valid token for a campus user. The email is
// derived from the user id key on snu.edu.in.
func (h *JWTHelper) GenerateToken(t *testing.T, userID string) string {
	t.Helper()
	return h.GenerateTokenWithEmail(t, userID, strings.TrimPrefix(userID, "user:")+"@snu.edu.in")
}

// GenerateTokenWithEmail creates a valid token with an explicit email
func (h *JWTHelper) GenerateTokenWithEmail(t *testing.T, userID, email string) string {
	t.Helper()

	token, err := h.service.Sign(jwt.Claims{
		Subject: strings.TrimPrefix(userID, "user:"),
		UserID:  userID,
		Email:   email,
	})
	if err != nil {
		t.Fatalf("helpers: failed to sign token: %v", err)
	}
	return token
}

// GenerateExpiredToken creates a token that expired an hour ago
func (h *JWTHelper) GenerateExpiredToken(t *testing.T, userID string) string {
	t.Helper()

	token, err := h.service.Sign(jwt.Claims{
		UserID:    userID,
		Email:     strings.TrimPrefix(userID, "user:") + "@snu.edu.in",
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("helpers: failed to sign token: %v", err)
	}
	return token
}

// ============================================================================
// HTTP Request Helpers
// ============================================================================

// RequestBuilder helps construct HTTP requests for testing
type RequestBuilder struct {
	t       *testing.T
	method  string
	path    string
	body    interface{}
	headers map[string]string
}

// NewRequest creates a new request builder
func NewRequest(t *testing.T, method, path string) *RequestBuilder {
	t.Helper()
	return &RequestBuilder{
		t:       t,
		method:  method,
		path:    path,
		headers: make(map[string]string),
	}
}

// WithBody sets the request body (will be JSON encoded)
func (rb *RequestBuilder) WithBody(body interface{}) *RequestBuilder {
	rb.body = body
	return rb
}

// WithHeader adds a header to the request
func (rb *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	rb.headers[key] = value
	return rb
}

// WithAuth adds a bearer token for the given user
func (rb *RequestBuilder) WithAuth(h *JWTHelper, userID string) *RequestBuilder {
	rb.t.Helper()
	return rb.WithHeader("Authorization", "Bearer "+h.GenerateToken(rb.t, userID))
}

// Build creates the HTTP request
func (rb *RequestBuilder) Build() *http.Request {
	rb.t.Helper()

	var bodyReader io.Reader
	if rb.body != nil {
		bodyBytes, err := json.Marshal(rb.body)
		if err != nil {
			rb.t.Fatalf("helpers: failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(rb.method, rb.path, bodyReader)
	if rb.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range rb.headers {
		req.Header.Set(k, v)
	}

	return req
}

// Do builds the request and serves it through h
func (rb *RequestBuilder) Do(h http.Handler) *httptest.ResponseRecorder {
	rb.t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, rb.Build())
	return rr
}

// ============================================================================
// Response Assertion Helpers
// ============================================================================

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, resp *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if resp.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, resp.Code, resp.Body.String())
	}
}

// AssertProblemDetails validates an RFC 9457 Problem Details error response
func AssertProblemDetails(t *testing.T, resp *httptest.ResponseRecorder, expectedStatus int, expectedCode model.ErrorCode) {
	t.Helper()

	AssertStatus(t, resp, expectedStatus)

	if ct := resp.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem+json content type, got %q", ct)
	}

	var problem model.ProblemDetails
	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, &problem); err != nil {
		t.Fatalf("failed to decode problem details: %v. Body: %s", err, string(bodyBytes))
	}

	if problem.Status != expectedStatus {
		t.Errorf("expected problem.status %d, got %d", expectedStatus, problem.Status)
	}
	if expectedCode != 0 && problem.Code != expectedCode {
		t.Errorf("expected problem.code %d, got %d", expectedCode, problem.Code)
	}
}

// AssertValidationError checks for a validation error on a specific field
func AssertValidationError(t *testing.T, resp *httptest.ResponseRecorder, field string) {
	t.Helper()

	AssertStatus(t, resp, http.StatusUnprocessableEntity)

	var problem model.ProblemDetails
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to decode problem details: %v", err)
	}

	for _, fe := range problem.Errors {
		if fe.Field == field {
			return
		}
	}

	t.Errorf("expected validation error on field %q, but not found. Errors: %+v", field, problem.Errors)
}

// DecodeData decodes the "data" member of a standard response into v
func DecodeData(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		t.Fatalf("failed to decode response: %v. Body: %s", err, string(bodyBytes))
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		t.Fatalf("failed to decode data: %v. Body: %s", err, string(bodyBytes))
	}
}

// StringPtr returns a pointer to the string
func StringPtr(s string) *string {
	return &s
}
