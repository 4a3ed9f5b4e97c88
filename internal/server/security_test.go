package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	apiKey := "secret-key"
	middleware := AuthMiddleware(apiKey, nil, NewSuspiciousActivityDetector())

	tests := []struct {
		name           string
		providedKey    string
		path           string
		expectedStatus int
	}{
		{
			name:           "Valid API Key",
			providedKey:    apiKey,
			path:           "/api/v1/character/inventory",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid API Key",
			providedKey:    "wrong-key",
			path:           "/api/v1/character/inventory",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing API Key",
			providedKey:    "",
			path:           "/api/v1/character/inventory",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Public Path - Healthz",
			providedKey:    "",
			path:           "/healthz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Public Path - Metrics",
			providedKey:    "",
			path:           "/metrics",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()

			middleware(okHandler()).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	middleware := RateLimitMiddleware(nil, detector)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/version", nil)
	req.RemoteAddr = "203.0.113.10:4411"

	var lastCode int
	for i := 0; i < 1001; i++ {
		rec := httptest.NewRecorder()
		middleware(okHandler()).ServeHTTP(rec, req)
		lastCode = rec.Code
	}

	if lastCode != http.StatusTooManyRequests {
		t.Errorf("expected status %d after exceeding the budget, got %d", http.StatusTooManyRequests, lastCode)
	}
}

func TestRateLimitTracksIPsSeparately(t *testing.T) {
	detector := NewSuspiciousActivityDetector()

	for i := 0; i < 1001; i++ {
		detector.RecordRequest("203.0.113.10")
	}

	if detector.RecordRequest("203.0.113.10") {
		t.Error("expected the hot IP to be blocked")
	}
	if !detector.RecordRequest("203.0.113.20") {
		t.Error("expected a fresh IP to be allowed")
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name           string
		remoteAddr     string
		forwardedFor   string
		trustedProxies []string
		expected       string
	}{
		{
			name:       "Direct connection",
			remoteAddr: "198.51.100.7:5522",
			expected:   "198.51.100.7",
		},
		{
			name:         "Forwarded header ignored from untrusted peer",
			remoteAddr:   "198.51.100.7:5522",
			forwardedFor: "203.0.113.99",
			expected:     "198.51.100.7",
		},
		{
			name:           "Forwarded header honored from trusted proxy",
			remoteAddr:     "10.0.0.1:8080",
			forwardedFor:   "203.0.113.99",
			trustedProxies: []string{"10.0.0.1"},
			expected:       "203.0.113.99",
		},
		{
			name:           "Rightmost forwarded entry wins",
			remoteAddr:     "10.0.0.1:8080",
			forwardedFor:   "203.0.113.99, 198.51.100.7",
			trustedProxies: []string{"10.0.0.1"},
			expected:       "198.51.100.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwardedFor != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwardedFor)
			}

			if got := extractIP(req, tt.trustedProxies); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	SecurityHeadersMiddleware()(okHandler()).ServeHTTP(rec, req)

	if got := rec.Header().Get(HeaderContentType); got != HeaderValueNoSniff {
		t.Errorf("expected %s header %q, got %q", HeaderContentType, HeaderValueNoSniff, got)
	}
	if got := rec.Header().Get(HeaderFrameOptions); got != HeaderValueSameOrigin {
		t.Errorf("expected %s header %q, got %q", HeaderFrameOptions, HeaderValueSameOrigin, got)
	}
}
