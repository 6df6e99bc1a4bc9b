package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/esaude/esaude/internal/config"
	"github.com/esaude/esaude/internal/domain/audit"
	"github.com/esaude/esaude/internal/domain/surveillance"
	"github.com/esaude/esaude/internal/platform/auth"
)

type emptySource struct{}

func (emptySource) ListTriagesByZone(context.Context, int, time.Time, time.Time) ([]surveillance.TriageRecord, error) {
	return nil, nil
}

func (emptySource) ListReadingsByZone(context.Context, int, time.Time, time.Time) ([]surveillance.ClinicalReading, error) {
	return nil, nil
}

func testConfig(env string) *config.Config {
	return &config.Config{
		Env:            env,
		JWTSecret:      "test-secret",
		CORSOrigins:    []string{"http://localhost:5173"},
		RateLimitRPS:   100,
		RateLimitBurst: 100,
		ReportTimeout:  time.Second,
		BodyLimit:      "1M",
	}
}

func testServer(cfg *config.Config) (http.Handler, *audit.MemoryRepo) {
	auditRepo := audit.NewMemoryRepo()
	svc := surveillance.NewService(emptySource{}, emptySource{}, auditRepo, nil, zerolog.Nop())
	return newServer(cfg, zerolog.Nop(), routes{
		audit:        audit.NewHandler(audit.NewService(auditRepo)),
		surveillance: surveillance.NewHandler(svc),
	}), auditRepo
}

const reportBody = `{"zonaId":7,"periodoInicio":"2024-02-01","periodoFim":"2024-02-29"}`

func postReport(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/relatorios/vigilancia", strings.NewReader(reportBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func signToken(t *testing.T, secret string, roles ...string) string {
	t.Helper()
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Roles: roles,
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestServer_Health(t *testing.T) {
	h, _ := testServer(testConfig("production"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected request id header")
	}
}

func TestServer_DevAuthGeneratesReport(t *testing.T) {
	h, auditRepo := testServer(testConfig("development"))

	rec := postReport(h, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	entries := auditRepo.Entries()
	if len(entries) != 1 || entries[0].UserID == nil || *entries[0].UserID != "dev-user" {
		t.Errorf("expected one audit entry by dev-user, got %+v", entries)
	}
}

func TestServer_ProductionRequiresToken(t *testing.T) {
	cfg := testConfig("production")
	h, auditRepo := testServer(cfg)

	if rec := postReport(h, ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
	if rec := postReport(h, signToken(t, cfg.JWTSecret, auth.RoleDoctor)); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-manager, got %d", rec.Code)
	}
	if rec := postReport(h, signToken(t, "other-secret", auth.RoleManager)); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for token signed with another key, got %d", rec.Code)
	}

	rec := postReport(h, signToken(t, cfg.JWTSecret, auth.RoleManager))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for manager, got %d: %s", rec.Code, rec.Body.String())
	}
	entries := auditRepo.Entries()
	if len(entries) != 1 || *entries[0].UserID != "user-42" {
		t.Errorf("expected audit entry by token subject, got %+v", entries)
	}
}

func TestServer_RateLimit(t *testing.T) {
	cfg := testConfig("development")
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	h, _ := testServer(cfg)

	if rec := postReport(h, ""); rec.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rec.Code)
	}
	if rec := postReport(h, ""); rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", rec.Code)
	}
}

func TestServer_AuditListing(t *testing.T) {
	h, _ := testServer(testConfig("development"))
	postReport(h, "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auditoria?entity=RelatorioVigilancia", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"total":1`) {
		t.Errorf("expected one audit entry, got %s", rec.Body.String())
	}
}

func TestServer_RejectsOversizedBody(t *testing.T) {
	h, auditRepo := testServer(testConfig("development"))

	body := `{"zonaId":7,"periodoInicio":"2024-02-01","periodoFim":"2024-02-29","x":"` +
		strings.Repeat("a", 32<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/relatorios/vigilancia", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("expected security headers on rejection, got X-Content-Type-Options=%q", got)
	}
	if len(auditRepo.Entries()) != 0 {
		t.Error("expected no report to be generated")
	}
}

func TestServer_SecurityHeaders(t *testing.T) {
	h, _ := testServer(testConfig("development"))

	rec := postReport(h, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	for _, k := range []string{"X-Content-Type-Options", "X-Frame-Options", "Cache-Control"} {
		if rec.Header().Get(k) == "" {
			t.Errorf("expected %s header", k)
		}
	}
}

func TestServer_RateLimitCountsRejectedTokens(t *testing.T) {
	cfg := testConfig("production")
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 2
	h, _ := testServer(cfg)

	for i := 0; i < 2; i++ {
		if rec := postReport(h, "not-a-token"); rec.Code != http.StatusUnauthorized {
			t.Fatalf("request %d: expected 401, got %d", i, rec.Code)
		}
	}
	if rec := postReport(h, "not-a-token"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 once the bucket is drained by bad tokens, got %d", rec.Code)
	}
}

func TestServer_JWTIssuer(t *testing.T) {
	cfg := testConfig("production")
	cfg.JWTIssuer = "esaude-auth"
	h, _ := testServer(cfg)

	// signToken leaves the issuer empty.
	if rec := postReport(h, signToken(t, cfg.JWTSecret, auth.RoleManager)); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for token without the configured issuer, got %d", rec.Code)
	}
}
