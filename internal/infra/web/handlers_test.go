package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"levefit-companion/internal/catalog"
	"levefit-companion/internal/domain"
	"levefit-companion/internal/domain/model"
)

const (
	testSecret = "test-secret"
	testAPIKey = "admin-key"
)

func newTestServer(t *testing.T, opts ...func(*Server)) *Server {
	t.Helper()
	srv := NewServer(
		&stubAccessUC{},
		notFoundProfileUC(),
		&stubJourneyUC{},
		&stubProgressUC{},
		&stubWalletUC{},
		NewAuthManager(testSecret, false, time.Hour),
		nil, // no rate limiter in unit tests
		testAPIKey,
		true,
		newLogger(),
	)
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}

func mintToken(t *testing.T, srv *Server, userID string) string {
	t.Helper()
	rec := httptest.NewRecorder()
	token, err := srv.auth.Mint(rec, userID, "Test User")
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, srv *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func TestRedeemEndpoint(t *testing.T) {
	used := "someone"
	usedAt := time.Now()

	tests := []struct {
		name       string
		redeemErr  error
		wantStatus int
	}{
		{"success", nil, http.StatusOK},
		{"unknown code", domain.ErrCodeNotFound, http.StatusNotFound},
		{"already used", domain.ErrCodeAlreadyUsed, http.StatusConflict},
		{"empty code", domain.ErrInvalidArgument, http.StatusBadRequest},
		{"store down", domain.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, func(s *Server) {
				s.accessUC = &stubAccessUC{
					redeem: func(ctx context.Context, userID, code string) (*model.AccessCode, error) {
						if tc.redeemErr != nil {
							return nil, tc.redeemErr
						}
						return &model.AccessCode{
							ID: "id-1", Code: "TEST1234", IsUsed: true,
							UsedBy: &used, UsedAt: &usedAt, CreatedAt: time.Now(),
						}, nil
					},
				}
			})
			token := mintToken(t, srv, "user-1")
			rec := doJSON(t, srv, http.MethodPost, "/api/v1/codes/redeem", token, `{"code":"TEST1234"}`)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d, body=%s", rec.Code, tc.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestRedeemEndpoint_RequiresSession(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/codes/redeem", "", `{"code":"TEST1234"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJourneyTodayEndpoint(t *testing.T) {
	enrolled := time.Now().AddDate(0, 0, -2)

	validated := func(s *Server) {
		s.profileUC = &stubProfileUC{
			get: func(ctx context.Context, userID string) (*model.Profile, error) {
				return &model.Profile{UserID: userID, Name: "Maria", CodeValidated: true, CreatedAt: enrolled}, nil
			},
		}
		s.journeyUC = &stubJourneyUC{
			check: func(ctx context.Context, userID string, enrolledAt, now time.Time) (*catalog.JourneyMessage, error) {
				msg, _ := catalog.JourneyMessageForDay(3)
				return msg, nil
			},
			day: func(enrolledAt, now time.Time) int { return 3 },
		}
	}

	srv := newTestServer(t, validated)
	token := mintToken(t, srv, "user-1")
	rec := doJSON(t, srv, http.MethodGet, "/api/v1/journey/today", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		Day     int                     `json:"day"`
		Message *catalog.JourneyMessage `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Day != 3 || body.Message == nil || body.Message.Day != 3 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestJourneyTodayEndpoint_GatedByCode(t *testing.T) {
	srv := newTestServer(t, func(s *Server) {
		s.profileUC = &stubProfileUC{
			get: func(ctx context.Context, userID string) (*model.Profile, error) {
				return &model.Profile{UserID: userID, Name: "Maria", CodeValidated: false, CreatedAt: time.Now()}, nil
			},
		}
	})
	token := mintToken(t, srv, "user-1")
	rec := doJSON(t, srv, http.MethodGet, "/api/v1/journey/today", token, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestCatalogEndpointsArePublic(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{
		"/api/v1/catalog/exercises",
		"/api/v1/catalog/exercises?difficulty=moderate&category=corrida",
		"/api/v1/catalog/drinks?time_of_day=night",
		"/api/v1/catalog/kits",
	} {
		rec := doJSON(t, srv, http.MethodGet, path, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", path, rec.Code)
		}
	}
}

func TestAdminAuth(t *testing.T) {
	srv := newTestServer(t, func(s *Server) {
		s.accessUC = &stubAccessUC{
			list: func(ctx context.Context) ([]*model.AccessCode, error) {
				return []*model.AccessCode{}, nil
			},
		}
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed", "Token abc", http.StatusUnauthorized},
		{"wrong key", "Bearer nope", http.StatusForbidden},
		{"valid", "Bearer " + testAPIKey, http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/codes", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			srv.Routes().ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestAdminIssueCode_GeneratesWhenEmpty(t *testing.T) {
	issued := 0
	srv := newTestServer(t, func(s *Server) {
		s.accessUC = &stubAccessUC{
			generate: func() string { return "GEN00001" },
			issue: func(ctx context.Context, rawCode string) (*model.AccessCode, error) {
				issued++
				if issued == 1 {
					// First candidate collides.
					return nil, domain.ErrCodeAlreadyExists
				}
				return &model.AccessCode{ID: "id-1", Code: rawCode, CreatedAt: time.Now()}, nil
			},
		}
	})

	// No session token; admin uses the API key header instead.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/codes", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
	if issued != 2 {
		t.Fatalf("expected retry after collision, issued %d times", issued)
	}
}

func TestAdminApproveReferral(t *testing.T) {
	var gotID string
	srv := newTestServer(t, func(s *Server) {
		s.walletUC = &stubWalletUC{
			approve: func(ctx context.Context, referralID string, now time.Time) error {
				gotID = referralID
				return nil
			},
		}
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/referrals/ref-42/approve", nil)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotID != "ref-42" {
		t.Fatalf("approved id = %q", gotID)
	}
}

func TestDevTokenEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/auth/dev-token", "", `{"user_id":"user-1","name":"Maria"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Token == "" {
		t.Fatal("empty token")
	}

	// The minted token must pass the session middleware.
	srv.profileUC = &stubProfileUC{
		get: func(ctx context.Context, userID string) (*model.Profile, error) {
			if userID != "user-1" {
				t.Fatalf("user id from token = %q", userID)
			}
			return &model.Profile{UserID: userID, Name: "Maria", CreatedAt: time.Now()}, nil
		},
	}
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/profile", body.Token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("profile with dev token: status = %d", rec.Code)
	}
}

func TestDevTokenEndpoint_DisabledInProd(t *testing.T) {
	srv := newTestServer(t, func(s *Server) { s.devMode = false })
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/auth/dev-token", "", `{"user_id":"user-1"}`)
	if rec.Code == http.StatusOK {
		t.Fatal("dev token endpoint reachable outside dev mode")
	}
}

func TestLogoutEndpoint_ClearsSessionCookie(t *testing.T) {
	srv := newTestServer(t)
	token := mintToken(t, srv, "user-1")

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/auth/logout", token, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d", rec.Code)
	}

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "levefit_session" && c.Value == "" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("session cookie not cleared")
	}
}

func TestLogoutEndpoint_RequiresSession(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/auth/logout", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
