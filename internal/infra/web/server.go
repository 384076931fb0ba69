package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"levefit-companion/internal/infra/logging"
	"levefit-companion/internal/infra/metrics"
	"levefit-companion/internal/infra/redis"
	"levefit-companion/internal/usecase"
)

// redeemRateLimit bounds code-guessing: attempts per user per window.
const (
	redeemRateLimit  = 10
	redeemRateWindow = time.Minute
)

type Server struct {
	accessUC   usecase.AccessUseCase
	profileUC  usecase.ProfileUseCase
	journeyUC  usecase.JourneyUseCase
	progressUC usecase.ProgressUseCase
	walletUC   usecase.WalletUseCase

	auth    *AuthManager
	limiter *redis.RateLimiter
	apiKey  string
	devMode bool
	log     *zerolog.Logger
}

func NewServer(
	accessUC usecase.AccessUseCase,
	profileUC usecase.ProfileUseCase,
	journeyUC usecase.JourneyUseCase,
	progressUC usecase.ProgressUseCase,
	walletUC usecase.WalletUseCase,
	auth *AuthManager,
	limiter *redis.RateLimiter,
	adminAPIKey string,
	devMode bool,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		accessUC:   accessUC,
		profileUC:  profileUC,
		journeyUC:  journeyUC,
		progressUC: progressUC,
		walletUC:   walletUC,
		auth:       auth,
		limiter:    limiter,
		apiKey:     adminAPIKey,
		devMode:    devMode,
		log:        logger,
	}
}

// Routes builds the full router: public catalog, authenticated app surface
// and the API-key-guarded admin surface.
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog/exercises", s.handleListExercises)
		r.Get("/catalog/drinks", s.handleListDrinks)
		r.Get("/catalog/kits", s.handleListKits)

		if s.devMode {
			r.Post("/auth/dev-token", s.handleDevToken)
		}

		r.Group(func(r chi.Router) {
			r.Use(s.sessionMiddleware)

			r.Post("/auth/logout", s.handleLogout)

			r.Post("/profile", s.handleRegisterProfile)
			r.Get("/profile", s.handleGetProfile)
			r.Put("/profile/kit", s.handleSelectKit)

			r.Post("/codes/redeem", s.handleRedeem)
			r.Get("/journey/today", s.handleJourneyToday)

			r.Post("/progress/capsule", s.handleLogCapsule)
			r.Post("/progress/water", s.handleLogWater)
			r.Get("/progress", s.handleGetProgress)
			r.Get("/achievements", s.handleAchievements)

			r.Get("/wallet", s.handleWalletOverview)
			r.Post("/referrals", s.handleInviteReferral)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.adminMiddleware)

			r.Post("/codes", s.handleIssueCode)
			r.Get("/codes", s.handleListCodes)
			r.Post("/referrals/{id}/approve", s.handleApproveReferral)
		})
	})

	return r
}

// observe records request duration per route pattern and threads the
// request id into the logging context.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			r = r.WithContext(logging.WithRequestID(r.Context(), reqID))
		}
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(r.Method, route, ww.Status(), time.Since(start))
	})
}

// sessionMiddleware verifies the session token and injects the user ID.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.auth.ParseFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		ctx := withUserID(r.Context(), claims.Subject)
		ctx = logging.WithUserID(ctx, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminMiddleware provides simple Bearer token authentication for the admin
// API.
func (s *Server) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" {
			s.log.Error().Msg("admin API key is not configured")
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			writeError(w, http.StatusUnauthorized, "unauthorized: malformed token")
			return
		}

		if tokenParts[1] != s.apiKey {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}

		next.ServeHTTP(w, r)
	})
}
