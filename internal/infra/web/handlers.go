package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"levefit-companion/internal/catalog"
	"levefit-companion/internal/domain"
	"levefit-companion/internal/domain/model"
	"levefit-companion/internal/infra/logging"
	"levefit-companion/internal/infra/metrics"
	"levefit-companion/internal/infra/redis"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusOf maps domain outcomes to HTTP statuses. Unknown errors are
// treated as transient store trouble, not client mistakes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrCodeNotFound), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCodeAlreadyUsed), errors.Is(err, domain.ErrCodeAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusServiceUnavailable
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, statusOf(err), err.Error())
}

// ===== auth =====

func (s *Server) handleDevToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
		Name   string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	token, err := s.auth.Mint(w, req.UserID, req.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to mint token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleLogout drops the session cookie. Bearer tokens are not revocable
// here; they simply expire.
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	s.auth.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// ===== profile =====

type profileResponse struct {
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	KitType       string    `json:"kit_type,omitempty"`
	CodeValidated bool      `json:"code_validated"`
	CreatedAt     time.Time `json:"created_at"`
}

func toProfileResponse(p *model.Profile) profileResponse {
	return profileResponse{
		UserID:        p.UserID,
		Name:          p.Name,
		KitType:       p.KitType,
		CodeValidated: p.CodeValidated,
		CreatedAt:     p.CreatedAt,
	}
}

func (s *Server) handleRegisterProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := s.profileUC.RegisterOrFetch(r.Context(), userIDFrom(r.Context()), req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profileUC.Get(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

func (s *Server) handleSelectKit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		KitID string `json:"kit_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.profileUC.SelectKit(r.Context(), userIDFrom(r.Context()), req.KitID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== access codes =====

type codeResponse struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	IsUsed    bool       `json:"is_used"`
	UsedBy    *string    `json:"used_by,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	UserName  string     `json:"user_name,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toCodeResponse(c *model.AccessCode) codeResponse {
	return codeResponse{
		ID:        c.ID,
		Code:      c.Code,
		IsUsed:    c.IsUsed,
		UsedBy:    c.UsedBy,
		UsedAt:    c.UsedAt,
		UserName:  c.UserName,
		CreatedAt: c.CreatedAt,
	}
}

func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userIDFrom(ctx)

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, redis.RedeemAttemptKey(userID), redeemRateLimit, redeemRateWindow)
		if err != nil {
			// A broken limiter must not lock users out.
			logging.With(ctx, s.log).Warn().Err(err).Msg("rate limiter unavailable, allowing request")
		} else if !ok {
			writeError(w, http.StatusTooManyRequests, "too many attempts, try again later")
			return
		}
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ac, err := s.accessUC.Redeem(ctx, userID, req.Code)
	if err != nil {
		metrics.IncRedemption(redemptionOutcome(err))
		writeDomainError(w, err)
		return
	}
	metrics.IncRedemption("success")
	writeJSON(w, http.StatusOK, toCodeResponse(ac))
}

func redemptionOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrCodeNotFound):
		return "invalid"
	case errors.Is(err, domain.ErrCodeAlreadyUsed):
		return "already_used"
	case errors.Is(err, domain.ErrInvalidArgument):
		return "bad_input"
	case errors.Is(err, domain.ErrNotAuthenticated):
		return "unauthenticated"
	default:
		return "store_error"
	}
}

// ===== journey =====

func (s *Server) handleJourneyToday(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userIDFrom(ctx)

	p, err := s.profileUC.Get(ctx, userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !p.CodeValidated {
		writeError(w, http.StatusForbidden, "access code not validated")
		return
	}

	now := time.Now()
	msg, err := s.journeyUC.CheckForToday(ctx, userID, p.CreatedAt, now)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response := struct {
		Day     int                     `json:"day"`
		Message *catalog.JourneyMessage `json:"message"`
	}{
		Day:     s.journeyUC.DayIndex(p.CreatedAt, now),
		Message: msg,
	}
	if msg != nil {
		metrics.IncJourneyShown(msg.Day)
	}
	writeJSON(w, http.StatusOK, response)
}

// ===== progress =====

type progressResponse struct {
	CapsuleDays    int        `json:"capsule_days"`
	WaterStreak    int        `json:"water_streak"`
	TotalWaterDays int        `json:"total_water_days"`
	LastCapsuleAt  *time.Time `json:"last_capsule_at,omitempty"`
	LastWaterAt    *time.Time `json:"last_water_at,omitempty"`
}

func toProgressResponse(p *model.Progress) progressResponse {
	return progressResponse{
		CapsuleDays:    p.CapsuleDays,
		WaterStreak:    p.WaterStreak,
		TotalWaterDays: p.TotalWaterDays,
		LastCapsuleAt:  p.LastCapsuleAt,
		LastWaterAt:    p.LastWaterAt,
	}
}

func (s *Server) handleLogCapsule(w http.ResponseWriter, r *http.Request) {
	p, err := s.progressUC.LogCapsule(r.Context(), userIDFrom(r.Context()), time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProgressResponse(p))
}

func (s *Server) handleLogWater(w http.ResponseWriter, r *http.Request) {
	p, err := s.progressUC.LogWater(r.Context(), userIDFrom(r.Context()), time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProgressResponse(p))
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.progressUC.Get(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProgressResponse(p))
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	list, err := s.progressUC.Achievements(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []model.AchievementStatus `json:"data"`
	}{Data: list})
}

// ===== wallet / referrals =====

func (s *Server) handleWalletOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := s.walletUC.Overview(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	type txEntry struct {
		ID          string    `json:"id"`
		Amount      int64     `json:"amount"`
		Type        string    `json:"type"`
		Description string    `json:"description"`
		CreatedAt   time.Time `json:"created_at"`
	}
	txs := make([]txEntry, 0, len(ov.Transactions))
	for _, t := range ov.Transactions {
		txs = append(txs, txEntry{
			ID:          t.ID,
			Amount:      t.Amount,
			Type:        t.Type,
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, struct {
		Balance      int64     `json:"balance"`
		Transactions []txEntry `json:"transactions"`
		Pending      int       `json:"pending"`
		Converted    int       `json:"converted"`
		Approved     int       `json:"approved"`
		ReferralCode string    `json:"referral_code"`
		ReferralLink string    `json:"referral_link"`
	}{
		Balance:      ov.Wallet.Balance,
		Transactions: txs,
		Pending:      ov.Pending,
		Converted:    ov.Converted,
		Approved:     ov.Approved,
		ReferralCode: ov.ReferralCode,
		ReferralLink: ov.ReferralLink,
	})
}

func (s *Server) handleInviteReferral(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ref, err := s.walletUC.InviteByEmail(r.Context(), userIDFrom(r.Context()), req.Email)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}{ID: ref.ID, Status: ref.Status})
}

// ===== catalog =====

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	difficulty := r.URL.Query().Get("difficulty")
	if difficulty == "" {
		difficulty = catalog.DifficultyEasy
	}
	category := r.URL.Query().Get("category")

	var list []catalog.Exercise
	if category == "" {
		list = catalog.ExercisesByDifficulty(difficulty)
	} else {
		list = catalog.ExercisesByDifficultyAndCategory(difficulty, category)
	}

	writeJSON(w, http.StatusOK, struct {
		Data       []catalog.Exercise `json:"data"`
		Categories []string           `json:"categories"`
	}{
		Data:       list,
		Categories: catalog.CategoriesForDifficulty(difficulty),
	})
}

func (s *Server) handleListDrinks(w http.ResponseWriter, r *http.Request) {
	slot := r.URL.Query().Get("time_of_day")
	if slot == "" {
		slot = catalog.TimeMorning
	}
	writeJSON(w, http.StatusOK, struct {
		Data []catalog.DetoxDrink `json:"data"`
	}{Data: catalog.DrinksByTimeOfDay(slot)})
}

func (s *Server) handleListKits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Data []catalog.Kit `json:"data"`
	}{Data: catalog.Kits()})
}

// ===== admin =====

// handleIssueCode creates one code. An empty body or empty code asks the
// server to generate one; generation retries on the rare collision.
func (s *Server) handleIssueCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	// Body is optional for generated codes.
	_ = json.NewDecoder(r.Body).Decode(&req)

	if req.Code != "" {
		ac, err := s.accessUC.Issue(r.Context(), req.Code)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		metrics.IncCodeIssued()
		writeJSON(w, http.StatusCreated, toCodeResponse(ac))
		return
	}

	for attempt := 0; attempt < 5; attempt++ {
		ac, err := s.accessUC.Issue(r.Context(), s.accessUC.GenerateCandidateCode())
		if errors.Is(err, domain.ErrCodeAlreadyExists) {
			continue
		}
		if err != nil {
			writeDomainError(w, err)
			return
		}
		metrics.IncCodeIssued()
		writeJSON(w, http.StatusCreated, toCodeResponse(ac))
		return
	}
	writeError(w, http.StatusServiceUnavailable, "could not generate a unique code")
}

func (s *Server) handleListCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := s.accessUC.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]codeResponse, 0, len(codes))
	for _, c := range codes {
		out = append(out, toCodeResponse(c))
	}
	writeJSON(w, http.StatusOK, struct {
		Data []codeResponse `json:"data"`
	}{Data: out})
}

func (s *Server) handleApproveReferral(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "referral id is required")
		return
	}
	if err := s.walletUC.ApproveReferral(r.Context(), id, time.Now()); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
