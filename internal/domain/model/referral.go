package model

import (
	"fmt"
	"strings"
	"time"

	"levefit-companion/internal/domain"

	"github.com/google/uuid"
)

// Referral lifecycle: pending (link shared) -> converted (referred user
// signed up) -> approved (purchase confirmed, credit granted).
const (
	ReferralPending   = "pending"
	ReferralConverted = "converted"
	ReferralApproved  = "approved"
)

type Referral struct {
	ID             string
	ReferrerID     string
	ReferredEmail  *string
	ReferredUserID *string
	ReferralCode   string
	Status         string
	CreditAmount   int64
	CreatedAt      time.Time
	ConvertedAt    *time.Time
	ApprovedAt     *time.Time
}

func NewReferral(referrerID, referredEmail string, creditAmount int64) (*Referral, error) {
	if referrerID == "" {
		return nil, domain.ErrInvalidArgument
	}
	r := &Referral{
		ID:           uuid.NewString(),
		ReferrerID:   referrerID,
		ReferralCode: ReferralCodeFor(referrerID),
		Status:       ReferralPending,
		CreditAmount: creditAmount,
		CreatedAt:    time.Now(),
	}
	if referredEmail != "" {
		r.ReferredEmail = &referredEmail
	}
	return r, nil
}

// ReferralCodeFor derives a shareable code from the user ID: "LEVE" plus the
// first six characters, uppercased.
func ReferralCodeFor(userID string) string {
	id := strings.ToUpper(userID)
	if len(id) > 6 {
		id = id[:6]
	}
	return "LEVE" + id
}

// ReferralLinkFor embeds the code in the public signup URL.
func ReferralLinkFor(baseURL, userID string) string {
	return fmt.Sprintf("%s?ref=%s", strings.TrimRight(baseURL, "/"), ReferralCodeFor(userID))
}
