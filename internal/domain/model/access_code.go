package model

import (
	"strings"
	"time"

	"levefit-companion/internal/domain"

	"github.com/google/uuid"
)

// AccessCode is a single-use credential string gating app entry.
// Invariant: IsUsed is true iff both UsedBy and UsedAt are set, and a used
// code stays used forever. There is no un-redemption path.
type AccessCode struct {
	ID        string
	Code      string
	IsUsed    bool
	UsedBy    *string    // Pointer to allow for NULL
	UsedAt    *time.Time // Pointer to allow for NULL
	CreatedAt time.Time

	// UserName is the redeemer's display name, attached only for admin
	// listings. Never persisted on this entity.
	UserName string
}

// NewAccessCode creates an unused access code from a raw, user-typed string.
func NewAccessCode(rawCode string) (*AccessCode, error) {
	code := NormalizeCode(rawCode)
	if code == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &AccessCode{
		ID:        uuid.NewString(),
		Code:      code,
		IsUsed:    false,
		CreatedAt: time.Now(),
	}, nil
}

// NormalizeCode trims whitespace and uppercases, the same normalization the
// redemption path applies before lookup.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
