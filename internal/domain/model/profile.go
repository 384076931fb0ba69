package model

import (
	"time"

	"levefit-companion/internal/domain"
)

// Profile is the per-user application profile. UserID comes from the
// authentication collaborator; this service trusts it and never validates
// identity itself.
//
// CreatedAt is the enrollment instant and anchors the journey day index.
// CodeValidated is monotonic: once a redemption sets it, nothing in this
// service resets it.
type Profile struct {
	UserID        string
	Name          string
	KitType       string
	CodeValidated bool
	IsAdmin       bool
	CreatedAt     time.Time
}

func NewProfile(userID, name string) (*Profile, error) {
	if userID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Profile{
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}, nil
}

func (p *Profile) IsZero() bool { return p == nil || p.UserID == "" }
