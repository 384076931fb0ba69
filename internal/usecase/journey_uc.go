package usecase

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"levefit-companion/internal/catalog"
	"levefit-companion/internal/domain/ports/repository"
	"levefit-companion/internal/infra/logging"
)

// Compile-time check
var _ JourneyUseCase = (*journeyUC)(nil)

// MarkerCache is an optional fast path over the marker store. A nil cache or
// a cache miss simply falls through to the repository, which stays the
// source of truth.
type MarkerCache interface {
	Seen(ctx context.Context, userID string, day int) bool
	MarkSeen(ctx context.Context, userID string, day int)
}

// JourneyUseCase selects at most one day-indexed message to present and
// guarantees it is handed out at most once per (user, day).
type JourneyUseCase interface {
	// CheckForToday returns the message due for the user's current journey
	// day, or nil when no message is due or it was already shown. The shown
	// marker is committed before the message is yielded, so ordinary
	// reloads can never see it twice.
	CheckForToday(ctx context.Context, userID string, enrolledAt, now time.Time) (*catalog.JourneyMessage, error)
	// DayIndex computes the 1-based journey day for the given instants.
	DayIndex(enrolledAt, now time.Time) int
	// CountDueToday reports how many validated profiles currently have an
	// unshown message, for the sweep gauge.
	CountDueToday(ctx context.Context, now time.Time) (int, error)
}

type journeyUC struct {
	markers  repository.JourneyMarkerRepository
	profiles repository.ProfileRepository
	cache    MarkerCache
	loc      *time.Location
	timeout  time.Duration
	log      *zerolog.Logger
}

func NewJourneyUseCase(
	markers repository.JourneyMarkerRepository,
	profiles repository.ProfileRepository,
	cache MarkerCache,
	loc *time.Location,
	storeTimeout time.Duration,
	logger *zerolog.Logger,
) *journeyUC {
	if loc == nil {
		loc = time.UTC
	}
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &journeyUC{
		markers:  markers,
		profiles: profiles,
		cache:    cache,
		loc:      loc,
		timeout:  storeTimeout,
		log:      logger,
	}
}

// DayIndex counts whole calendar days between the two instants in the
// configured location, plus one: the enrollment day itself is day 1, and an
// enrollment at 23:00 followed by a call at 01:00 the next day is day 2.
// A now before enrolledAt yields a non-positive index, which matches no
// catalog entry.
func (u *journeyUC) DayIndex(enrolledAt, now time.Time) int {
	start := midnightOf(enrolledAt.In(u.loc))
	today := midnightOf(now.In(u.loc))
	// Rounding absorbs the one-hour wobble of DST transitions.
	days := int(math.Round(today.Sub(start).Hours() / 24))
	return days + 1
}

func midnightOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (u *journeyUC) CheckForToday(ctx context.Context, userID string, enrolledAt, now time.Time) (*catalog.JourneyMessage, error) {
	defer logging.TraceDuration(u.log, "JourneyUC.CheckForToday")()

	day := u.DayIndex(enrolledAt, now)
	if day < 1 {
		return nil, nil
	}
	msg, ok := catalog.JourneyMessageForDay(day)
	if !ok {
		// Sparse catalog: nothing due today, no side effects.
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	if u.cache != nil && u.cache.Seen(ctx, userID, day) {
		return nil, nil
	}

	// The marker insert is both the dedupe check and the durable write:
	// false means some earlier (or concurrent) call already claimed this
	// (user, day), and the message must not be shown again.
	created, err := u.markers.MarkShown(ctx, repository.NoTX, userID, day)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if !created {
		if u.cache != nil {
			u.cache.MarkSeen(ctx, userID, day)
		}
		return nil, nil
	}

	if u.cache != nil {
		u.cache.MarkSeen(ctx, userID, day)
	}
	u.log.Debug().Str("user_id", userID).Int("day", day).Msg("journey message due")
	return msg, nil
}

func (u *journeyUC) CountDueToday(ctx context.Context, now time.Time) (int, error) {
	defer logging.TraceDuration(u.log, "JourneyUC.CountDueToday")()

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	profiles, err := u.profiles.ListValidated(ctx, repository.NoTX)
	if err != nil {
		return 0, mapStoreError(err)
	}

	due := 0
	for _, p := range profiles {
		day := u.DayIndex(p.CreatedAt, now)
		if day < 1 {
			continue
		}
		if _, ok := catalog.JourneyMessageForDay(day); !ok {
			continue
		}
		seen, err := u.markers.Seen(ctx, repository.NoTX, p.UserID, day)
		if err != nil {
			return 0, mapStoreError(err)
		}
		if !seen {
			due++
		}
	}
	return due, nil
}
