package usecase

import (
	"errors"
	"fmt"

	"levefit-companion/internal/domain"
)

// passthrough are deterministic domain outcomes that must reach the caller
// unchanged. Anything else coming back from the store layer is treated as
// transient: the request was sound, the store was not.
var passthrough = []error{
	domain.ErrCodeNotFound,
	domain.ErrCodeAlreadyUsed,
	domain.ErrCodeAlreadyExists,
	domain.ErrNotFound,
	domain.ErrInvalidArgument,
	domain.ErrNotAuthenticated,
}

func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range passthrough {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
