package service

import "github.com/google/uuid"

// RequireSelf permits an operation only when the actor is the user the
// operation targets. The user-scoped favorite endpoints call this before
// touching the favorites collection; the recipe-scoped favorite endpoints
// never do, since there the actor is the target by construction.
func RequireSelf(actorID, targetUserID uuid.UUID) error {
	if actorID != targetUserID {
		return ErrForbidden
	}
	return nil
}
