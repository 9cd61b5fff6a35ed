package roster

import "errors"

// Failure modes surfaced to callers. Everything here is a rejected
// operation, never a corrupted state: the prior roster collection is
// always left untouched.
var (
	ErrEmptyName      = errors.New("roster name is empty")
	ErrDuplicateName  = errors.New("roster name already exists")
	ErrRosterNotFound = errors.New("roster not found")
	ErrLastRoster     = errors.New("cannot delete the last roster")
	ErrGameModeActive = errors.New("operation not allowed while game mode is active")
	ErrUnitNotFound   = errors.New("unit not found")
	ErrCardNotFound   = errors.New("card not found in catalog")
	ErrNotPartSlot    = errors.New("category is not a unit part slot")
)
