package service

import "errors"

// ErrNotAuthenticated is returned by every mutation invoked without a
// caller identity. Read operations never return it; they fail open
// with empty results instead.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrNotFoundOrUnauthorized is returned when a targeted record does
// not exist or is not owned by the caller. The two cases are merged on
// purpose so callers cannot learn whether another user's record
// exists.
var ErrNotFoundOrUnauthorized = errors.New("not found or unauthorized")

// ErrInvalidParticipantIndex is returned when a participant index is
// outside the bill's participant list. The operation is rejected with
// no state mutated.
var ErrInvalidParticipantIndex = errors.New("participant index out of range")
