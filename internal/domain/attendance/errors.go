package attendance

import "errors"

var (
	ErrAlreadyClockedIn = errors.New("already clocked in for this shift date")
	ErrNotClockedIn     = errors.New("no open shift to clock out from")
	ErrLogNotFound      = errors.New("attendance log not found")
)
