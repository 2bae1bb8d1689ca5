package auction

import (
	"errors"
	"time"
)

// ErrVersionConflict is returned by Repository.Update when the stored row's
// version no longer matches the caller's snapshot. Callers reload and retry.
var ErrVersionConflict = errors.New("auction: version conflict")

// State is the single live-auction row. At most one player is on the block
// at a time; Version implements optimistic concurrency for every writer.
type State struct {
	ID                   string
	ActivePlayerID       string
	CurrentBid           int64
	LeadingBidderID      string
	IsActive             bool
	TimerDurationSeconds int64
	TimerStartedAt       *time.Time
	Version              int64
	UpdatedAt            time.Time
}

// TimerRemaining reports whole seconds left on the bidding clock, clamped
// at zero. A nil TimerStartedAt means the clock has not been armed.
func (s State) TimerRemaining(now time.Time) int64 {
	if s.TimerStartedAt == nil {
		return s.TimerDurationSeconds
	}
	elapsed := int64(now.Sub(*s.TimerStartedAt).Seconds())
	remaining := s.TimerDurationSeconds - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Deadline reports when the bidding clock expires, and false when the
// clock is not running.
func (s State) Deadline() (time.Time, bool) {
	if !s.IsActive || s.TimerStartedAt == nil {
		return time.Time{}, false
	}
	return s.TimerStartedAt.Add(time.Duration(s.TimerDurationSeconds) * time.Second), true
}
