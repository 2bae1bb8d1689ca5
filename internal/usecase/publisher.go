package usecase

// Publisher fans an event out to every connected live-feed client. Services
// publish after a successful write; delivery is best-effort.
type Publisher interface {
	Publish(eventType string, payload any)
}

// Event types published by the auction and scoring services.
const (
	EventAuctionStarted = "auction.started"
	EventAuctionBid     = "auction.bid"
	EventAuctionClosed  = "auction.closed"
	EventInningsStarted = "scoring.innings_started"
	EventInningsEnded   = "scoring.innings_ended"
	EventBallRecorded   = "scoring.ball_recorded"
	EventBallUndone     = "scoring.ball_undone"
	EventMilestone      = "scoring.milestone"
	EventMatchCompleted = "scoring.match_completed"
)

// NopPublisher drops every event. Used in tests and when the live feed is
// not wired.
type NopPublisher struct{}

func (NopPublisher) Publish(string, any) {}
