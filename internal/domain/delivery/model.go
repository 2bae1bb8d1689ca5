package delivery

import "time"

type ExtraType string

const (
	ExtraNone    ExtraType = ""
	ExtraWide    ExtraType = "wide"
	ExtraNoBall  ExtraType = "no_ball"
	ExtraBye     ExtraType = "bye"
	ExtraLegBye  ExtraType = "leg_bye"
	ExtraPenalty ExtraType = "penalty"
)

var AllExtraTypes = map[ExtraType]struct{}{
	ExtraWide:    {},
	ExtraNoBall:  {},
	ExtraBye:     {},
	ExtraLegBye:  {},
	ExtraPenalty: {},
}

type WicketType string

const (
	WicketBowled    WicketType = "bowled"
	WicketCaught    WicketType = "caught"
	WicketLBW       WicketType = "lbw"
	WicketStumped   WicketType = "stumped"
	WicketHitWicket WicketType = "hit_wicket"
	WicketRunOut    WicketType = "run_out"
)

var AllWicketTypes = map[WicketType]struct{}{
	WicketBowled:    {},
	WicketCaught:    {},
	WicketLBW:       {},
	WicketStumped:   {},
	WicketHitWicket: {},
	WicketRunOut:    {},
}

// bowlerCredited lists the dismissal kinds that count toward the bowler's
// wicket tally. Run-outs never do.
var bowlerCredited = map[WicketType]struct{}{
	WicketBowled:    {},
	WicketCaught:    {},
	WicketLBW:       {},
	WicketStumped:   {},
	WicketHitWicket: {},
}

// Ball is one immutable delivery event in an innings ledger. Sequence is
// the append order within the innings; OverNumber and BallNumber are frozen
// at record time from the legal-delivery count.
type Ball struct {
	ID         string
	InningsID  string
	Sequence   int
	OverNumber int
	BallNumber int
	BatsmanID  string
	BowlerID   string
	RunsScored int
	ExtraType  ExtraType
	ExtraRuns  int
	IsWicket   bool
	WicketType WicketType
	FielderID  string
	RecordedAt time.Time
}

// IsLegal reports whether the delivery consumes one of the over's six
// balls. Wides and no-balls do not.
func (b Ball) IsLegal() bool {
	return b.ExtraType != ExtraWide && b.ExtraType != ExtraNoBall
}

// TotalRuns is the ball's full contribution to the innings score.
func (b Ball) TotalRuns() int {
	return b.RunsScored + b.ExtraRuns
}

// CreditsBowler reports whether the dismissal on this ball counts toward
// the bowler's figures.
func (b Ball) CreditsBowler() bool {
	if !b.IsWicket {
		return false
	}
	_, ok := bowlerCredited[b.WicketType]
	return ok
}
