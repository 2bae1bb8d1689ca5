package delivery

// The scoreboard never trusts a mutable counter. Every figure below is a
// pure fold over the innings ledger, so deleting the latest event (undo)
// leaves all derived numbers consistent for free.

// BatsmanFigures is an individual batting line recomputed from the ledger.
type BatsmanFigures struct {
	Runs       int
	BallsFaced int
	Fours      int
	Sixes      int
	StrikeRate float64
}

// BowlerFigures is an individual bowling line recomputed from the ledger.
type BowlerFigures struct {
	LegalBalls   int
	Overs        float64
	RunsConceded int
	Wickets      int
	Economy      float64
}

// Numbering derives the over and ball labels for the next delivery given
// the legal-delivery count recorded so far. A legal delivery takes the next
// slot in the over; an illegal one keeps the prior label (0 at the top of a
// fresh over). The over label comes from the post-delivery legal count, so
// the sixth ball of the first over is labelled over 1.
func Numbering(priorLegalCount int, legal bool) (overNumber, ballNumber int) {
	if legal {
		return (priorLegalCount + 1) / 6, priorLegalCount%6 + 1
	}
	return priorLegalCount / 6, priorLegalCount % 6
}

// LegalCount folds the number of legal deliveries in the ledger.
func LegalCount(balls []Ball) int {
	n := 0
	for _, b := range balls {
		if b.IsLegal() {
			n++
		}
	}
	return n
}

// Overs encodes a legal-ball count in cricket's over notation: whole overs
// before the point, balls of the partial over after it. Seven legal balls
// is 1.1, not 7/6.
func Overs(legalBalls int) float64 {
	return float64(legalBalls/6) + float64(legalBalls%6)/10
}

// BatsmanFor folds the batting figures for one player. Wides do not count
// as a ball faced but no-balls do, and runs off the bat count toward fours
// and sixes whatever the extra type.
func BatsmanFor(balls []Ball, playerID string) BatsmanFigures {
	var f BatsmanFigures
	for _, b := range balls {
		if b.BatsmanID != playerID {
			continue
		}
		f.Runs += b.RunsScored
		if b.ExtraType != ExtraWide {
			f.BallsFaced++
		}
		switch b.RunsScored {
		case 4:
			f.Fours++
		case 6:
			f.Sixes++
		}
	}
	if f.BallsFaced > 0 {
		f.StrikeRate = float64(f.Runs) / float64(f.BallsFaced) * 100
	}
	return f
}

// BowlerFor folds the bowling figures for one player. Every extra run is
// charged to the bowler, byes and leg-byes included.
func BowlerFor(balls []Ball, playerID string) BowlerFigures {
	var f BowlerFigures
	for _, b := range balls {
		if b.BowlerID != playerID {
			continue
		}
		f.RunsConceded += b.RunsScored + b.ExtraRuns
		if b.IsLegal() {
			f.LegalBalls++
		}
		if b.CreditsBowler() {
			f.Wickets++
		}
	}
	f.Overs = Overs(f.LegalBalls)
	if f.LegalBalls > 0 {
		f.Economy = float64(f.RunsConceded) / (float64(f.LegalBalls) / 6)
	}
	return f
}

// CurrentRunRate is runs per over bowled so far.
func CurrentRunRate(totalRuns, legalBalls int) float64 {
	if legalBalls == 0 {
		return 0
	}
	return float64(totalRuns) / (float64(legalBalls) / 6)
}

// RequiredRunRate is the chase rate for the second innings: runs still
// needed per over still available.
func RequiredRunRate(target, currentRuns, maxOvers, legalBalls int) float64 {
	oversRemaining := float64(maxOvers*6-legalBalls) / 6
	if oversRemaining <= 0 {
		return 0
	}
	return float64(target-currentRuns) / oversRemaining
}

// CurrentOver returns the trailing events of the in-progress over, oldest
// first, capped to the last six entries. The boundary is rederived from the
// legal-delivery count rather than kept as a pointer.
func CurrentOver(balls []Ball) []Ball {
	intoOver := LegalCount(balls) % 6
	start := len(balls)
	seen := 0
	for i := len(balls) - 1; i >= 0; i-- {
		if balls[i].IsLegal() {
			if seen == intoOver {
				break
			}
			seen++
		}
		start = i
	}
	out := balls[start:]
	if len(out) > 6 {
		out = out[len(out)-6:]
	}
	return out
}
