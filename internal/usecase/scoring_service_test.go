package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/delivery"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/innings"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/match"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/player"
	"github.com/smarteck4/cricket-auction-pro/internal/infrastructure/repository/memory"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/id"
)

type capturedEvent struct {
	Type    string
	Payload any
}

type capturePublisher struct {
	mu     sync.Mutex
	events []capturedEvent
}

func (p *capturePublisher) Publish(eventType string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, capturedEvent{Type: eventType, Payload: payload})
}

func (p *capturePublisher) countByType(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

type scoringFixture struct {
	svc       *ScoringService
	publisher *capturePublisher
	matchRepo *memory.MatchRepository
	matchID   string
}

func newScoringFixture(t *testing.T, maxOvers int) *scoringFixture {
	t.Helper()

	players := []player.Player{
		{ID: "bat-1", Name: "Bat One", Category: player.CategoryGold, Status: player.StatusSold},
		{ID: "bat-2", Name: "Bat Two", Category: player.CategoryGold, Status: player.StatusSold},
		{ID: "bat-3", Name: "Bat Three", Category: player.CategorySilver, Status: player.StatusSold},
		{ID: "bowl-1", Name: "Bowl One", Category: player.CategoryGold, Status: player.StatusSold},
		{ID: "bowl-2", Name: "Bowl Two", Category: player.CategorySilver, Status: player.StatusSold},
	}

	publisher := &capturePublisher{}
	matchRepo := memory.NewMatchRepository()
	f := &scoringFixture{
		publisher: publisher,
		matchRepo: matchRepo,
		matchID:   "match-1",
	}
	if err := matchRepo.Insert(context.Background(), match.Match{
		ID:       f.matchID,
		TeamAID:  "own-a",
		TeamBID:  "own-b",
		MaxOvers: maxOvers,
		Status:   match.StatusScheduled,
	}); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	f.svc = NewScoringService(
		matchRepo,
		memory.NewInningsRepository(),
		memory.NewDeliveryRepository(),
		memory.NewPlayerRepository(players),
		id.NewRandomGenerator(),
		publisher,
		nil,
	)
	return f
}

// startInnings opens an innings and puts bat-1 on strike with bat-2 at the
// other end and bowl-1 bowling.
func (f *scoringFixture) startInnings(t *testing.T, battingTeamID string) innings.Innings {
	t.Helper()
	ctx := adminContext()

	in, err := f.svc.StartInnings(ctx, f.matchID, battingTeamID)
	if err != nil {
		t.Fatalf("StartInnings: %v", err)
	}
	if err := f.svc.SelectStriker(ctx, in.ID, "bat-1"); err != nil {
		t.Fatalf("SelectStriker: %v", err)
	}
	if err := f.svc.SelectNonStriker(ctx, in.ID, "bat-2"); err != nil {
		t.Fatalf("SelectNonStriker: %v", err)
	}
	if err := f.svc.SelectBowler(ctx, in.ID, "bowl-1"); err != nil {
		t.Fatalf("SelectBowler: %v", err)
	}
	return in
}

func (f *scoringFixture) record(t *testing.T, inningsID string, input RecordBallInput) delivery.Ball {
	t.Helper()
	ball, err := f.svc.RecordBall(adminContext(), inningsID, input)
	if err != nil {
		t.Fatalf("RecordBall(%+v): %v", input, err)
	}
	return ball
}

func (f *scoringFixture) crease(t *testing.T, inningsID string) CreaseSnapshot {
	t.Helper()
	snap, err := f.svc.Crease(adminContext(), inningsID)
	if err != nil {
		t.Fatalf("Crease: %v", err)
	}
	return snap
}

func TestRecordBall_RequiresStrikerAndBowler(t *testing.T) {
	f := newScoringFixture(t, 20)
	ctx := adminContext()

	in, err := f.svc.StartInnings(ctx, f.matchID, "own-a")
	if err != nil {
		t.Fatalf("StartInnings: %v", err)
	}
	if _, err := f.svc.RecordBall(ctx, in.ID, RecordBallInput{Runs: 1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("record without selections returned %v, want ErrInvalidInput", err)
	}
}

func TestRecordBall_OddRunSwapsStrike(t *testing.T) {
	f := newScoringFixture(t, 20)
	in := f.startInnings(t, "own-a")

	f.record(t, in.ID, RecordBallInput{Runs: 1})

	snap := f.crease(t, in.ID)
	if snap.StrikerID != "bat-2" || snap.NonStrikerID != "bat-1" {
		t.Fatalf("crease after single = %s/%s, want bat-2/bat-1", snap.StrikerID, snap.NonStrikerID)
	}
}

func TestRecordBall_OddRunOnWideStillSwaps(t *testing.T) {
	f := newScoringFixture(t, 20)
	in := f.startInnings(t, "own-a")

	f.record(t, in.ID, RecordBallInput{Runs: 1, ExtraType: delivery.ExtraWide, ExtraRuns: 1})

	snap := f.crease(t, in.ID)
	if snap.StrikerID != "bat-2" {
		t.Fatalf("striker after odd-run wide = %s, want bat-2", snap.StrikerID)
	}
}

func TestRecordBall_OverCompletion(t *testing.T) {
	f := newScoringFixture(t, 20)
	in := f.startInnings(t, "own-a")

	for i := 0; i < 5; i++ {
		f.record(t, in.ID, RecordBallInput{Runs: 0})
	}
	f.record(t, in.ID, RecordBallInput{Runs: 2})

	snap := f.crease(t, in.ID)
	// even-run completing ball: single end-of-over swap
	if snap.StrikerID != "bat-2" || snap.NonStrikerID != "bat-1" {
		t.Fatalf("crease after over = %s/%s, want bat-2/bat-1", snap.StrikerID, snap.NonStrikerID)
	}
	if snap.BowlerID != "" {
		t.Fatalf("bowler not cleared at end of over: %s", snap.BowlerID)
	}
	if snap.PreviousOverBowlerID != "bowl-1" {
		t.Fatalf("previous over bowler = %s, want bowl-1", snap.PreviousOverBowlerID)
	}

	// the outgoing bowler is locked out of the next over
	if err := f.svc.SelectBowler(adminContext(), in.ID, "bowl-1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("reselecting previous bowler returned %v, want ErrInvalidInput", err)
	}
	if err := f.svc.SelectBowler(adminContext(), in.ID, "bowl-2"); err != nil {
		t.Fatalf("selecting fresh bowler: %v", err)
	}
}

func TestRecordBall_OddRunOverCompletionCancelsOut(t *testing.T) {
	f := newScoringFixture(t, 20)
	in := f.startInnings(t, "own-a")

	for i := 0; i < 5; i++ {
		f.record(t, in.ID, RecordBallInput{Runs: 0})
	}
	f.record(t, in.ID, RecordBallInput{Runs: 1})

	snap := f.crease(t, in.ID)
	// odd-run swap plus end-of-over swap leaves the pair unchanged
	if snap.StrikerID != "bat-1" || snap.NonStrikerID != "bat-2" {
		t.Fatalf("crease after odd-run over ball = %s/%s, want bat-1/bat-2", snap.StrikerID, snap.NonStrikerID)
	}
}

func TestRecordBall_WideDoesNotAdvanceOver(t *testing.T) {
	f := newScoringFixture(t, 20)
	in := f.startInnings(t, "own-a")

	for i := 0; i < 5; i++ {
		f.record(t, in.ID, RecordBallInput{Runs: 0})
	}
	wide := f.record(t, in.ID, RecordBallInput{Runs: 0, ExtraType: delivery.ExtraWide, ExtraRuns: 1})
	if wide.OverNumber != 0 || wide.BallNumber != 5 {
		t.Fatalf("wide numbered over %d ball %d, want over 0 ball 5", wide.OverNumber, wide.BallNumber)
	}

	snap := f.crease(t, in.ID)
	if snap.BowlerID != "bowl-1" {
		t.Fatalf("bowler changed on a wide: %q", snap.BowlerID)
	}
}

func TestRecordBall_Wicket(t *testing.T) {
	f := newScoringFixture(t, 20)
	in := f.startInnings(t, "own-a")

	f.record(t, in.ID, RecordBallInput{Runs: 0, IsWicket: true, WicketType: delivery.WicketBowled})

	snap := f.crease(t, in.ID)
	if snap.StrikerID != "" {
		t.Fatalf("striker not cleared after wicket: %s", snap.StrikerID)
	}
	if len(snap.Dismissed) != 1 || snap.Dismissed[0] != "bat-1" {
		t.Fatalf("dismissed = %v, want [bat-1]", snap.Dismissed)
	}

	// dismissed batsman cannot come back
	if err := f.svc.SelectStriker(adminContext(), in.ID, "bat-1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("selecting dismissed batsman returned %v, want ErrInvalidInput", err)
	}

	card, err := f.svc.Scorecard(context.Background(), in.ID)
	if err != nil {
		t.Fatalf("Scorecard: %v", err)
	}
	if card.Innings.Wickets != 1 {
		t.Fatalf("wickets = %d, want 1", card.Innings.Wickets)
	}
}

func TestUndoLastBall_AsymmetricReversal(t *testing.T) {
	f := newScoringFixture(t, 20)
	in := f.startInnings(t, "own-a")

	f.record(t, in.ID, RecordBallInput{Runs: 4})
	f.record(t, in.ID, RecordBallInput{Runs: 1})

	undone, err := f.svc.UndoLastBall(adminContext(), in.ID)
	if err != nil {
		t.Fatalf("UndoLastBall: %v", err)
	}
	if undone.RunsScored != 1 {
		t.Fatalf("undone ball runs = %d, want 1", undone.RunsScored)
	}

	card, err := f.svc.Scorecard(context.Background(), in.ID)
	if err != nil {
		t.Fatalf("Scorecard: %v", err)
	}
	if card.Innings.TotalRuns != 4 || card.Innings.LegalBalls != 1 {
		t.Fatalf("aggregate after undo = %d runs / %d legal, want 4/1", card.Innings.TotalRuns, card.Innings.LegalBalls)
	}

	// strike rotation from the undone single is deliberately not reversed
	snap := f.crease(t, in.ID)
	if snap.StrikerID != "bat-2" {
		t.Fatalf("striker after undo = %s, want bat-2 (rotation kept)", snap.StrikerID)
	}
}

func TestMilestoneFiresOnce(t *testing.T) {
	f := newScoringFixture(t, 20)
	in := f.startInnings(t, "own-a")
	ctx := adminContext()

	// bat-1 keeps the strike by ending each over with an odd run: five
	// fours and a five per over, 25 an over, reaching 50 on ball twelve
	for over := 0; over < 2; over++ {
		for i := 0; i < 5; i++ {
			f.record(t, in.ID, RecordBallInput{Runs: 4})
		}
		f.record(t, in.ID, RecordBallInput{Runs: 5})
		if over == 0 {
			if err := f.svc.SelectBowler(ctx, in.ID, "bowl-2"); err != nil {
				t.Fatalf("SelectBowler: %v", err)
			}
		}
	}

	if got := f.publisher.countByType(EventMilestone); got != 1 {
		t.Fatalf("milestone events = %d, want 1", got)
	}

	// undo drops bat-1 back to 45 but does not reset the milestone flag;
	// re-crossing 50 must not fire a second event
	if _, err := f.svc.UndoLastBall(ctx, in.ID); err != nil {
		t.Fatalf("UndoLastBall: %v", err)
	}
	if err := f.svc.SelectBowler(ctx, in.ID, "bowl-1"); err != nil {
		t.Fatalf("SelectBowler after undo: %v", err)
	}
	f.record(t, in.ID, RecordBallInput{Runs: 5})

	if got := f.publisher.countByType(EventMilestone); got != 1 {
		t.Fatalf("milestone events after undo and re-record = %d, want still 1", got)
	}
}

func TestSecondInningsChase(t *testing.T) {
	f := newScoringFixture(t, 20)
	ctx := adminContext()

	first := f.startInnings(t, "own-a")
	for _, runs := range []int{1, 0, 4, 0, 2, 6} {
		f.record(t, first.ID, RecordBallInput{Runs: runs})
	}
	if _, err := f.svc.EndInnings(ctx, first.ID); err != nil {
		t.Fatalf("EndInnings: %v", err)
	}

	second, err := f.svc.StartInnings(ctx, f.matchID, "own-b")
	if err != nil {
		t.Fatalf("start second innings: %v", err)
	}
	if second.Number != 2 || second.Target != 14 {
		t.Fatalf("second innings number/target = %d/%d, want 2/14", second.Number, second.Target)
	}

	if err := f.svc.SelectStriker(ctx, second.ID, "bat-3"); err != nil {
		t.Fatalf("SelectStriker: %v", err)
	}
	if err := f.svc.SelectNonStriker(ctx, second.ID, "bat-2"); err != nil {
		t.Fatalf("SelectNonStriker: %v", err)
	}
	if err := f.svc.SelectBowler(ctx, second.ID, "bowl-2"); err != nil {
		t.Fatalf("SelectBowler: %v", err)
	}
	for i := 0; i < 6; i++ {
		f.record(t, second.ID, RecordBallInput{Runs: 1})
	}

	card, err := f.svc.Scorecard(context.Background(), second.ID)
	if err != nil {
		t.Fatalf("Scorecard: %v", err)
	}
	// 8 needed off 19 overs
	want := float64(14-6) / 19.0
	if diff := card.RequiredRunRate - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("required run rate = %v, want %v", card.RequiredRunRate, want)
	}
	if card.CurrentRunRate != 6 {
		t.Fatalf("current run rate = %v, want 6", card.CurrentRunRate)
	}
}

func TestEndToEndFirstOver(t *testing.T) {
	f := newScoringFixture(t, 20)
	in := f.startInnings(t, "own-a")

	for _, runs := range []int{1, 0, 4, 0, 2, 6} {
		f.record(t, in.ID, RecordBallInput{Runs: runs})
	}

	card, err := f.svc.Scorecard(context.Background(), in.ID)
	if err != nil {
		t.Fatalf("Scorecard: %v", err)
	}
	if card.Innings.TotalRuns != 13 || card.Innings.Wickets != 0 {
		t.Fatalf("aggregate = %d/%d, want 13/0", card.Innings.TotalRuns, card.Innings.Wickets)
	}
	if card.Overs != 1.0 {
		t.Fatalf("overs = %v, want 1.0", card.Overs)
	}

	var bowler BowlerLine
	for _, line := range card.Bowlers {
		if line.PlayerID == "bowl-1" {
			bowler = line
		}
	}
	if bowler.LegalBalls != 6 || bowler.Overs != 1.0 || bowler.RunsConceded != 13 {
		t.Fatalf("bowler line = %+v, want 6 legal / 1.0 overs / 13 conceded", bowler)
	}

	// net effect of the over: one swap from the single, two cancelling
	// swaps on the last ball's even run plus over completion
	snap := f.crease(t, in.ID)
	if snap.StrikerID != "bat-1" || snap.NonStrikerID != "bat-2" {
		t.Fatalf("crease after over = %s/%s, want bat-1/bat-2", snap.StrikerID, snap.NonStrikerID)
	}
}

func TestRetireHurtAndReturn(t *testing.T) {
	f := newScoringFixture(t, 20)
	in := f.startInnings(t, "own-a")
	ctx := adminContext()

	if err := f.svc.RetireHurt(ctx, in.ID, "bat-1"); err != nil {
		t.Fatalf("RetireHurt: %v", err)
	}
	snap := f.crease(t, in.ID)
	if snap.StrikerID != "" || len(snap.Retired) != 1 {
		t.Fatalf("crease after retire = %+v", snap)
	}

	// retired player is not dismissed and may return to the vacant end
	if err := f.svc.ReturnFromRetiredHurt(ctx, in.ID, "bat-1"); err != nil {
		t.Fatalf("ReturnFromRetiredHurt: %v", err)
	}
	snap = f.crease(t, in.ID)
	if snap.StrikerID != "bat-1" || len(snap.Retired) != 0 {
		t.Fatalf("crease after return = %+v", snap)
	}
}

func TestEndInningsBlocksRecording(t *testing.T) {
	f := newScoringFixture(t, 20)
	in := f.startInnings(t, "own-a")
	ctx := adminContext()

	if _, err := f.svc.EndInnings(ctx, in.ID); err != nil {
		t.Fatalf("EndInnings: %v", err)
	}
	if _, err := f.svc.RecordBall(ctx, in.ID, RecordBallInput{Runs: 1}); !errors.Is(err, ErrConflict) {
		t.Fatalf("record on completed innings returned %v, want ErrConflict", err)
	}
}

func TestCompleteMatch(t *testing.T) {
	f := newScoringFixture(t, 20)
	ctx := adminContext()

	first := f.startInnings(t, "own-a")
	f.record(t, first.ID, RecordBallInput{Runs: 4})
	if _, err := f.svc.EndInnings(ctx, first.ID); err != nil {
		t.Fatalf("end first innings: %v", err)
	}

	if _, err := f.svc.CompleteMatch(ctx, f.matchID, "own-a", ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("complete with one innings returned %v, want ErrConflict", err)
	}

	second, err := f.svc.StartInnings(ctx, f.matchID, "own-b")
	if err != nil {
		t.Fatalf("start second innings: %v", err)
	}
	if err := f.svc.SelectStriker(ctx, second.ID, "bat-3"); err != nil {
		t.Fatalf("SelectStriker: %v", err)
	}
	if err := f.svc.SelectNonStriker(ctx, second.ID, "bat-2"); err != nil {
		t.Fatalf("SelectNonStriker: %v", err)
	}
	if err := f.svc.SelectBowler(ctx, second.ID, "bowl-1"); err != nil {
		t.Fatalf("SelectBowler: %v", err)
	}
	f.record(t, second.ID, RecordBallInput{Runs: 6})
	if _, err := f.svc.EndInnings(ctx, second.ID); err != nil {
		t.Fatalf("end second innings: %v", err)
	}

	m, err := f.svc.CompleteMatch(ctx, f.matchID, "own-b", "Beta won by 10 wickets")
	if err != nil {
		t.Fatalf("CompleteMatch: %v", err)
	}
	if m.Status != match.StatusCompleted || m.WinnerID != "own-b" {
		t.Fatalf("unexpected match after completion: %+v", m)
	}
}

func TestQuickScore(t *testing.T) {
	f := newScoringFixture(t, 20)
	ctx := adminContext()

	m, err := f.svc.QuickScore(ctx, f.matchID,
		QuickScoreInput{BattingTeamID: "own-a", TotalRuns: 161, Wickets: 6, Extras: 9, Overs: 20.0},
		QuickScoreInput{BattingTeamID: "own-b", TotalRuns: 158, Wickets: 8, Extras: 12, Overs: 20.0},
		"own-a", "Alpha won by 3 runs")
	if err != nil {
		t.Fatalf("QuickScore: %v", err)
	}
	if m.Status != match.StatusCompleted || m.WinnerID != "own-a" {
		t.Fatalf("unexpected match after quick score: %+v", m)
	}

	list, err := f.svc.inningsRepo.ListByMatch(context.Background(), f.matchID)
	if err != nil {
		t.Fatalf("list innings: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("%d innings written, want 2", len(list))
	}
	for _, in := range list {
		if in.Status != innings.StatusCompleted {
			t.Fatalf("innings %d not completed", in.Number)
		}
		if in.LegalBalls != 120 {
			t.Fatalf("innings %d legal balls = %d, want 120", in.Number, in.LegalBalls)
		}
	}
	second := list[1]
	if second.Target != 162 {
		t.Fatalf("second innings target = %d, want 162", second.Target)
	}
}
