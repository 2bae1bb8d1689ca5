package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/delivery"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/innings"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/match"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/player"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/user"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/id"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/logging"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/resilience"
)

// milestoneThresholds are the one-shot batting notifications per innings.
var milestoneThresholds = []int{50, 100}

// creaseState is the in-process scoring sub-state for one innings: who is
// at the crease, who bowls, who may not bowl the next over, and which
// milestones already fired. It is not persisted; the ledger remains the
// only durable record and the admin reselects batsmen after a restart.
type creaseState struct {
	strikerID            string
	nonStrikerID         string
	bowlerID             string
	previousOverBowlerID string
	dismissed            map[string]struct{}
	retired              map[string]struct{}
	milestonesFired      map[string]map[int]struct{}
}

func newCreaseState() *creaseState {
	return &creaseState{
		dismissed:       make(map[string]struct{}),
		retired:         make(map[string]struct{}),
		milestonesFired: make(map[string]map[int]struct{}),
	}
}

func (c *creaseState) isDismissed(playerID string) bool {
	_, ok := c.dismissed[playerID]
	return ok
}

func (c *creaseState) isRetired(playerID string) bool {
	_, ok := c.retired[playerID]
	return ok
}

// markMilestone records that threshold fired for the player; reports false
// when it had fired before.
func (c *creaseState) markMilestone(playerID string, threshold int) bool {
	fired, ok := c.milestonesFired[playerID]
	if !ok {
		fired = make(map[int]struct{})
		c.milestonesFired[playerID] = fired
	}
	if _, done := fired[threshold]; done {
		return false
	}
	fired[threshold] = struct{}{}
	return true
}

func (c *creaseState) swapStrike() {
	c.strikerID, c.nonStrikerID = c.nonStrikerID, c.strikerID
}

// ScoringService owns the ball-by-ball state machine: it validates each
// delivery against the crease state, appends it to the immutable ledger,
// updates the innings aggregate additively, and applies strike rotation
// and the end-of-over bowler change afterward. Derived figures always fold
// from the ledger, never from the crease state.
type ScoringService struct {
	matchRepo    match.Repository
	inningsRepo  innings.Repository
	deliveryRepo delivery.Repository
	playerRepo   player.Repository
	idGen        id.Generator
	publisher    Publisher
	logger       *logging.Logger
	now          func() time.Time

	mu     sync.Mutex
	crease map[string]*creaseState

	scorecardFlight resilience.SingleFlight
}

type RecordBallInput struct {
	Runs       int
	ExtraType  delivery.ExtraType
	ExtraRuns  int
	IsWicket   bool
	WicketType delivery.WicketType
	FielderID  string
}

type CreaseSnapshot struct {
	StrikerID            string
	NonStrikerID         string
	BowlerID             string
	PreviousOverBowlerID string
	Dismissed            []string
	Retired              []string
}

type BatsmanLine struct {
	PlayerID string
	delivery.BatsmanFigures
}

type BowlerLine struct {
	PlayerID string
	delivery.BowlerFigures
}

type Scorecard struct {
	Innings         innings.Innings
	Overs           float64
	CurrentRunRate  float64
	RequiredRunRate float64
	Target          int
	Batsmen         []BatsmanLine
	Bowlers         []BowlerLine
	CurrentOver     []delivery.Ball
}

type MilestoneEvent struct {
	InningsID string
	PlayerID  string
	Threshold int
	Runs      int
}

func NewScoringService(
	matchRepo match.Repository,
	inningsRepo innings.Repository,
	deliveryRepo delivery.Repository,
	playerRepo player.Repository,
	idGen id.Generator,
	publisher Publisher,
	logger *logging.Logger,
) *ScoringService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		matchRepo:    matchRepo,
		inningsRepo:  inningsRepo,
		deliveryRepo: deliveryRepo,
		playerRepo:   playerRepo,
		idGen:        idGen,
		publisher:    publisher,
		logger:       logger,
		now:          time.Now,
		crease:       make(map[string]*creaseState),
	}
}

// SetPublisher swaps the event publisher in after construction.
func (s *ScoringService) SetPublisher(p Publisher) {
	if p == nil {
		p = NopPublisher{}
	}
	s.publisher = p
}

func (s *ScoringService) requireAdmin(ctx context.Context) error {
	principal, ok := user.FromContext(ctx)
	if !ok || !principal.IsAdmin() {
		return fmt.Errorf("%w: scoring requires admin", ErrUnauthorized)
	}
	return nil
}

// StartInnings opens a new innings for the match. The second innings gets
// its chase target from the first innings total plus one.
func (s *ScoringService) StartInnings(ctx context.Context, matchID, battingTeamID string) (innings.Innings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.StartInnings")
	defer span.End()

	if err := s.requireAdmin(ctx); err != nil {
		return innings.Innings{}, err
	}

	matchID = strings.TrimSpace(matchID)
	battingTeamID = strings.TrimSpace(battingTeamID)
	if matchID == "" || battingTeamID == "" {
		return innings.Innings{}, fmt.Errorf("%w: match id and batting team id are required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return innings.Innings{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return innings.Innings{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if m.Status == match.StatusCompleted {
		return innings.Innings{}, fmt.Errorf("%w: match %s is completed", ErrConflict, matchID)
	}
	if battingTeamID != m.TeamAID && battingTeamID != m.TeamBID {
		return innings.Innings{}, fmt.Errorf("%w: team %s is not playing match %s", ErrInvalidInput, battingTeamID, matchID)
	}

	existing, err := s.inningsRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return innings.Innings{}, fmt.Errorf("list innings: %w", err)
	}
	if len(existing) >= 2 {
		return innings.Innings{}, fmt.Errorf("%w: match %s already has two innings", ErrConflict, matchID)
	}
	for _, in := range existing {
		if in.Status == innings.StatusInProgress {
			return innings.Innings{}, fmt.Errorf("%w: innings %s is still in progress", ErrConflict, in.ID)
		}
	}

	target := 0
	if len(existing) == 1 {
		target = existing[0].TotalRuns + 1
	}

	bowlingTeamID := m.TeamAID
	if battingTeamID == m.TeamAID {
		bowlingTeamID = m.TeamBID
	}

	inningsID, err := s.idGen.NewID()
	if err != nil {
		return innings.Innings{}, fmt.Errorf("generate innings id: %w", err)
	}
	in := innings.Innings{
		ID:            inningsID,
		MatchID:       matchID,
		Number:        len(existing) + 1,
		BattingTeamID: battingTeamID,
		BowlingTeamID: bowlingTeamID,
		Target:        target,
		Status:        innings.StatusInProgress,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.inningsRepo.Insert(ctx, in); err != nil {
		return innings.Innings{}, fmt.Errorf("insert innings: %w", err)
	}

	if m.Status == match.StatusScheduled {
		now := s.now().UTC()
		m.Status = match.StatusLive
		m.StartedAt = &now
		if err := s.matchRepo.Update(ctx, m); err != nil {
			return innings.Innings{}, fmt.Errorf("mark match live: %w", err)
		}
	}

	s.mu.Lock()
	s.crease[in.ID] = newCreaseState()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "innings started",
		"matchId", matchID,
		"inningsId", in.ID,
		"number", in.Number,
		"target", target,
	)
	s.publisher.Publish(EventInningsStarted, in)

	return in, nil
}

// SelectStriker puts a batsman on strike. Dismissed and retired players
// cannot return through this path.
func (s *ScoringService) SelectStriker(ctx context.Context, inningsID, playerID string) error {
	return s.selectBatsman(ctx, inningsID, playerID, true)
}

// SelectNonStriker fills the non-striker end.
func (s *ScoringService) SelectNonStriker(ctx context.Context, inningsID, playerID string) error {
	return s.selectBatsman(ctx, inningsID, playerID, false)
}

func (s *ScoringService) selectBatsman(ctx context.Context, inningsID, playerID string, striker bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.SelectBatsman")
	defer span.End()

	if err := s.requireAdmin(ctx); err != nil {
		return err
	}

	c, _, err := s.liveCrease(ctx, inningsID)
	if err != nil {
		return err
	}
	if _, exists, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return fmt.Errorf("get player: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c.isDismissed(playerID) {
		return fmt.Errorf("%w: player %s is dismissed", ErrInvalidInput, playerID)
	}
	if c.isRetired(playerID) {
		return fmt.Errorf("%w: player %s is retired hurt", ErrInvalidInput, playerID)
	}
	if striker {
		if playerID == c.nonStrikerID {
			return fmt.Errorf("%w: player %s is already at the non-striker end", ErrInvalidInput, playerID)
		}
		c.strikerID = playerID
	} else {
		if playerID == c.strikerID {
			return fmt.Errorf("%w: player %s is already on strike", ErrInvalidInput, playerID)
		}
		c.nonStrikerID = playerID
	}
	return nil
}

// SelectBowler sets the bowler for the coming over. The bowler who finished
// the previous over is locked out until another over completes.
func (s *ScoringService) SelectBowler(ctx context.Context, inningsID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.SelectBowler")
	defer span.End()

	if err := s.requireAdmin(ctx); err != nil {
		return err
	}

	c, _, err := s.liveCrease(ctx, inningsID)
	if err != nil {
		return err
	}
	if _, exists, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		return fmt.Errorf("get player: %w", err)
	} else if !exists {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if playerID == c.previousOverBowlerID {
		return fmt.Errorf("%w: %s bowled the previous over", ErrInvalidInput, playerID)
	}
	c.bowlerID = playerID
	return nil
}

// RecordBall validates, appends, and applies one delivery. The ledger write
// and the aggregate update happen before any crease mutation, so a failed
// write leaves the ball form untouched.
func (s *ScoringService) RecordBall(ctx context.Context, inningsID string, input RecordBallInput) (delivery.Ball, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecordBall")
	defer span.End()

	if err := s.requireAdmin(ctx); err != nil {
		return delivery.Ball{}, err
	}
	if err := validateRecordBallInput(input); err != nil {
		return delivery.Ball{}, err
	}

	c, in, err := s.liveCrease(ctx, inningsID)
	if err != nil {
		return delivery.Ball{}, err
	}

	s.mu.Lock()
	strikerID := c.strikerID
	bowlerID := c.bowlerID
	s.mu.Unlock()

	if strikerID == "" || bowlerID == "" {
		return delivery.Ball{}, fmt.Errorf("%w: striker and bowler must be selected", ErrInvalidInput)
	}

	balls, err := s.deliveryRepo.ListByInnings(ctx, inningsID)
	if err != nil {
		return delivery.Ball{}, fmt.Errorf("list balls: %w", err)
	}

	priorLegal := delivery.LegalCount(balls)
	legal := input.ExtraType != delivery.ExtraWide && input.ExtraType != delivery.ExtraNoBall
	overNumber, ballNumber := delivery.Numbering(priorLegal, legal)

	ballID, err := s.idGen.NewID()
	if err != nil {
		return delivery.Ball{}, fmt.Errorf("generate ball id: %w", err)
	}
	ball := delivery.Ball{
		ID:         ballID,
		InningsID:  inningsID,
		Sequence:   len(balls) + 1,
		OverNumber: overNumber,
		BallNumber: ballNumber,
		BatsmanID:  strikerID,
		BowlerID:   bowlerID,
		RunsScored: input.Runs,
		ExtraType:  input.ExtraType,
		ExtraRuns:  input.ExtraRuns,
		IsWicket:   input.IsWicket,
		WicketType: input.WicketType,
		FielderID:  strings.TrimSpace(input.FielderID),
		RecordedAt: s.now().UTC(),
	}
	if err := s.deliveryRepo.Append(ctx, ball); err != nil {
		return delivery.Ball{}, fmt.Errorf("append ball: %w", err)
	}

	in.TotalRuns += ball.TotalRuns()
	in.Extras += ball.ExtraRuns
	if ball.IsWicket {
		in.Wickets++
	}
	if legal {
		in.LegalBalls++
	}
	if err := s.inningsRepo.Update(ctx, in); err != nil {
		return delivery.Ball{}, fmt.Errorf("update innings aggregate: %w", err)
	}

	s.applyRotation(c, ball, priorLegal)
	s.fireMilestones(ctx, inningsID, c, append(balls, ball), strikerID)

	s.logger.InfoContext(ctx, "ball recorded",
		"inningsId", inningsID,
		"over", overNumber,
		"ball", ballNumber,
		"runs", input.Runs,
		"extraType", string(input.ExtraType),
		"wicket", input.IsWicket,
	)
	s.publisher.Publish(EventBallRecorded, ball)

	return ball, nil
}

func validateRecordBallInput(input RecordBallInput) error {
	if input.Runs < 0 || input.Runs > 6 {
		return fmt.Errorf("%w: runs must be between 0 and 6", ErrInvalidInput)
	}
	if input.ExtraType != delivery.ExtraNone {
		if _, ok := delivery.AllExtraTypes[input.ExtraType]; !ok {
			return fmt.Errorf("%w: unknown extra type %q", ErrInvalidInput, input.ExtraType)
		}
		if input.ExtraRuns <= 0 {
			return fmt.Errorf("%w: extra runs are required for %s", ErrInvalidInput, input.ExtraType)
		}
	} else if input.ExtraRuns != 0 {
		return fmt.Errorf("%w: extra runs without an extra type", ErrInvalidInput)
	}
	if input.IsWicket {
		if _, ok := delivery.AllWicketTypes[input.WicketType]; !ok {
			return fmt.Errorf("%w: unknown wicket type %q", ErrInvalidInput, input.WicketType)
		}
	} else if input.WicketType != "" {
		return fmt.Errorf("%w: wicket type without a wicket", ErrInvalidInput)
	}
	return nil
}

// applyRotation runs the post-persist crease mutations: odd-run strike
// swap, end-of-over swap plus mandatory bowler change, and wicket
// handling. An odd-run over-completing ball swaps twice, leaving the pair
// unchanged.
func (s *ScoringService) applyRotation(c *creaseState, ball delivery.Ball, priorLegal int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ball.RunsScored%2 == 1 {
		c.swapStrike()
	}

	if ball.IsLegal() && (priorLegal+1)%6 == 0 {
		c.swapStrike()
		c.previousOverBowlerID = c.bowlerID
		c.bowlerID = ""
	}

	if ball.IsWicket {
		c.dismissed[ball.BatsmanID] = struct{}{}
		if c.strikerID == ball.BatsmanID {
			c.strikerID = ""
		} else if c.nonStrikerID == ball.BatsmanID {
			c.nonStrikerID = ""
		}
	}
}

func (s *ScoringService) fireMilestones(ctx context.Context, inningsID string, c *creaseState, balls []delivery.Ball, strikerID string) {
	figures := delivery.BatsmanFor(balls, strikerID)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, threshold := range milestoneThresholds {
		if figures.Runs < threshold {
			continue
		}
		if !c.markMilestone(strikerID, threshold) {
			continue
		}
		s.logger.InfoContext(ctx, "batting milestone",
			"inningsId", inningsID,
			"playerId", strikerID,
			"threshold", threshold,
			"runs", figures.Runs,
		)
		s.publisher.Publish(EventMilestone, MilestoneEvent{
			InningsID: inningsID,
			PlayerID:  strikerID,
			Threshold: threshold,
			Runs:      figures.Runs,
		})
	}
}

// UndoLastBall deletes the most recent delivery and subtracts its
// contribution from the innings aggregate. Strike rotation, the bowler
// lock, and milestone flags are deliberately left as they are.
func (s *ScoringService) UndoLastBall(ctx context.Context, inningsID string) (delivery.Ball, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.UndoLastBall")
	defer span.End()

	if err := s.requireAdmin(ctx); err != nil {
		return delivery.Ball{}, err
	}

	_, in, err := s.liveCrease(ctx, inningsID)
	if err != nil {
		return delivery.Ball{}, err
	}

	last, exists, err := s.deliveryRepo.Last(ctx, inningsID)
	if err != nil {
		return delivery.Ball{}, fmt.Errorf("get last ball: %w", err)
	}
	if !exists {
		return delivery.Ball{}, fmt.Errorf("%w: no balls recorded for innings %s", ErrNotFound, inningsID)
	}

	if err := s.deliveryRepo.Delete(ctx, last.ID); err != nil {
		return delivery.Ball{}, fmt.Errorf("delete last ball: %w", err)
	}

	in.TotalRuns -= last.TotalRuns()
	in.Extras -= last.ExtraRuns
	if last.IsWicket {
		in.Wickets--
	}
	if last.IsLegal() {
		in.LegalBalls--
	}
	if err := s.inningsRepo.Update(ctx, in); err != nil {
		return delivery.Ball{}, fmt.Errorf("update innings aggregate: %w", err)
	}

	s.logger.InfoContext(ctx, "ball undone", "inningsId", inningsID, "ballId", last.ID)
	s.publisher.Publish(EventBallUndone, last)

	return last, nil
}

// RetireHurt moves a batsman to the retired pool without a dismissal.
func (s *ScoringService) RetireHurt(ctx context.Context, inningsID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RetireHurt")
	defer span.End()

	if err := s.requireAdmin(ctx); err != nil {
		return err
	}

	c, _, err := s.liveCrease(ctx, inningsID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if playerID != c.strikerID && playerID != c.nonStrikerID {
		return fmt.Errorf("%w: player %s is not at the crease", ErrInvalidInput, playerID)
	}
	c.retired[playerID] = struct{}{}
	if c.strikerID == playerID {
		c.strikerID = ""
	} else {
		c.nonStrikerID = ""
	}
	return nil
}

// ReturnFromRetiredHurt brings a retired batsman back, filling whichever
// end is vacant.
func (s *ScoringService) ReturnFromRetiredHurt(ctx context.Context, inningsID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ReturnFromRetiredHurt")
	defer span.End()

	if err := s.requireAdmin(ctx); err != nil {
		return err
	}

	c, _, err := s.liveCrease(ctx, inningsID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !c.isRetired(playerID) {
		return fmt.Errorf("%w: player %s is not retired hurt", ErrInvalidInput, playerID)
	}
	switch {
	case c.strikerID == "":
		c.strikerID = playerID
	case c.nonStrikerID == "":
		c.nonStrikerID = playerID
	default:
		return fmt.Errorf("%w: both crease ends are occupied", ErrConflict)
	}
	delete(c.retired, playerID)
	return nil
}

// Crease reports the in-process scoring sub-state for display.
func (s *ScoringService) Crease(ctx context.Context, inningsID string) (CreaseSnapshot, error) {
	_, span := startUsecaseSpan(ctx, "usecase.ScoringService.Crease")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.crease[inningsID]
	if !ok {
		return CreaseSnapshot{}, fmt.Errorf("%w: no crease state for innings %s", ErrNotFound, inningsID)
	}

	snap := CreaseSnapshot{
		StrikerID:            c.strikerID,
		NonStrikerID:         c.nonStrikerID,
		BowlerID:             c.bowlerID,
		PreviousOverBowlerID: c.previousOverBowlerID,
	}
	for id := range c.dismissed {
		snap.Dismissed = append(snap.Dismissed, id)
	}
	for id := range c.retired {
		snap.Retired = append(snap.Retired, id)
	}
	return snap, nil
}

// EndInnings closes the innings; no further deliveries are accepted.
func (s *ScoringService) EndInnings(ctx context.Context, inningsID string) (innings.Innings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.EndInnings")
	defer span.End()

	if err := s.requireAdmin(ctx); err != nil {
		return innings.Innings{}, err
	}

	in, exists, err := s.inningsRepo.GetByID(ctx, inningsID)
	if err != nil {
		return innings.Innings{}, fmt.Errorf("get innings: %w", err)
	}
	if !exists {
		return innings.Innings{}, fmt.Errorf("%w: innings=%s", ErrNotFound, inningsID)
	}
	if in.Status == innings.StatusCompleted {
		return innings.Innings{}, fmt.Errorf("%w: innings %s is already completed", ErrConflict, inningsID)
	}

	in.Status = innings.StatusCompleted
	if err := s.inningsRepo.Update(ctx, in); err != nil {
		return innings.Innings{}, fmt.Errorf("update innings: %w", err)
	}

	s.logger.InfoContext(ctx, "innings ended", "inningsId", inningsID, "totalRuns", in.TotalRuns, "wickets", in.Wickets)
	s.publisher.Publish(EventInningsEnded, in)

	return in, nil
}

// CompleteMatch finishes a match once both innings are done.
func (s *ScoringService) CompleteMatch(ctx context.Context, matchID, winnerID, result string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.CompleteMatch")
	defer span.End()

	if err := s.requireAdmin(ctx); err != nil {
		return match.Match{}, err
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if m.Status == match.StatusCompleted {
		return match.Match{}, fmt.Errorf("%w: match %s is already completed", ErrConflict, matchID)
	}

	list, err := s.inningsRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("list innings: %w", err)
	}
	if len(list) < 2 {
		return match.Match{}, fmt.Errorf("%w: match %s needs two innings before completion", ErrConflict, matchID)
	}
	for _, in := range list {
		if in.Status != innings.StatusCompleted {
			return match.Match{}, fmt.Errorf("%w: innings %s is still in progress", ErrConflict, in.ID)
		}
	}

	winnerID = strings.TrimSpace(winnerID)
	if winnerID != "" && winnerID != m.TeamAID && winnerID != m.TeamBID {
		return match.Match{}, fmt.Errorf("%w: team %s is not playing match %s", ErrInvalidInput, winnerID, matchID)
	}

	now := s.now().UTC()
	m.Status = match.StatusCompleted
	m.WinnerID = winnerID
	m.Result = strings.TrimSpace(result)
	m.EndedAt = &now
	if err := s.matchRepo.Update(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	s.logger.InfoContext(ctx, "match completed", "matchId", matchID, "winnerId", winnerID)
	s.publisher.Publish(EventMatchCompleted, m)

	return m, nil
}

// QuickScoreInput is one innings line entered after the fact. Overs uses
// the display encoding, so 19.4 means 19 overs and 4 balls.
type QuickScoreInput struct {
	BattingTeamID string
	TotalRuns     int
	Wickets       int
	Extras        int
	Overs         float64
}

func legalBallsFromOvers(overs float64) int {
	whole := int(overs)
	partial := int((overs-float64(whole))*10 + 0.5)
	if partial > 5 {
		partial = 5
	}
	return whole*6 + partial
}

// QuickScore writes both innings totals directly, without a ball ledger,
// for matches scored after the fact, and completes the match in one step.
func (s *ScoringService) QuickScore(ctx context.Context, matchID string, first, second QuickScoreInput, winnerID, result string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.QuickScore")
	defer span.End()

	if err := s.requireAdmin(ctx); err != nil {
		return match.Match{}, err
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	for i, entry := range []QuickScoreInput{first, second} {
		if entry.BattingTeamID != m.TeamAID && entry.BattingTeamID != m.TeamBID {
			return match.Match{}, fmt.Errorf("%w: team %s is not playing match %s", ErrInvalidInput, entry.BattingTeamID, matchID)
		}
		if entry.Wickets < 0 || entry.Wickets > 10 {
			return match.Match{}, fmt.Errorf("%w: innings %d wickets out of range", ErrInvalidInput, i+1)
		}
		if entry.TotalRuns < 0 || entry.Extras < 0 || entry.Overs < 0 {
			return match.Match{}, fmt.Errorf("%w: innings %d totals must be non-negative", ErrInvalidInput, i+1)
		}
	}
	if first.BattingTeamID == second.BattingTeamID {
		return match.Match{}, fmt.Errorf("%w: both innings credited to the same team", ErrInvalidInput)
	}

	existing, err := s.inningsRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("list innings: %w", err)
	}
	byNumber := make(map[int]innings.Innings, len(existing))
	for _, in := range existing {
		byNumber[in.Number] = in
	}

	for i, entry := range []QuickScoreInput{first, second} {
		number := i + 1
		bowling := m.TeamAID
		if entry.BattingTeamID == m.TeamAID {
			bowling = m.TeamBID
		}
		target := 0
		if number == 2 {
			target = first.TotalRuns + 1
		}

		in, ok := byNumber[number]
		if !ok {
			inningsID, idErr := s.idGen.NewID()
			if idErr != nil {
				return match.Match{}, fmt.Errorf("generate innings id: %w", idErr)
			}
			in = innings.Innings{
				ID:        inningsID,
				MatchID:   matchID,
				Number:    number,
				CreatedAt: s.now().UTC(),
			}
		}
		in.BattingTeamID = entry.BattingTeamID
		in.BowlingTeamID = bowling
		in.TotalRuns = entry.TotalRuns
		in.Wickets = entry.Wickets
		in.Extras = entry.Extras
		in.LegalBalls = legalBallsFromOvers(entry.Overs)
		in.Target = target
		in.Status = innings.StatusCompleted

		if ok {
			err = s.inningsRepo.Update(ctx, in)
		} else {
			err = s.inningsRepo.Insert(ctx, in)
		}
		if err != nil {
			return match.Match{}, fmt.Errorf("write innings %d: %w", number, err)
		}
	}

	winnerID = strings.TrimSpace(winnerID)
	if winnerID != "" && winnerID != m.TeamAID && winnerID != m.TeamBID {
		return match.Match{}, fmt.Errorf("%w: team %s is not playing match %s", ErrInvalidInput, winnerID, matchID)
	}

	now := s.now().UTC()
	m.Status = match.StatusCompleted
	m.WinnerID = winnerID
	m.Result = strings.TrimSpace(result)
	m.EndedAt = &now
	if err := s.matchRepo.Update(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	s.logger.InfoContext(ctx, "match quick scored", "matchId", matchID, "winnerId", winnerID)
	s.publisher.Publish(EventMatchCompleted, m)

	return m, nil
}

// Scorecard folds every derived figure from the ledger on demand.
// Scorecard recomputes the full derived card from the ledger. Concurrent
// requests for the same innings share one recompute.
func (s *ScoringService) Scorecard(ctx context.Context, inningsID string) (Scorecard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Scorecard")
	defer span.End()

	val, err, _ := s.scorecardFlight.Do(inningsID, func() (any, error) {
		return s.buildScorecard(ctx, inningsID)
	})
	if err != nil {
		return Scorecard{}, err
	}

	return val.(Scorecard), nil
}

func (s *ScoringService) buildScorecard(ctx context.Context, inningsID string) (Scorecard, error) {
	in, exists, err := s.inningsRepo.GetByID(ctx, inningsID)
	if err != nil {
		return Scorecard{}, fmt.Errorf("get innings: %w", err)
	}
	if !exists {
		return Scorecard{}, fmt.Errorf("%w: innings=%s", ErrNotFound, inningsID)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, in.MatchID)
	if err != nil {
		return Scorecard{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return Scorecard{}, fmt.Errorf("%w: match=%s", ErrNotFound, in.MatchID)
	}

	balls, err := s.deliveryRepo.ListByInnings(ctx, inningsID)
	if err != nil {
		return Scorecard{}, fmt.Errorf("list balls: %w", err)
	}

	legal := delivery.LegalCount(balls)
	card := Scorecard{
		Innings:        in,
		Overs:          delivery.Overs(legal),
		CurrentRunRate: delivery.CurrentRunRate(in.TotalRuns, legal),
		Target:         in.Target,
		CurrentOver:    delivery.CurrentOver(balls),
	}
	if in.Number == 2 && in.Target > 0 {
		card.RequiredRunRate = delivery.RequiredRunRate(in.Target, in.TotalRuns, m.MaxOvers, legal)
	}

	var batsmen, bowlers []string
	seenBat := make(map[string]struct{})
	seenBowl := make(map[string]struct{})
	for _, b := range balls {
		if _, ok := seenBat[b.BatsmanID]; !ok {
			seenBat[b.BatsmanID] = struct{}{}
			batsmen = append(batsmen, b.BatsmanID)
		}
		if _, ok := seenBowl[b.BowlerID]; !ok {
			seenBowl[b.BowlerID] = struct{}{}
			bowlers = append(bowlers, b.BowlerID)
		}
	}
	for _, playerID := range batsmen {
		card.Batsmen = append(card.Batsmen, BatsmanLine{
			PlayerID:       playerID,
			BatsmanFigures: delivery.BatsmanFor(balls, playerID),
		})
	}
	for _, playerID := range bowlers {
		card.Bowlers = append(card.Bowlers, BowlerLine{
			PlayerID:      playerID,
			BowlerFigures: delivery.BowlerFor(balls, playerID),
		})
	}

	return card, nil
}

// liveCrease loads the innings, checks it accepts deliveries, and returns
// its crease state, creating one after a restart.
func (s *ScoringService) liveCrease(ctx context.Context, inningsID string) (*creaseState, innings.Innings, error) {
	inningsID = strings.TrimSpace(inningsID)
	if inningsID == "" {
		return nil, innings.Innings{}, fmt.Errorf("%w: innings id is required", ErrInvalidInput)
	}

	in, exists, err := s.inningsRepo.GetByID(ctx, inningsID)
	if err != nil {
		return nil, innings.Innings{}, fmt.Errorf("get innings: %w", err)
	}
	if !exists {
		return nil, innings.Innings{}, fmt.Errorf("%w: innings=%s", ErrNotFound, inningsID)
	}
	if in.Status != innings.StatusInProgress {
		return nil, innings.Innings{}, fmt.Errorf("%w: innings %s is not in progress", ErrConflict, inningsID)
	}

	s.mu.Lock()
	c, ok := s.crease[inningsID]
	if !ok {
		c = newCreaseState()
		s.crease[inningsID] = c
	}
	s.mu.Unlock()

	return c, in, nil
}
