package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/auction"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/bid"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/owner"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/player"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/roster"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/user"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/cache"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/id"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/logging"
)

const defaultTimerSeconds = 60

// ownerCachePrefix scopes every cached owner projection so settlement can
// evict them in one sweep.
const ownerCachePrefix = "owners:"

// Waker nudges the timekeeper after any write that moves the bidding
// deadline.
type Waker interface {
	Wake()
}

// AuctionService drives the start / bid / settle lifecycle of the single
// live auction row. Every state transition goes through a compare-and-swap
// on the row version, so two concurrent observers of an expired timer
// cannot both settle.
type AuctionService struct {
	auctionRepo auction.Repository
	playerRepo  player.Repository
	ownerRepo   owner.Repository
	rosterRepo  roster.Repository
	bidRepo     bid.Repository
	rules       auction.Rules
	idGen       id.Generator
	clock       clockwork.Clock
	publisher   Publisher
	cacheStore  *cache.Store
	logger      *logging.Logger
	waker       Waker

	// settling is the local re-entrancy latch: one settlement sequence per
	// process at a time. Cross-process exclusivity comes from the CAS.
	settleMu sync.Mutex
	settling bool
}

type AuctionSnapshot struct {
	State            auction.State
	RemainingSeconds int64
}

type SettlementOutcome struct {
	PlayerID string
	Sold     bool
	OwnerID  string
	Price    int64
}

func NewAuctionService(
	auctionRepo auction.Repository,
	playerRepo player.Repository,
	ownerRepo owner.Repository,
	rosterRepo roster.Repository,
	bidRepo bid.Repository,
	rules auction.Rules,
	idGen id.Generator,
	clock clockwork.Clock,
	publisher Publisher,
	cacheStore *cache.Store,
	logger *logging.Logger,
) *AuctionService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AuctionService{
		auctionRepo: auctionRepo,
		playerRepo:  playerRepo,
		ownerRepo:   ownerRepo,
		rosterRepo:  rosterRepo,
		bidRepo:     bidRepo,
		rules:       rules,
		idGen:       idGen,
		clock:       clock,
		publisher:   publisher,
		cacheStore:  cacheStore,
		logger:      logger,
	}
}

// SetWaker wires the timekeeper in after construction; the two reference
// each other.
func (s *AuctionService) SetWaker(w Waker) {
	s.waker = w
}

// SetPublisher swaps the event publisher in after construction. The live
// feed hub greets clients with this service's snapshot, so the two cannot
// be built in one pass.
func (s *AuctionService) SetPublisher(p Publisher) {
	if p == nil {
		p = NopPublisher{}
	}
	s.publisher = p
}

func (s *AuctionService) wake() {
	if s.waker != nil {
		s.waker.Wake()
	}
}

// Snapshot returns the auction row with the remaining seconds derived from
// the shared timer start, never from a stored countdown.
func (s *AuctionService) Snapshot(ctx context.Context) (AuctionSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.Snapshot")
	defer span.End()

	state, exists, err := s.auctionRepo.Get(ctx)
	if err != nil {
		return AuctionSnapshot{}, fmt.Errorf("get auction state: %w", err)
	}
	if !exists {
		return AuctionSnapshot{}, fmt.Errorf("%w: auction state row", ErrNotFound)
	}

	snap := AuctionSnapshot{State: state}
	if state.IsActive {
		snap.RemainingSeconds = state.TimerRemaining(s.clock.Now().UTC())
	}
	return snap, nil
}

// BidHistory lists the accepted bids for a player in placement order.
func (s *AuctionService) BidHistory(ctx context.Context, playerID string) ([]bid.Bid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.BidHistory")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	bids, err := s.bidRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	return bids, nil
}

// StartAuction puts a player on the block. Valid only from idle; the
// opening price is the player's base price and the clock starts now.
func (s *AuctionService) StartAuction(ctx context.Context, playerID string, durationSeconds int64) (auction.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.StartAuction")
	defer span.End()

	principal, ok := user.FromContext(ctx)
	if !ok || !principal.IsAdmin() {
		return auction.State{}, fmt.Errorf("%w: starting an auction requires admin", ErrUnauthorized)
	}

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return auction.State{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if durationSeconds <= 0 {
		durationSeconds = s.rules.DefaultTimerSeconds
	}
	if durationSeconds <= 0 {
		durationSeconds = defaultTimerSeconds
	}

	state, exists, err := s.auctionRepo.Get(ctx)
	if err != nil {
		return auction.State{}, fmt.Errorf("get auction state: %w", err)
	}
	if !exists {
		return auction.State{}, fmt.Errorf("%w: auction state row", ErrNotFound)
	}
	if state.IsActive {
		return auction.State{}, fmt.Errorf("%w: an auction is already live", ErrConflict)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return auction.State{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return auction.State{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	if p.Status == player.StatusSold || p.Status == player.StatusActive {
		return auction.State{}, fmt.Errorf("%w: player %s is %s", ErrConflict, playerID, p.Status)
	}

	now := s.clock.Now().UTC()
	next := state
	next.ActivePlayerID = p.ID
	next.CurrentBid = p.BasePrice
	next.LeadingBidderID = ""
	next.IsActive = true
	next.TimerDurationSeconds = durationSeconds
	next.TimerStartedAt = &now
	next.UpdatedAt = now

	if err := s.auctionRepo.Update(ctx, next, state.Version); err != nil {
		if errors.Is(err, auction.ErrVersionConflict) {
			return auction.State{}, fmt.Errorf("%w: auction state changed underneath, retry", ErrConflict)
		}
		return auction.State{}, fmt.Errorf("update auction state: %w", err)
	}
	next.Version = state.Version + 1

	if err := s.playerRepo.UpdateStatus(ctx, p.ID, player.StatusActive); err != nil {
		return auction.State{}, fmt.Errorf("mark player active: %w", err)
	}

	s.logger.InfoContext(ctx, "auction started",
		"playerId", p.ID,
		"basePrice", p.BasePrice,
		"durationSeconds", durationSeconds,
	)
	s.publisher.Publish(EventAuctionStarted, AuctionSnapshot{State: next, RemainingSeconds: durationSeconds})
	s.wake()

	return next, nil
}

// PlaceBid records a bid for the player on the block and pushes the
// deadline out by resetting the timer start. The increment and reservation
// rules gate acceptance.
func (s *AuctionService) PlaceBid(ctx context.Context, ownerID string, amount int64) (auction.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.PlaceBid")
	defer span.End()

	principal, ok := user.FromContext(ctx)
	if !ok || !principal.CanBid() {
		return auction.State{}, fmt.Errorf("%w: bidding requires an owner session", ErrUnauthorized)
	}

	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		ownerID = principal.OwnerID
	}
	if ownerID == "" {
		return auction.State{}, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}
	if !principal.IsAdmin() && principal.OwnerID != ownerID {
		return auction.State{}, fmt.Errorf("%w: cannot bid for another owner", ErrUnauthorized)
	}
	if amount <= 0 {
		return auction.State{}, fmt.Errorf("%w: bid amount must be positive", ErrInvalidInput)
	}

	state, exists, err := s.auctionRepo.Get(ctx)
	if err != nil {
		return auction.State{}, fmt.Errorf("get auction state: %w", err)
	}
	if !exists || !state.IsActive {
		return auction.State{}, fmt.Errorf("%w: no live auction", ErrConflict)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, state.ActivePlayerID)
	if err != nil {
		return auction.State{}, fmt.Errorf("get active player: %w", err)
	}
	if !exists {
		return auction.State{}, fmt.Errorf("%w: active player=%s", ErrNotFound, state.ActivePlayerID)
	}

	own, exists, err := s.ownerRepo.GetByID(ctx, ownerID)
	if err != nil {
		return auction.State{}, fmt.Errorf("get owner: %w", err)
	}
	if !exists {
		return auction.State{}, fmt.Errorf("%w: owner=%s", ErrNotFound, ownerID)
	}

	counts, err := s.rosterRepo.CountByCategory(ctx, ownerID)
	if err != nil {
		return auction.State{}, fmt.Errorf("count roster categories: %w", err)
	}

	if err := s.rules.ValidateBid(amount, state.CurrentBid, own.RemainingPoints, p.Category, counts); err != nil {
		return auction.State{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.clock.Now().UTC()
	bidID, err := s.idGen.NewID()
	if err != nil {
		return auction.State{}, fmt.Errorf("generate bid id: %w", err)
	}
	if err := s.bidRepo.Insert(ctx, bid.Bid{
		ID:       bidID,
		PlayerID: p.ID,
		OwnerID:  ownerID,
		Amount:   amount,
		PlacedAt: now,
	}); err != nil {
		return auction.State{}, fmt.Errorf("insert bid: %w", err)
	}

	next := state
	next.CurrentBid = amount
	next.LeadingBidderID = ownerID
	next.TimerStartedAt = &now
	next.UpdatedAt = now

	if err := s.auctionRepo.Update(ctx, next, state.Version); err != nil {
		if errors.Is(err, auction.ErrVersionConflict) {
			return auction.State{}, fmt.Errorf("%w: another bid landed first, retry", ErrConflict)
		}
		return auction.State{}, fmt.Errorf("update auction state: %w", err)
	}
	next.Version = state.Version + 1

	s.logger.InfoContext(ctx, "bid placed",
		"playerId", p.ID,
		"ownerId", ownerID,
		"amount", amount,
	)
	s.publisher.Publish(EventAuctionBid, AuctionSnapshot{State: next, RemainingSeconds: next.TimerDurationSeconds})
	s.wake()

	return next, nil
}

// CloseAuction settles the live auction on explicit admin action. When no
// auction is live, including a repeated close of an already-settled one, it
// returns ErrConflict rather than succeeding silently so the caller learns
// their close did not perform the settlement.
func (s *AuctionService) CloseAuction(ctx context.Context) (SettlementOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.CloseAuction")
	defer span.End()

	principal, ok := user.FromContext(ctx)
	if !ok || !principal.IsAdmin() {
		return SettlementOutcome{}, fmt.Errorf("%w: closing an auction requires admin", ErrUnauthorized)
	}

	return s.settle(ctx, false)
}

// SettleExpired is the timekeeper's entry point: settle only when the
// derived remaining time has actually reached zero.
func (s *AuctionService) SettleExpired(ctx context.Context) (SettlementOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.SettleExpired")
	defer span.End()

	return s.settle(ctx, true)
}

// Deadline exposes the live auction's expiry to the timekeeper.
func (s *AuctionService) Deadline(ctx context.Context) (time.Time, bool, error) {
	state, exists, err := s.auctionRepo.Get(ctx)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("get auction state: %w", err)
	}
	if !exists {
		return time.Time{}, false, nil
	}
	deadline, ok := state.Deadline()
	return deadline, ok, nil
}

func (s *AuctionService) settle(ctx context.Context, requireExpired bool) (SettlementOutcome, error) {
	if !s.beginSettle() {
		return SettlementOutcome{}, fmt.Errorf("%w: settlement already in progress", ErrConflict)
	}
	defer s.endSettle()

	// Recheck liveness inside the latch; the state may have been settled
	// between the caller's observation and now.
	state, exists, err := s.auctionRepo.Get(ctx)
	if err != nil {
		return SettlementOutcome{}, fmt.Errorf("get auction state: %w", err)
	}
	if !exists || !state.IsActive {
		return SettlementOutcome{}, fmt.Errorf("%w: no live auction", ErrConflict)
	}
	if requireExpired && state.TimerRemaining(s.clock.Now().UTC()) > 0 {
		return SettlementOutcome{}, fmt.Errorf("%w: timer has not expired", ErrConflict)
	}

	// Winning this CAS grants exclusive right to run the settlement writes.
	// A loser raced another settler and must treat the auction as handled.
	now := s.clock.Now().UTC()
	next := state
	next.ActivePlayerID = ""
	next.CurrentBid = 0
	next.LeadingBidderID = ""
	next.IsActive = false
	next.TimerStartedAt = nil
	next.UpdatedAt = now
	if err := s.auctionRepo.Update(ctx, next, state.Version); err != nil {
		if errors.Is(err, auction.ErrVersionConflict) {
			return SettlementOutcome{}, fmt.Errorf("%w: auction settled elsewhere", ErrConflict)
		}
		return SettlementOutcome{}, fmt.Errorf("reset auction state: %w", err)
	}

	outcome := SettlementOutcome{
		PlayerID: state.ActivePlayerID,
		Sold:     state.LeadingBidderID != "",
		OwnerID:  state.LeadingBidderID,
		Price:    state.CurrentBid,
	}

	if !outcome.Sold {
		if err := s.playerRepo.UpdateStatus(ctx, outcome.PlayerID, player.StatusUnsold); err != nil {
			return SettlementOutcome{}, fmt.Errorf("mark player unsold: %w", err)
		}
		s.logger.InfoContext(ctx, "auction settled unsold", "playerId", outcome.PlayerID)
		s.publisher.Publish(EventAuctionClosed, outcome)
		return outcome, nil
	}

	entryID, err := s.idGen.NewID()
	if err != nil {
		return SettlementOutcome{}, fmt.Errorf("generate roster entry id: %w", err)
	}
	if err := s.rosterRepo.Insert(ctx, roster.Entry{
		ID:          entryID,
		OwnerID:     outcome.OwnerID,
		PlayerID:    outcome.PlayerID,
		BoughtPrice: outcome.Price,
		BoughtAt:    now,
	}); err != nil {
		return SettlementOutcome{}, fmt.Errorf("insert roster entry: %w", err)
	}
	if err := s.ownerRepo.DeductPoints(ctx, outcome.OwnerID, outcome.Price); err != nil {
		return SettlementOutcome{}, fmt.Errorf("deduct owner points: %w", err)
	}
	if err := s.playerRepo.UpdateStatus(ctx, outcome.PlayerID, player.StatusSold); err != nil {
		return SettlementOutcome{}, fmt.Errorf("mark player sold: %w", err)
	}

	if s.cacheStore != nil {
		s.cacheStore.DeletePrefix(ctx, ownerCachePrefix)
	}

	s.logger.InfoContext(ctx, "auction settled sold",
		"playerId", outcome.PlayerID,
		"ownerId", outcome.OwnerID,
		"price", outcome.Price,
	)
	s.publisher.Publish(EventAuctionClosed, outcome)

	return outcome, nil
}

func (s *AuctionService) beginSettle() bool {
	s.settleMu.Lock()
	defer s.settleMu.Unlock()
	if s.settling {
		return false
	}
	s.settling = true
	return true
}

func (s *AuctionService) endSettle() {
	s.settleMu.Lock()
	s.settling = false
	s.settleMu.Unlock()
}
