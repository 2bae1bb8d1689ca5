package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/auction"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/owner"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/player"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/user"
	"github.com/smarteck4/cricket-auction-pro/internal/infrastructure/repository/memory"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/id"
)

func adminContext() context.Context {
	return user.NewContext(context.Background(), user.Principal{
		UserID: "usr-admin",
		Role:   user.RoleAdmin,
	})
}

func ownerContext(ownerID string) context.Context {
	return user.NewContext(context.Background(), user.Principal{
		UserID:  "usr-" + ownerID,
		Role:    user.RoleOwner,
		OwnerID: ownerID,
	})
}

type auctionFixture struct {
	svc         *AuctionService
	clock       *clockwork.FakeClock
	auctionRepo *memory.AuctionRepository
	playerRepo  *memory.PlayerRepository
	ownerRepo   *memory.OwnerRepository
	rosterRepo  *memory.RosterRepository
	bidRepo     *memory.BidRepository
}

func newAuctionFixture(t *testing.T, owners []owner.Owner, players []player.Player) *auctionFixture {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2026, 4, 12, 18, 0, 0, 0, time.UTC))
	playerRepo := memory.NewPlayerRepository(players)
	rosterRepo := memory.NewRosterRepository(playerRepo)
	f := &auctionFixture{
		clock:       clock,
		auctionRepo: memory.NewAuctionRepository(memory.SeedAuctionState()),
		playerRepo:  playerRepo,
		ownerRepo:   memory.NewOwnerRepository(owners),
		rosterRepo:  rosterRepo,
		bidRepo:     memory.NewBidRepository(),
	}
	f.svc = NewAuctionService(
		f.auctionRepo,
		f.playerRepo,
		f.ownerRepo,
		f.rosterRepo,
		f.bidRepo,
		auction.Rules{
			IncrementFloor: 50,
			ReferencePriceByCategory: map[player.Category]int64{
				player.CategoryPlatinum: 500,
				player.CategoryGold:     300,
				player.CategorySilver:   150,
				player.CategoryBronze:   50,
			},
			MinByCategory: map[player.Category]int64{
				player.CategoryPlatinum: 2,
			},
		},
		id.NewRandomGenerator(),
		clock,
		nil,
		nil,
		nil,
	)
	return f
}

func testOwners() []owner.Owner {
	return []owner.Owner{
		{ID: "own-a", TeamName: "Alpha", TotalPoints: 10000, RemainingPoints: 10000},
		{ID: "own-b", TeamName: "Beta", TotalPoints: 10000, RemainingPoints: 1200},
	}
}

func testPlayers() []player.Player {
	return []player.Player{
		{ID: "plr-1", Name: "One", Category: player.CategoryGold, BasePrice: 300, Status: player.StatusAvailable},
		{ID: "plr-2", Name: "Two", Category: player.CategoryPlatinum, BasePrice: 500, Status: player.StatusAvailable},
	}
}

func TestStartAuction(t *testing.T) {
	f := newAuctionFixture(t, testOwners(), testPlayers())

	state, err := f.svc.StartAuction(adminContext(), "plr-1", 30)
	if err != nil {
		t.Fatalf("StartAuction: %v", err)
	}
	if !state.IsActive || state.ActivePlayerID != "plr-1" {
		t.Fatalf("unexpected state after start: %+v", state)
	}
	if state.CurrentBid != 300 {
		t.Fatalf("opening bid = %d, want base price 300", state.CurrentBid)
	}

	p, _, _ := f.playerRepo.GetByID(context.Background(), "plr-1")
	if p.Status != player.StatusActive {
		t.Fatalf("player status = %s, want active", p.Status)
	}

	if _, err := f.svc.StartAuction(adminContext(), "plr-2", 30); !errors.Is(err, ErrConflict) {
		t.Fatalf("second start returned %v, want ErrConflict", err)
	}

	if _, err := newAuctionFixture(t, testOwners(), testPlayers()).svc.StartAuction(ownerContext("own-a"), "plr-1", 30); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-admin start returned %v, want ErrUnauthorized", err)
	}
}

func TestPlaceBid_ExtendsTimer(t *testing.T) {
	f := newAuctionFixture(t, testOwners(), testPlayers())

	if _, err := f.svc.StartAuction(adminContext(), "plr-1", 30); err != nil {
		t.Fatalf("StartAuction: %v", err)
	}

	f.clock.Advance(20 * time.Second)
	state, err := f.svc.PlaceBid(ownerContext("own-a"), "own-a", 350)
	if err != nil {
		t.Fatalf("PlaceBid: %v", err)
	}
	if state.CurrentBid != 350 || state.LeadingBidderID != "own-a" {
		t.Fatalf("unexpected state after bid: %+v", state)
	}

	snap, err := f.svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.RemainingSeconds != 30 {
		t.Fatalf("remaining after bid = %d, want timer reset to 30", snap.RemainingSeconds)
	}
}

func TestBidHistory_ReturnsAcceptedBidsInOrder(t *testing.T) {
	f := newAuctionFixture(t, testOwners(), testPlayers())

	if _, err := f.svc.StartAuction(adminContext(), "plr-1", 30); err != nil {
		t.Fatalf("StartAuction: %v", err)
	}
	if _, err := f.svc.PlaceBid(ownerContext("own-a"), "own-a", 350); err != nil {
		t.Fatalf("PlaceBid: %v", err)
	}
	if _, err := f.svc.PlaceBid(ownerContext("own-b"), "own-b", 400); err != nil {
		t.Fatalf("PlaceBid: %v", err)
	}

	bids, err := f.svc.BidHistory(context.Background(), "plr-1")
	if err != nil {
		t.Fatalf("BidHistory: %v", err)
	}
	if len(bids) != 2 {
		t.Fatalf("bid count = %d, want 2", len(bids))
	}
	if bids[0].OwnerID != "own-a" || bids[0].Amount != 350 {
		t.Fatalf("unexpected first bid: %+v", bids[0])
	}
	if bids[1].OwnerID != "own-b" || bids[1].Amount != 400 {
		t.Fatalf("unexpected second bid: %+v", bids[1])
	}

	if _, err := f.svc.BidHistory(context.Background(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank player id returned %v, want ErrInvalidInput", err)
	}
}

func TestPlaceBid_IncrementTooSmall(t *testing.T) {
	f := newAuctionFixture(t, testOwners(), testPlayers())

	if _, err := f.svc.StartAuction(adminContext(), "plr-1", 30); err != nil {
		t.Fatalf("StartAuction: %v", err)
	}
	if _, err := f.svc.PlaceBid(ownerContext("own-a"), "own-a", 320); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("undersized bid returned %v, want ErrInvalidInput", err)
	}
}

func TestPlaceBid_ReservationCheck(t *testing.T) {
	// own-b has 1200 left and still owes two platinum buys at reference 500
	// each, so a 300 bid on a gold player would leave 900 against a 1000
	// reserve.
	players := []player.Player{
		{ID: "plr-g", Name: "Gold", Category: player.CategoryGold, BasePrice: 150, Status: player.StatusAvailable},
	}
	f := newAuctionFixture(t, testOwners(), players)

	if _, err := f.svc.StartAuction(adminContext(), "plr-g", 30); err != nil {
		t.Fatalf("StartAuction: %v", err)
	}
	if _, err := f.svc.PlaceBid(ownerContext("own-b"), "own-b", 300); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("reservation-breaking bid returned %v, want ErrInvalidInput", err)
	}
	if _, err := f.svc.PlaceBid(ownerContext("own-b"), "own-b", 200); err != nil {
		t.Fatalf("bid within reservation: %v", err)
	}
}

func TestPlaceBid_CannotBidForAnotherOwner(t *testing.T) {
	f := newAuctionFixture(t, testOwners(), testPlayers())

	if _, err := f.svc.StartAuction(adminContext(), "plr-1", 30); err != nil {
		t.Fatalf("StartAuction: %v", err)
	}
	if _, err := f.svc.PlaceBid(ownerContext("own-a"), "own-b", 400); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("cross-owner bid returned %v, want ErrUnauthorized", err)
	}
}

func TestSettlement_SoldPath(t *testing.T) {
	f := newAuctionFixture(t, testOwners(), testPlayers())
	ctx := adminContext()

	if _, err := f.svc.StartAuction(ctx, "plr-1", 30); err != nil {
		t.Fatalf("StartAuction: %v", err)
	}
	if _, err := f.svc.PlaceBid(ownerContext("own-a"), "own-a", 400); err != nil {
		t.Fatalf("PlaceBid: %v", err)
	}

	outcome, err := f.svc.CloseAuction(ctx)
	if err != nil {
		t.Fatalf("CloseAuction: %v", err)
	}
	if !outcome.Sold || outcome.OwnerID != "own-a" || outcome.Price != 400 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	o, _, _ := f.ownerRepo.GetByID(context.Background(), "own-a")
	if o.RemainingPoints != 9600 {
		t.Fatalf("remaining points = %d, want 9600", o.RemainingPoints)
	}
	p, _, _ := f.playerRepo.GetByID(context.Background(), "plr-1")
	if p.Status != player.StatusSold {
		t.Fatalf("player status = %s, want sold", p.Status)
	}
	entries, _ := f.rosterRepo.ListByOwner(context.Background(), "own-a")
	if len(entries) != 1 || entries[0].BoughtPrice != 400 {
		t.Fatalf("unexpected roster entries: %+v", entries)
	}

	snap, err := f.svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.State.IsActive || snap.State.ActivePlayerID != "" {
		t.Fatalf("auction not reset to idle: %+v", snap.State)
	}
}

func TestSettlement_UnsoldPath(t *testing.T) {
	f := newAuctionFixture(t, testOwners(), testPlayers())
	ctx := adminContext()

	if _, err := f.svc.StartAuction(ctx, "plr-1", 30); err != nil {
		t.Fatalf("StartAuction: %v", err)
	}

	outcome, err := f.svc.CloseAuction(ctx)
	if err != nil {
		t.Fatalf("CloseAuction: %v", err)
	}
	if outcome.Sold {
		t.Fatalf("outcome sold without bids: %+v", outcome)
	}
	p, _, _ := f.playerRepo.GetByID(context.Background(), "plr-1")
	if p.Status != player.StatusUnsold {
		t.Fatalf("player status = %s, want unsold", p.Status)
	}
}

func TestSettleExpired_RequiresExpiredTimer(t *testing.T) {
	f := newAuctionFixture(t, testOwners(), testPlayers())

	if _, err := f.svc.StartAuction(adminContext(), "plr-1", 30); err != nil {
		t.Fatalf("StartAuction: %v", err)
	}
	if _, err := f.svc.SettleExpired(context.Background()); !errors.Is(err, ErrConflict) {
		t.Fatalf("early settle returned %v, want ErrConflict", err)
	}

	f.clock.Advance(31 * time.Second)
	if _, err := f.svc.SettleExpired(context.Background()); err != nil {
		t.Fatalf("settle after expiry: %v", err)
	}
}

func TestSettlement_AtMostOnce(t *testing.T) {
	f := newAuctionFixture(t, testOwners(), testPlayers())
	ctx := adminContext()

	if _, err := f.svc.StartAuction(ctx, "plr-1", 30); err != nil {
		t.Fatalf("StartAuction: %v", err)
	}
	if _, err := f.svc.PlaceBid(ownerContext("own-a"), "own-a", 400); err != nil {
		t.Fatalf("PlaceBid: %v", err)
	}
	f.clock.Advance(31 * time.Second)

	const settlers = 8
	var wg sync.WaitGroup
	wg.Add(settlers)
	successes := make(chan SettlementOutcome, settlers)
	for i := 0; i < settlers; i++ {
		go func() {
			defer wg.Done()
			outcome, err := f.svc.SettleExpired(context.Background())
			if err == nil {
				successes <- outcome
			} else if !errors.Is(err, ErrConflict) {
				t.Errorf("settle returned unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	close(successes)

	won := 0
	for range successes {
		won++
	}
	if won != 1 {
		t.Fatalf("%d settlers succeeded, want exactly 1", won)
	}

	o, _, _ := f.ownerRepo.GetByID(context.Background(), "own-a")
	if o.RemainingPoints != 9600 {
		t.Fatalf("remaining points = %d, want a single 400 deduction", o.RemainingPoints)
	}
	entries, _ := f.rosterRepo.ListByOwner(context.Background(), "own-a")
	if len(entries) != 1 {
		t.Fatalf("%d roster entries, want 1", len(entries))
	}
}

func TestUnsoldPlayerCanBeRelisted(t *testing.T) {
	f := newAuctionFixture(t, testOwners(), testPlayers())
	ctx := adminContext()

	if _, err := f.svc.StartAuction(ctx, "plr-1", 30); err != nil {
		t.Fatalf("StartAuction: %v", err)
	}
	if _, err := f.svc.CloseAuction(ctx); err != nil {
		t.Fatalf("CloseAuction: %v", err)
	}
	if _, err := f.svc.StartAuction(ctx, "plr-1", 30); err != nil {
		t.Fatalf("relist unsold player: %v", err)
	}
}
