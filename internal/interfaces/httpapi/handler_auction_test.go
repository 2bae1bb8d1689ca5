package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jonboulle/clockwork"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/auction"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/owner"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/player"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/user"
	"github.com/smarteck4/cricket-auction-pro/internal/infrastructure/repository/memory"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/id"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/logging"
	"github.com/smarteck4/cricket-auction-pro/internal/usecase"
)

type stubVerifier struct {
	principals map[string]user.Principal
}

func (v stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	p, ok := v.principals[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return p, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2026, 4, 12, 18, 0, 0, 0, time.UTC))
	owners := []owner.Owner{
		{ID: "own-a", TeamName: "Alpha", UserID: "usr-a", TotalPoints: 10000, RemainingPoints: 10000},
	}
	players := []player.Player{
		{ID: "plr-1", Name: "R. Sharma", Category: player.CategoryGold, Skill: player.SkillBatsman, BasePrice: 200, Status: player.StatusAvailable},
	}

	playerRepo := memory.NewPlayerRepository(players)
	rosterRepo := memory.NewRosterRepository(playerRepo)
	ownerRepo := memory.NewOwnerRepository(owners)
	matchRepo := memory.NewMatchRepository()
	inningsRepo := memory.NewInningsRepository()
	deliveryRepo := memory.NewDeliveryRepository()
	idGen := id.NewRandomGenerator()

	auctionService := usecase.NewAuctionService(
		memory.NewAuctionRepository(memory.SeedAuctionState()),
		playerRepo,
		ownerRepo,
		rosterRepo,
		memory.NewBidRepository(),
		auction.Rules{IncrementFloor: 50},
		idGen,
		clock,
		nil,
		nil,
		nil,
	)
	scoringService := usecase.NewScoringService(matchRepo, inningsRepo, deliveryRepo, playerRepo, idGen, nil, nil)
	playerService := usecase.NewPlayerService(playerRepo, idGen)
	ownerService := usecase.NewOwnerService(ownerRepo, rosterRepo, playerRepo, idGen, nil)
	matchService := usecase.NewMatchService(matchRepo, inningsRepo, ownerRepo, idGen)

	handler := NewHandler(auctionService, scoringService, playerService, ownerService, matchService, logging.NewNop())
	verifier := stubVerifier{principals: map[string]user.Principal{
		"admin-token": {UserID: "usr-admin", Role: user.RoleAdmin},
		"owner-token": {UserID: "usr-a", Role: user.RoleOwner, OwnerID: "own-a"},
	}}

	return NewRouter(handler, nil, verifier, logging.NewNop(), []string{"*"})
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuctionRoutes_StartBidAndSnapshot(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/auction/start", "admin-token", `{"player_id":"plr-1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/auction/bids", "owner-token", `{"amount":250}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/auction", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		Data auctionStateDTO `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if !body.Data.IsActive {
		t.Fatalf("expected live auction in snapshot")
	}
	if body.Data.CurrentBid != 250 {
		t.Fatalf("expected current bid 250, got %d", body.Data.CurrentBid)
	}
	if body.Data.LeadingBidderID != "own-a" {
		t.Fatalf("expected leading bidder own-a, got %q", body.Data.LeadingBidderID)
	}
}

func TestAuctionRoutes_RequireAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/auction/start", "", `{"player_id":"plr-1"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/auction/start", "bogus", `{"player_id":"plr-1"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for unknown token, got %d", rec.Code)
	}
}

func TestAuctionRoutes_RejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/v1/auction/start", "admin-token", `{"player_id":"plr-1","surprise":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
	}
}
