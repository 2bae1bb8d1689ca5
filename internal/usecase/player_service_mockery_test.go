package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/player"
	playermock "github.com/smarteck4/cricket-auction-pro/internal/mocks/domain/player"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/id"
)

func TestPlayerService_ListPlayers_ByStatusUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	playerRepo := playermock.NewRepository(t)

	service := NewPlayerService(playerRepo, id.NewRandomGenerator())
	expected := []player.Player{
		{ID: "plr-gd-01", Name: "Farhan Qureshi", Category: player.CategoryGold, Status: player.StatusSold},
		{ID: "plr-sl-02", Name: "Kieran Walsh", Category: player.CategorySilver, Status: player.StatusSold},
	}

	playerRepo.
		On("ListByStatus", mock.MatchedBy(func(v context.Context) bool { return v != nil }), player.StatusSold).
		Return(expected, nil).
		Once()

	got, err := service.ListPlayers(ctx, player.StatusSold)
	if err != nil {
		t.Fatalf("list players by status: %v", err)
	}
	if len(got) != len(expected) {
		t.Fatalf("unexpected player count: got=%d want=%d", len(got), len(expected))
	}
	if got[0].ID != expected[0].ID {
		t.Fatalf("unexpected player id: got=%s want=%s", got[0].ID, expected[0].ID)
	}
}

func TestPlayerService_GetPlayer_RepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	playerRepo := playermock.NewRepository(t)
	service := NewPlayerService(playerRepo, id.NewRandomGenerator())

	repoErr := errors.New("connection reset")
	playerRepo.
		On("GetByID", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "plr-pl-01").
		Return(player.Player{}, false, repoErr).
		Once()

	_, err := service.GetPlayer(context.Background(), "plr-pl-01")
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestPlayerService_CreatePlayer_PersistsThroughRepositoryUsingMockery(t *testing.T) {
	t.Parallel()

	playerRepo := playermock.NewRepository(t)
	service := NewPlayerService(playerRepo, id.NewRandomGenerator())

	playerRepo.
		On("Insert", mock.MatchedBy(func(v context.Context) bool { return v != nil }), mock.MatchedBy(func(p player.Player) bool {
			return p.Name == "Arjun Mehta" && p.Status == player.StatusAvailable && p.ID != ""
		})).
		Return(nil).
		Once()

	got, err := service.CreatePlayer(adminContext(), CreatePlayerInput{
		Name:      "Arjun Mehta",
		Category:  player.CategoryPlatinum,
		Skill:     player.SkillBatsman,
		BasePrice: 500,
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	if got.Category != player.CategoryPlatinum {
		t.Fatalf("unexpected category: %s", got.Category)
	}
}
