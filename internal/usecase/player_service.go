package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/player"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/user"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/id"
)

type PlayerService struct {
	playerRepo player.Repository
	idGen      id.Generator
	now        func() time.Time
}

func NewPlayerService(playerRepo player.Repository, idGen id.Generator) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

type CreatePlayerInput struct {
	Name      string
	Category  player.Category
	Skill     player.SkillRole
	BasePrice int64
}

func (s *PlayerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.CreatePlayer")
	defer span.End()

	principal, ok := user.FromContext(ctx)
	if !ok || !principal.IsAdmin() {
		return player.Player{}, fmt.Errorf("%w: creating players requires admin", ErrUnauthorized)
	}

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	if _, valid := player.AllCategories[input.Category]; !valid {
		return player.Player{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, input.Category)
	}
	if input.BasePrice <= 0 {
		return player.Player{}, fmt.Errorf("%w: base price must be positive", ErrInvalidInput)
	}

	playerID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}
	p := player.Player{
		ID:        playerID,
		Name:      input.Name,
		Category:  input.Category,
		Skill:     input.Skill,
		BasePrice: input.BasePrice,
		Status:    player.StatusAvailable,
		CreatedAt: s.now().UTC(),
	}
	if err := s.playerRepo.Insert(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("insert player: %w", err)
	}

	return p, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return p, nil
}

func (s *PlayerService) ListPlayers(ctx context.Context, status player.Status) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	if status == "" {
		players, err := s.playerRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list players: %w", err)
		}
		return players, nil
	}

	players, err := s.playerRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list players by status: %w", err)
	}
	return players, nil
}
