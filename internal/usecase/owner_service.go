package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/owner"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/player"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/roster"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/user"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/cache"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/id"
)

// OwnerService serves franchise views. Summaries are cached; settlement
// evicts the whole owner prefix so budgets never display stale.
type OwnerService struct {
	ownerRepo  owner.Repository
	rosterRepo roster.Repository
	playerRepo player.Repository
	idGen      id.Generator
	cacheStore *cache.Store
	now        func() time.Time
}

func NewOwnerService(
	ownerRepo owner.Repository,
	rosterRepo roster.Repository,
	playerRepo player.Repository,
	idGen id.Generator,
	cacheStore *cache.Store,
) *OwnerService {
	return &OwnerService{
		ownerRepo:  ownerRepo,
		rosterRepo: rosterRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		cacheStore: cacheStore,
		now:        time.Now,
	}
}

type RosterPlayer struct {
	Player      player.Player
	BoughtPrice int64
	BoughtAt    time.Time
}

type OwnerSummary struct {
	Owner           owner.Owner
	Spent           int64
	Roster          []RosterPlayer
	CountByCategory map[player.Category]int64
}

type CreateOwnerInput struct {
	TeamName    string
	UserID      string
	TotalPoints int64
}

func (s *OwnerService) CreateOwner(ctx context.Context, input CreateOwnerInput) (owner.Owner, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OwnerService.CreateOwner")
	defer span.End()

	principal, ok := user.FromContext(ctx)
	if !ok || !principal.IsAdmin() {
		return owner.Owner{}, fmt.Errorf("%w: creating owners requires admin", ErrUnauthorized)
	}

	input.TeamName = strings.TrimSpace(input.TeamName)
	if input.TeamName == "" {
		return owner.Owner{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if input.TotalPoints <= 0 {
		return owner.Owner{}, fmt.Errorf("%w: total points must be positive", ErrInvalidInput)
	}

	ownerID, err := s.idGen.NewID()
	if err != nil {
		return owner.Owner{}, fmt.Errorf("generate owner id: %w", err)
	}
	o := owner.Owner{
		ID:              ownerID,
		TeamName:        input.TeamName,
		UserID:          strings.TrimSpace(input.UserID),
		TotalPoints:     input.TotalPoints,
		RemainingPoints: input.TotalPoints,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.ownerRepo.Insert(ctx, o); err != nil {
		return owner.Owner{}, fmt.Errorf("insert owner: %w", err)
	}

	if s.cacheStore != nil {
		s.cacheStore.DeletePrefix(ctx, ownerCachePrefix)
	}
	return o, nil
}

func (s *OwnerService) ListOwners(ctx context.Context) ([]owner.Owner, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OwnerService.ListOwners")
	defer span.End()

	owners, err := s.ownerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	return owners, nil
}

// Summary assembles the franchise view: budget, squad, and per-category
// counts against the composition minimums.
func (s *OwnerService) Summary(ctx context.Context, ownerID string) (OwnerSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OwnerService.Summary")
	defer span.End()

	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return OwnerSummary{}, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	if s.cacheStore == nil {
		return s.buildSummary(ctx, ownerID)
	}

	key := ownerCachePrefix + "summary:" + ownerID
	value, err := s.cacheStore.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.buildSummary(ctx, ownerID)
	})
	if err != nil {
		return OwnerSummary{}, err
	}
	summary, ok := value.(OwnerSummary)
	if !ok {
		return OwnerSummary{}, fmt.Errorf("unexpected cached owner summary type %T", value)
	}
	return summary, nil
}

func (s *OwnerService) buildSummary(ctx context.Context, ownerID string) (OwnerSummary, error) {
	o, exists, err := s.ownerRepo.GetByID(ctx, ownerID)
	if err != nil {
		return OwnerSummary{}, fmt.Errorf("get owner: %w", err)
	}
	if !exists {
		return OwnerSummary{}, fmt.Errorf("%w: owner=%s", ErrNotFound, ownerID)
	}

	entries, err := s.rosterRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return OwnerSummary{}, fmt.Errorf("list roster: %w", err)
	}

	summary := OwnerSummary{
		Owner:           o,
		CountByCategory: make(map[player.Category]int64),
	}
	for _, entry := range entries {
		p, exists, err := s.playerRepo.GetByID(ctx, entry.PlayerID)
		if err != nil {
			return OwnerSummary{}, fmt.Errorf("get roster player: %w", err)
		}
		if !exists {
			continue
		}
		summary.Spent += entry.BoughtPrice
		summary.CountByCategory[p.Category]++
		summary.Roster = append(summary.Roster, RosterPlayer{
			Player:      p,
			BoughtPrice: entry.BoughtPrice,
			BoughtAt:    entry.BoughtAt,
		})
	}
	return summary, nil
}
