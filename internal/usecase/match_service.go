package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/innings"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/match"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/owner"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/user"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/id"
)

const defaultMaxOvers = 20

type MatchService struct {
	matchRepo   match.Repository
	inningsRepo innings.Repository
	ownerRepo   owner.Repository
	idGen       id.Generator
	maxOvers    int
	now         func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	inningsRepo innings.Repository,
	ownerRepo owner.Repository,
	idGen id.Generator,
) *MatchService {
	return &MatchService{
		matchRepo:   matchRepo,
		inningsRepo: inningsRepo,
		ownerRepo:   ownerRepo,
		idGen:       idGen,
		maxOvers:    defaultMaxOvers,
		now:         time.Now,
	}
}

// SetDefaultMaxOvers overrides the format used when a match request does
// not name an overs limit.
func (s *MatchService) SetDefaultMaxOvers(overs int) {
	if overs > 0 {
		s.maxOvers = overs
	}
}

type CreateMatchInput struct {
	TeamAID  string
	TeamBID  string
	MaxOvers int
}

func (s *MatchService) CreateMatch(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.CreateMatch")
	defer span.End()

	principal, ok := user.FromContext(ctx)
	if !ok || !principal.IsAdmin() {
		return match.Match{}, fmt.Errorf("%w: creating matches requires admin", ErrUnauthorized)
	}

	input.TeamAID = strings.TrimSpace(input.TeamAID)
	input.TeamBID = strings.TrimSpace(input.TeamBID)
	if input.TeamAID == "" || input.TeamBID == "" {
		return match.Match{}, fmt.Errorf("%w: both team ids are required", ErrInvalidInput)
	}
	if input.TeamAID == input.TeamBID {
		return match.Match{}, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}
	if input.MaxOvers <= 0 {
		input.MaxOvers = s.maxOvers
	}

	for _, teamID := range []string{input.TeamAID, input.TeamBID} {
		_, exists, err := s.ownerRepo.GetByID(ctx, teamID)
		if err != nil {
			return match.Match{}, fmt.Errorf("get team owner: %w", err)
		}
		if !exists {
			return match.Match{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}
	m := match.Match{
		ID:        matchID,
		TeamAID:   input.TeamAID,
		TeamBID:   input.TeamBID,
		MaxOvers:  input.MaxOvers,
		Status:    match.StatusScheduled,
		CreatedAt: s.now().UTC(),
	}
	if err := s.matchRepo.Insert(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("insert match: %w", err)
	}

	return m, nil
}

func (s *MatchService) GetMatch(ctx context.Context, matchID string) (match.Match, []innings.Innings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, nil, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	list, err := s.inningsRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, nil, fmt.Errorf("list innings: %w", err)
	}
	return m, list, nil
}

func (s *MatchService) ListMatches(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatches")
	defer span.End()

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}
