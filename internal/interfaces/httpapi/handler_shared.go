package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/auction"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/bid"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/delivery"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/innings"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/match"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/owner"
	"github.com/smarteck4/cricket-auction-pro/internal/domain/player"
	"github.com/smarteck4/cricket-auction-pro/internal/platform/logging"
	"github.com/smarteck4/cricket-auction-pro/internal/usecase"
)

type Handler struct {
	auctionService *usecase.AuctionService
	scoringService *usecase.ScoringService
	playerService  *usecase.PlayerService
	ownerService   *usecase.OwnerService
	matchService   *usecase.MatchService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	auctionService *usecase.AuctionService,
	scoringService *usecase.ScoringService,
	playerService *usecase.PlayerService,
	ownerService *usecase.OwnerService,
	matchService *usecase.MatchService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		auctionService: auctionService,
		scoringService: scoringService,
		playerService:  playerService,
		ownerService:   ownerService,
		matchService:   matchService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeStrict(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type startAuctionRequest struct {
	PlayerID        string `json:"player_id" validate:"required"`
	DurationSeconds int64  `json:"duration_seconds" validate:"omitempty,min=5,max=600"`
}

type placeBidRequest struct {
	OwnerID string `json:"owner_id" validate:"omitempty"`
	Amount  int64  `json:"amount" validate:"required,gt=0"`
}

type createPlayerRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	Category  string `json:"category" validate:"required,oneof=platinum gold silver bronze"`
	Skill     string `json:"skill" validate:"required,oneof=batsman bowler all_rounder wicket_keeper"`
	BasePrice int64  `json:"base_price" validate:"required,gt=0"`
}

type createOwnerRequest struct {
	TeamName    string `json:"team_name" validate:"required,max=120"`
	UserID      string `json:"user_id" validate:"required"`
	TotalPoints int64  `json:"total_points" validate:"required,gt=0"`
}

type createMatchRequest struct {
	TeamAID  string `json:"team_a_id" validate:"required"`
	TeamBID  string `json:"team_b_id" validate:"required"`
	MaxOvers int    `json:"max_overs" validate:"omitempty,min=1,max=50"`
}

type startInningsRequest struct {
	BattingTeamID string `json:"batting_team_id" validate:"required"`
}

type selectPlayerRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type recordBallRequest struct {
	Runs       int    `json:"runs" validate:"min=0,max=6"`
	ExtraType  string `json:"extra_type" validate:"omitempty,oneof=wide no_ball bye leg_bye penalty"`
	ExtraRuns  int    `json:"extra_runs" validate:"min=0"`
	IsWicket   bool   `json:"is_wicket"`
	WicketType string `json:"wicket_type" validate:"omitempty,oneof=bowled caught lbw stumped hit_wicket run_out"`
	FielderID  string `json:"fielder_id"`
}

type completeMatchRequest struct {
	WinnerID string `json:"winner_id" validate:"required"`
	Result   string `json:"result" validate:"required,max=200"`
}

type quickScoreInningsRequest struct {
	BattingTeamID string  `json:"batting_team_id" validate:"required"`
	TotalRuns     int     `json:"total_runs" validate:"min=0"`
	Wickets       int     `json:"wickets" validate:"min=0,max=10"`
	Extras        int     `json:"extras" validate:"min=0"`
	Overs         float64 `json:"overs" validate:"min=0"`
}

type quickScoreRequest struct {
	First    quickScoreInningsRequest `json:"first" validate:"required"`
	Second   quickScoreInningsRequest `json:"second" validate:"required"`
	WinnerID string                   `json:"winner_id" validate:"required"`
	Result   string                   `json:"result" validate:"required,max=200"`
}

type auctionStateDTO struct {
	ActivePlayerID   string `json:"activePlayerId,omitempty"`
	CurrentBid       int64  `json:"currentBid"`
	LeadingBidderID  string `json:"leadingBidderId,omitempty"`
	IsActive         bool   `json:"isActive"`
	RemainingSeconds int64  `json:"remainingSeconds"`
}

func auctionSnapshotToDTO(snap usecase.AuctionSnapshot) auctionStateDTO {
	return auctionStateDTO{
		ActivePlayerID:   snap.State.ActivePlayerID,
		CurrentBid:       snap.State.CurrentBid,
		LeadingBidderID:  snap.State.LeadingBidderID,
		IsActive:         snap.State.IsActive,
		RemainingSeconds: snap.RemainingSeconds,
	}
}

func auctionStateToDTO(state auction.State, now time.Time) auctionStateDTO {
	return auctionStateDTO{
		ActivePlayerID:   state.ActivePlayerID,
		CurrentBid:       state.CurrentBid,
		LeadingBidderID:  state.LeadingBidderID,
		IsActive:         state.IsActive,
		RemainingSeconds: state.TimerRemaining(now),
	}
}

type bidDTO struct {
	ID       string    `json:"id"`
	PlayerID string    `json:"playerId"`
	OwnerID  string    `json:"ownerId"`
	Amount   int64     `json:"amount"`
	PlacedAt time.Time `json:"placedAt"`
}

func bidToDTO(b bid.Bid) bidDTO {
	return bidDTO{
		ID:       b.ID,
		PlayerID: b.PlayerID,
		OwnerID:  b.OwnerID,
		Amount:   b.Amount,
		PlacedAt: b.PlacedAt,
	}
}

type settlementOutcomeDTO struct {
	PlayerID string `json:"playerId"`
	Sold     bool   `json:"sold"`
	OwnerID  string `json:"ownerId,omitempty"`
	Price    int64  `json:"price,omitempty"`
}

type playerDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Skill     string    `json:"skill"`
	BasePrice int64     `json:"basePrice"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:        p.ID,
		Name:      p.Name,
		Category:  string(p.Category),
		Skill:     string(p.Skill),
		BasePrice: p.BasePrice,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

type ownerDTO struct {
	ID              string    `json:"id"`
	TeamName        string    `json:"teamName"`
	UserID          string    `json:"userId"`
	TotalPoints     int64     `json:"totalPoints"`
	RemainingPoints int64     `json:"remainingPoints"`
	CreatedAt       time.Time `json:"createdAt"`
}

func ownerToDTO(o owner.Owner) ownerDTO {
	return ownerDTO{
		ID:              o.ID,
		TeamName:        o.TeamName,
		UserID:          o.UserID,
		TotalPoints:     o.TotalPoints,
		RemainingPoints: o.RemainingPoints,
		CreatedAt:       o.CreatedAt,
	}
}

type rosterPlayerDTO struct {
	Player      playerDTO `json:"player"`
	BoughtPrice int64     `json:"boughtPrice"`
	BoughtAt    time.Time `json:"boughtAt"`
}

type ownerSummaryDTO struct {
	Owner           ownerDTO          `json:"owner"`
	Spent           int64             `json:"spent"`
	Roster          []rosterPlayerDTO `json:"roster"`
	CountByCategory map[string]int64  `json:"countByCategory"`
}

func ownerSummaryToDTO(summary usecase.OwnerSummary) ownerSummaryDTO {
	roster := make([]rosterPlayerDTO, 0, len(summary.Roster))
	for _, entry := range summary.Roster {
		roster = append(roster, rosterPlayerDTO{
			Player:      playerToDTO(entry.Player),
			BoughtPrice: entry.BoughtPrice,
			BoughtAt:    entry.BoughtAt,
		})
	}

	counts := make(map[string]int64, len(summary.CountByCategory))
	for category, count := range summary.CountByCategory {
		counts[string(category)] = count
	}

	return ownerSummaryDTO{
		Owner:           ownerToDTO(summary.Owner),
		Spent:           summary.Spent,
		Roster:          roster,
		CountByCategory: counts,
	}
}

type matchDTO struct {
	ID        string     `json:"id"`
	TeamAID   string     `json:"teamAId"`
	TeamBID   string     `json:"teamBId"`
	MaxOvers  int        `json:"maxOvers"`
	Status    string     `json:"status"`
	WinnerID  string     `json:"winnerId,omitempty"`
	Result    string     `json:"result,omitempty"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:        m.ID,
		TeamAID:   m.TeamAID,
		TeamBID:   m.TeamBID,
		MaxOvers:  m.MaxOvers,
		Status:    string(m.Status),
		WinnerID:  m.WinnerID,
		Result:    m.Result,
		StartedAt: m.StartedAt,
		EndedAt:   m.EndedAt,
	}
}

type inningsDTO struct {
	ID            string `json:"id"`
	MatchID       string `json:"matchId"`
	Number        int    `json:"number"`
	BattingTeamID string `json:"battingTeamId"`
	BowlingTeamID string `json:"bowlingTeamId"`
	TotalRuns     int    `json:"totalRuns"`
	Wickets       int    `json:"wickets"`
	Extras        int    `json:"extras"`
	LegalBalls    int    `json:"legalBalls"`
	Target        int    `json:"target,omitempty"`
	Status        string `json:"status"`
}

func inningsToDTO(in innings.Innings) inningsDTO {
	return inningsDTO{
		ID:            in.ID,
		MatchID:       in.MatchID,
		Number:        in.Number,
		BattingTeamID: in.BattingTeamID,
		BowlingTeamID: in.BowlingTeamID,
		TotalRuns:     in.TotalRuns,
		Wickets:       in.Wickets,
		Extras:        in.Extras,
		LegalBalls:    in.LegalBalls,
		Target:        in.Target,
		Status:        string(in.Status),
	}
}

type ballDTO struct {
	ID         string    `json:"id"`
	Sequence   int       `json:"sequence"`
	OverNumber int       `json:"overNumber"`
	BallNumber int       `json:"ballNumber"`
	BatsmanID  string    `json:"batsmanId"`
	BowlerID   string    `json:"bowlerId"`
	RunsScored int       `json:"runsScored"`
	ExtraType  string    `json:"extraType,omitempty"`
	ExtraRuns  int       `json:"extraRuns,omitempty"`
	IsWicket   bool      `json:"isWicket"`
	WicketType string    `json:"wicketType,omitempty"`
	FielderID  string    `json:"fielderId,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

func ballToDTO(b delivery.Ball) ballDTO {
	return ballDTO{
		ID:         b.ID,
		Sequence:   b.Sequence,
		OverNumber: b.OverNumber,
		BallNumber: b.BallNumber,
		BatsmanID:  b.BatsmanID,
		BowlerID:   b.BowlerID,
		RunsScored: b.RunsScored,
		ExtraType:  string(b.ExtraType),
		ExtraRuns:  b.ExtraRuns,
		IsWicket:   b.IsWicket,
		WicketType: string(b.WicketType),
		FielderID:  b.FielderID,
		RecordedAt: b.RecordedAt,
	}
}

type creaseDTO struct {
	StrikerID            string   `json:"strikerId,omitempty"`
	NonStrikerID         string   `json:"nonStrikerId,omitempty"`
	BowlerID             string   `json:"bowlerId,omitempty"`
	PreviousOverBowlerID string   `json:"previousOverBowlerId,omitempty"`
	Dismissed            []string `json:"dismissed,omitempty"`
	Retired              []string `json:"retired,omitempty"`
}

func creaseToDTO(snap usecase.CreaseSnapshot) creaseDTO {
	return creaseDTO{
		StrikerID:            snap.StrikerID,
		NonStrikerID:         snap.NonStrikerID,
		BowlerID:             snap.BowlerID,
		PreviousOverBowlerID: snap.PreviousOverBowlerID,
		Dismissed:            snap.Dismissed,
		Retired:              snap.Retired,
	}
}

type batsmanLineDTO struct {
	PlayerID   string  `json:"playerId"`
	Runs       int     `json:"runs"`
	BallsFaced int     `json:"ballsFaced"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	StrikeRate float64 `json:"strikeRate"`
}

type bowlerLineDTO struct {
	PlayerID     string  `json:"playerId"`
	LegalBalls   int     `json:"legalBalls"`
	Overs        float64 `json:"overs"`
	RunsConceded int     `json:"runsConceded"`
	Wickets      int     `json:"wickets"`
	Economy      float64 `json:"economy"`
}

type scorecardDTO struct {
	Innings         inningsDTO       `json:"innings"`
	Overs           float64          `json:"overs"`
	CurrentRunRate  float64          `json:"currentRunRate"`
	RequiredRunRate float64          `json:"requiredRunRate,omitempty"`
	Target          int              `json:"target,omitempty"`
	Batsmen         []batsmanLineDTO `json:"batsmen"`
	Bowlers         []bowlerLineDTO  `json:"bowlers"`
	CurrentOver     []ballDTO        `json:"currentOver"`
}

func scorecardToDTO(card usecase.Scorecard) scorecardDTO {
	batsmen := make([]batsmanLineDTO, 0, len(card.Batsmen))
	for _, line := range card.Batsmen {
		batsmen = append(batsmen, batsmanLineDTO{
			PlayerID:   line.PlayerID,
			Runs:       line.Runs,
			BallsFaced: line.BallsFaced,
			Fours:      line.Fours,
			Sixes:      line.Sixes,
			StrikeRate: line.StrikeRate,
		})
	}

	bowlers := make([]bowlerLineDTO, 0, len(card.Bowlers))
	for _, line := range card.Bowlers {
		bowlers = append(bowlers, bowlerLineDTO{
			PlayerID:     line.PlayerID,
			LegalBalls:   line.LegalBalls,
			Overs:        line.Overs,
			RunsConceded: line.RunsConceded,
			Wickets:      line.Wickets,
			Economy:      line.Economy,
		})
	}

	currentOver := make([]ballDTO, 0, len(card.CurrentOver))
	for _, ball := range card.CurrentOver {
		currentOver = append(currentOver, ballToDTO(ball))
	}

	return scorecardDTO{
		Innings:         inningsToDTO(card.Innings),
		Overs:           card.Overs,
		CurrentRunRate:  card.CurrentRunRate,
		RequiredRunRate: card.RequiredRunRate,
		Target:          card.Target,
		Batsmen:         batsmen,
		Bowlers:         bowlers,
		CurrentOver:     currentOver,
	}
}
