package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/smarteck4/cricket-auction-pro/internal/usecase"
)

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.matchService.CreateMatch(ctx, usecase.CreateMatchInput{
		TeamAID:  req.TeamAID,
		TeamBID:  req.TeamBID,
		MaxOvers: req.MaxOvers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "team_a", req.TeamAID, "team_b", req.TeamBID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(created))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	item, matchInnings, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	inningsItems := make([]inningsDTO, 0, len(matchInnings))
	for _, in := range matchInnings {
		inningsItems = append(inningsItems, inningsToDTO(in))
	}

	writeSuccess(ctx, w, http.StatusOK, struct {
		Match   matchDTO     `json:"match"`
		Innings []inningsDTO `json:"innings"`
	}{
		Match:   matchToDTO(item),
		Innings: inningsItems,
	})
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	matches, err := h.matchService.ListMatches(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CompleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteMatch")
	defer span.End()

	var req completeMatchRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	completed, err := h.scoringService.CompleteMatch(ctx, matchID, req.WinnerID, req.Result)
	if err != nil {
		h.logger.WarnContext(ctx, "complete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(completed))
}

func decodeQuickScoreRequest(r *http.Request) (quickScoreRequest, error) {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req quickScoreRequest
	if err := decoder.Decode(&req); err != nil {
		return quickScoreRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}

func (h *Handler) QuickScoreMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.QuickScoreMatch")
	defer span.End()

	req, err := decodeQuickScoreRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	completed, err := h.scoringService.QuickScore(ctx, matchID,
		usecase.QuickScoreInput{
			BattingTeamID: req.First.BattingTeamID,
			TotalRuns:     req.First.TotalRuns,
			Wickets:       req.First.Wickets,
			Extras:        req.First.Extras,
			Overs:         req.First.Overs,
		},
		usecase.QuickScoreInput{
			BattingTeamID: req.Second.BattingTeamID,
			TotalRuns:     req.Second.TotalRuns,
			Wickets:       req.Second.Wickets,
			Extras:        req.Second.Extras,
			Overs:         req.Second.Overs,
		},
		req.WinnerID, req.Result)
	if err != nil {
		h.logger.WarnContext(ctx, "quick score failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(completed))
}
