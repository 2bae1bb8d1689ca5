package httpapi

import (
	"context"
	"net/http"

	"github.com/smarteck4/cricket-auction-pro/internal/domain/delivery"
	"github.com/smarteck4/cricket-auction-pro/internal/usecase"
)

func (h *Handler) StartInnings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartInnings")
	defer span.End()

	var req startInningsRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	started, err := h.scoringService.StartInnings(ctx, matchID, req.BattingTeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "start innings failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, inningsToDTO(started))
}

func (h *Handler) SelectStriker(w http.ResponseWriter, r *http.Request) {
	h.selectCreaseRole(w, r, "httpapi.Handler.SelectStriker", h.scoringService.SelectStriker)
}

func (h *Handler) SelectNonStriker(w http.ResponseWriter, r *http.Request) {
	h.selectCreaseRole(w, r, "httpapi.Handler.SelectNonStriker", h.scoringService.SelectNonStriker)
}

func (h *Handler) SelectBowler(w http.ResponseWriter, r *http.Request) {
	h.selectCreaseRole(w, r, "httpapi.Handler.SelectBowler", h.scoringService.SelectBowler)
}

func (h *Handler) selectCreaseRole(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	selectFn func(ctx context.Context, inningsID, playerID string) error,
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	var req selectPlayerRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inningsID := r.PathValue("inningsID")
	if err := selectFn(ctx, inningsID, req.PlayerID); err != nil {
		h.logger.WarnContext(ctx, "select crease role failed", "innings_id", inningsID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	snap, err := h.scoringService.Crease(ctx, inningsID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, creaseToDTO(snap))
}

func (h *Handler) RecordBall(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordBall")
	defer span.End()

	var req recordBallRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inningsID := r.PathValue("inningsID")
	ball, err := h.scoringService.RecordBall(ctx, inningsID, usecase.RecordBallInput{
		Runs:       req.Runs,
		ExtraType:  delivery.ExtraType(req.ExtraType),
		ExtraRuns:  req.ExtraRuns,
		IsWicket:   req.IsWicket,
		WicketType: delivery.WicketType(req.WicketType),
		FielderID:  req.FielderID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record ball failed", "innings_id", inningsID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, ballToDTO(ball))
}

func (h *Handler) UndoLastBall(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UndoLastBall")
	defer span.End()

	inningsID := r.PathValue("inningsID")
	removed, err := h.scoringService.UndoLastBall(ctx, inningsID)
	if err != nil {
		h.logger.WarnContext(ctx, "undo last ball failed", "innings_id", inningsID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ballToDTO(removed))
}

func (h *Handler) RetireHurt(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RetireHurt")
	defer span.End()

	var req selectPlayerRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inningsID := r.PathValue("inningsID")
	if err := h.scoringService.RetireHurt(ctx, inningsID, req.PlayerID); err != nil {
		h.logger.WarnContext(ctx, "retire hurt failed", "innings_id", inningsID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	snap, err := h.scoringService.Crease(ctx, inningsID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, creaseToDTO(snap))
}

func (h *Handler) ReturnFromRetiredHurt(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReturnFromRetiredHurt")
	defer span.End()

	var req selectPlayerRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	inningsID := r.PathValue("inningsID")
	if err := h.scoringService.ReturnFromRetiredHurt(ctx, inningsID, req.PlayerID); err != nil {
		h.logger.WarnContext(ctx, "return from retired hurt failed", "innings_id", inningsID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	snap, err := h.scoringService.Crease(ctx, inningsID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, creaseToDTO(snap))
}

func (h *Handler) GetCrease(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCrease")
	defer span.End()

	inningsID := r.PathValue("inningsID")
	snap, err := h.scoringService.Crease(ctx, inningsID)
	if err != nil {
		h.logger.WarnContext(ctx, "get crease failed", "innings_id", inningsID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, creaseToDTO(snap))
}

func (h *Handler) GetScorecard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScorecard")
	defer span.End()

	inningsID := r.PathValue("inningsID")
	card, err := h.scoringService.Scorecard(ctx, inningsID)
	if err != nil {
		h.logger.WarnContext(ctx, "get scorecard failed", "innings_id", inningsID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scorecardToDTO(card))
}

func (h *Handler) EndInnings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EndInnings")
	defer span.End()

	inningsID := r.PathValue("inningsID")
	ended, err := h.scoringService.EndInnings(ctx, inningsID)
	if err != nil {
		h.logger.WarnContext(ctx, "end innings failed", "innings_id", inningsID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, inningsToDTO(ended))
}
