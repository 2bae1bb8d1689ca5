package httpapi

import (
	"net/http"
)

func (h *Handler) GetAuction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAuction")
	defer span.End()

	snap, err := h.auctionService.Snapshot(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get auction snapshot failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, auctionSnapshotToDTO(snap))
}

func (h *Handler) GetBidHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBidHistory")
	defer span.End()

	playerID := r.PathValue("playerID")
	bids, err := h.auctionService.BidHistory(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get bid history failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	dtos := make([]bidDTO, 0, len(bids))
	for _, b := range bids {
		dtos = append(dtos, bidToDTO(b))
	}
	writeSuccess(ctx, w, http.StatusOK, dtos)
}

func (h *Handler) StartAuction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartAuction")
	defer span.End()

	var req startAuctionRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.auctionService.StartAuction(ctx, req.PlayerID, req.DurationSeconds)
	if err != nil {
		h.logger.WarnContext(ctx, "start auction failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, auctionStateToDTO(state, state.UpdatedAt))
}

func (h *Handler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlaceBid")
	defer span.End()

	var req placeBidRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.auctionService.PlaceBid(ctx, req.OwnerID, req.Amount)
	if err != nil {
		h.logger.WarnContext(ctx, "place bid failed", "owner_id", req.OwnerID, "amount", req.Amount, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, auctionStateToDTO(state, state.UpdatedAt))
}

func (h *Handler) CloseAuction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CloseAuction")
	defer span.End()

	outcome, err := h.auctionService.CloseAuction(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "close auction failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settlementOutcomeDTO{
		PlayerID: outcome.PlayerID,
		Sold:     outcome.Sold,
		OwnerID:  outcome.OwnerID,
		Price:    outcome.Price,
	})
}
