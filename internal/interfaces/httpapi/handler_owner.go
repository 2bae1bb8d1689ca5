package httpapi

import (
	"net/http"

	"github.com/smarteck4/cricket-auction-pro/internal/usecase"
)

func (h *Handler) CreateOwner(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateOwner")
	defer span.End()

	var req createOwnerRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.ownerService.CreateOwner(ctx, usecase.CreateOwnerInput{
		TeamName:    req.TeamName,
		UserID:      req.UserID,
		TotalPoints: req.TotalPoints,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create owner failed", "team_name", req.TeamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, ownerToDTO(created))
}

func (h *Handler) ListOwners(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOwners")
	defer span.End()

	owners, err := h.ownerService.ListOwners(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list owners failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]ownerDTO, 0, len(owners))
	for _, o := range owners {
		items = append(items, ownerToDTO(o))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetOwnerSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOwnerSummary")
	defer span.End()

	ownerID := r.PathValue("ownerID")
	summary, err := h.ownerService.Summary(ctx, ownerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get owner summary failed", "owner_id", ownerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ownerSummaryToDTO(summary))
}
