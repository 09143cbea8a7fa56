// Package handler exposes claim processing over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/models"
	"github.com/tech920/motor-claim-decision-api-sub000/internal/claims/service"
	"github.com/tech920/motor-claim-decision-api-sub000/pkg/platform/httputil"
	"github.com/tech920/motor-claim-decision-api-sub000/pkg/requestcontext"
)

// Service defines the claim operations the handler exposes.
type Service interface {
	Process(ctx context.Context, req service.ProcessRequest) (*models.CaseResult, error)
	Validate(ctx context.Context, bundle models.CaseBundle) []models.ValidatedDecision
	Get(ctx context.Context, claimID string) (*models.CaseResult, error)
}

type Handler struct {
	claims Service
	logger *slog.Logger
}

func New(claims Service, logger *slog.Logger) *Handler {
	return &Handler{claims: claims, logger: logger}
}

// Register mounts the claim routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/claims", h.handleProcess)
	r.Post("/v1/claims/validate", h.handleValidate)
	r.Get("/v1/claims/{claimID}/decisions", h.handleGetDecisions)
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[ProcessClaimRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.claims.Process(ctx, service.ProcessRequest{
		ClaimID: req.ClaimID,
		Records: req.Parties,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "claim processing failed",
			slog.String("request_id", requestID),
			slog.String("claim_id", req.ClaimID),
			slog.String("error", err.Error()),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[ValidateClaimRequest](w, r, h.logger, requestID)
	if !ok {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	decisions := h.claims.Validate(ctx, req.Bundle())
	httputil.WriteJSON(w, http.StatusOK, models.CaseResult{
		ClaimID:   req.ClaimID,
		Decisions: decisions,
		CreatedAt: requestcontext.Now(ctx),
	})
}

func (h *Handler) handleGetDecisions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claimID := chi.URLParam(r, "claimID")

	result, err := h.claims.Get(ctx, claimID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}
